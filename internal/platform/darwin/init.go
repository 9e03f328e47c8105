//go:build darwin && cgo

package darwin

import "github.com/mj1618/desktop-rpa/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Tree:          NewTree(),
			Inputter:      NewInputter(),
			Screenshotter: NewScreenshotter(),
		}, nil
	}
	platform.RequestPermissionsFunc = RequestPermissions
}
