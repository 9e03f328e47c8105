package main

import (
	"github.com/mj1618/desktop-rpa/cmd"

	_ "github.com/mj1618/desktop-rpa/internal/platform/darwin" // platform registration
)

func main() {
	cmd.Execute()
}
