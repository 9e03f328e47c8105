package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/desktop-rpa/internal/config"
	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/match"
	"github.com/mj1618/desktop-rpa/internal/model"
	"github.com/mj1618/desktop-rpa/internal/platform"
	"github.com/mj1618/desktop-rpa/internal/platform/tesseract"
	"github.com/mj1618/desktop-rpa/internal/player"
	"github.com/mj1618/desktop-rpa/internal/resolve"
	"github.com/mj1618/desktop-rpa/internal/store"
)

// openStore opens the session database under the configured data directory.
func openStore(c *config.Config) (store.Store, error) {
	dbPath, err := c.DBPath()
	if err != nil {
		return nil, err
	}
	return store.NewSQLiteStore(dbPath)
}

// newOCRMatcher wires the tesseract engine when the binary is present.
// Returns nil otherwise; the resolver then skips the OCR tier.
func newOCRMatcher(c *config.Config) *match.OCRMatcher {
	engine := tesseract.New(c.Capture.TesseractPath, c.Capture.TesseractLangs)
	if !engine.Available() {
		logger.Warn().Msg("tesseract not found, OCR fallback disabled")
		return nil
	}
	return match.NewOCRMatcher(engine, match.PartialRatio{}, c.Capture.OCRConfidenceFloor)
}

// newResolver assembles the layered target resolver from the provider's
// collaborators.
func newResolver(p *platform.Provider, c *config.Config) *resolve.Resolver {
	return resolve.New(
		p.Tree,
		match.NewTreeMatcher(match.PartialRatio{}),
		newOCRMatcher(c),
		p.Screenshotter,
		c.Capture.Display,
	)
}

// playerOptions maps the replay config onto player pacing options.
func playerOptions(c *config.Config, dryRun bool) player.Options {
	return player.Options{
		SettleDelay:      time.Duration(c.Replay.SettleDelayMs) * time.Millisecond,
		PausePoll:        time.Duration(c.Replay.PausePollMs) * time.Millisecond,
		PostClickDelay:   time.Duration(c.Replay.PostClickDelayMs) * time.Millisecond,
		KeystrokeDelayMs: c.Replay.KeystrokeDelayMs,
		DryRun:           dryRun,
	}
}

// selectSession picks the session to replay: an explicit id when given,
// otherwise the most recently recorded one.
func selectSession(st store.Store, id string) (*model.Session, error) {
	if id != "" {
		sess, err := st.GetSession(id)
		if err != nil {
			return nil, err
		}
		if sess == nil {
			return nil, fmt.Errorf("session %s not found", id)
		}
		return sess, nil
	}

	sess, err := st.LatestSession()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("no recorded sessions")
	}
	return sess, nil
}

// stringParam extracts a string value from MCP tool arguments.
func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
