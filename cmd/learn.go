package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-rpa/internal/control"
	"github.com/mj1618/desktop-rpa/internal/hotkey"
	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/platform"
	"github.com/mj1618/desktop-rpa/internal/platform/hookevents"
	"github.com/mj1618/desktop-rpa/internal/player"
	"github.com/mj1618/desktop-rpa/internal/recorder"
	"github.com/mj1618/desktop-rpa/internal/store"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Run the interactive trainer",
	Long: `Start the hotkey-driven trainer. While a training session is active every
click and typed entry is recorded; the run hotkey replays the latest session.

Default bindings (configurable in ~/.desktop-rpa/config.yaml):
  ctrl+alt+t   start / stop a training session
  ctrl+alt+r   replay the latest recorded session
  ctrl+alt+p   pause / resume the replay
  ctrl+alt+s   stop and exit`,
	RunE: runLearn,
}

func init() {
	rootCmd.AddCommand(learnCmd)
	learnCmd.Flags().String("name", "", "Name for sessions recorded in this run")
}

func runLearn(cmd *cobra.Command, args []string) error {
	if platform.RequestPermissionsFunc != nil {
		platform.RequestPermissionsFunc()
	}

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	snapsDir, err := cfg.SnapsDir()
	if err != nil {
		return err
	}
	snaps, err := store.NewSnapshots(snapsDir, cfg.Capture.SnapshotScale)
	if err != nil {
		return err
	}
	if days := cfg.Capture.SnapshotMaxAgeDays; days > 0 {
		snaps.Clean(time.Duration(days) * 24 * time.Hour)
	}

	rec := recorder.New(st, snaps, provider.Tree, provider.Screenshotter, cfg.Capture.Display)
	pl := player.New(st, newResolver(provider, cfg), provider.Inputter, playerOptions(cfg, false))
	ctrl := control.New(rec, pl, st)

	sessionName, _ := cmd.Flags().GetString("name")

	hk := hotkey.NewManager()
	bindings := []struct {
		combo  string
		action string
		fn     func() error
	}{
		{cfg.Hotkeys.ToggleTrain, "toggle training", func() error { return ctrl.ToggleTrain(sessionName) }},
		{cfg.Hotkeys.Run, "run latest session", ctrl.Run},
		{cfg.Hotkeys.TogglePause, "pause/resume replay", ctrl.TogglePause},
		{cfg.Hotkeys.Stop, "stop and exit", func() error { ctrl.Stop(); return nil }},
	}
	for _, b := range bindings {
		b := b
		err := hk.Register(b.combo, func() {
			if err := b.fn(); err != nil {
				logger.Warn().Str("hotkey", b.combo).Msg(err.Error())
			}
		})
		if err != nil {
			return fmt.Errorf("bad hotkey for %s: %w", b.action, err)
		}
		fmt.Printf("  %-12s %s\n", b.combo, b.action)
	}
	fmt.Println("listening for hotkeys, ctrl+c to exit")

	events := hookevents.New()
	defer events.Close()

	// Ctrl+C behaves like the stop hotkey so a live training session is
	// finalized before exit.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	for {
		select {
		case ev, ok := <-events.Events():
			if !ok {
				ctrl.Stop()
				<-ctrl.Done()
				return nil
			}
			hk.Handle(ev)
			rec.HandleEvent(ev)
		case <-interrupt:
			ctrl.Stop()
		case <-ctrl.Done():
			return nil
		}
	}
}
