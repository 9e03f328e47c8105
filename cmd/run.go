package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/output"
	"github.com/mj1618/desktop-rpa/internal/platform"
	"github.com/mj1618/desktop-rpa/internal/player"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a recorded session once",
	Long: `Replay a recorded session without the interactive trainer. Defaults to the
most recently recorded session; use --session to pick one by id.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("session", "", "Session id to replay (default: latest)")
	runCmd.Flags().Bool("dry-run", false, "Resolve every step but inject nothing")
}

func runRun(cmd *cobra.Command, args []string) error {
	sessionID, _ := cmd.Flags().GetString("session")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if platform.RequestPermissionsFunc != nil {
		platform.RequestPermissionsFunc()
	}

	provider, err := platform.NewProvider()
	if err != nil {
		if !dryRun {
			return err
		}
		// A dry run degrades to position-only resolution off-platform.
		logger.Warn().Err(err).Msg("no platform backend, resolving from recorded positions only")
		provider = &platform.Provider{}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := selectSession(st, sessionID)
	if err != nil {
		return err
	}

	pl := player.New(st, newResolver(provider, cfg), provider.Inputter, playerOptions(cfg, dryRun))
	res, err := pl.Run(&player.Signals{}, sess.ID)
	if err != nil {
		return err
	}
	return output.Print(res)
}
