package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-rpa/internal/model"
	"github.com/mj1618/desktop-rpa/internal/output"
)

var stepsCmd = &cobra.Command{
	Use:   "steps [session-id]",
	Short: "Show the steps of a recorded session",
	Long:  "Print the ordered steps of a session. Defaults to the latest session.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSteps,
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}

func runSteps(cmd *cobra.Command, args []string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	sess, err := selectSession(st, id)
	if err != nil {
		return err
	}

	steps, err := st.Steps(sess.ID)
	if err != nil {
		return err
	}
	if steps == nil {
		steps = []model.Step{}
	}

	return output.Print(output.StepsResult{Session: *sess, Count: len(steps), Steps: steps})
}
