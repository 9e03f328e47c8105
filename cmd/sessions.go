package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-rpa/internal/model"
	"github.com/mj1618/desktop-rpa/internal/output"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	Long:  "List all recorded sessions, newest first.",
	RunE:  runSessions,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a recorded session and its steps",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.ListSessions()
	if err != nil {
		return err
	}

	res := output.SessionsResult{Count: len(sessions), Sessions: []model.Session{}}
	for _, s := range sessions {
		res.Sessions = append(res.Sessions, *s)
	}
	return output.Print(res)
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := selectSession(st, args[0])
	if err != nil {
		return err
	}
	return st.DeleteSession(sess.ID)
}
