package cli

import (
	"github.com/spf13/cobra"

	"github.com/rmagtoto/tala/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive free-text command loop",
	Long:  `Chat reads free-text commands, classifies them (new task, resume, status, or continue) and dispatches to the coordinator. English and Tagalog keywords are recognized.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		return tui.Run(a.coord)
	},
}
