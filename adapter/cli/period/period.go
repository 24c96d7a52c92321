package period

import "github.com/spf13/cobra"

// Cmd is the period command group.
var Cmd = &cobra.Command{
	Use:   "period",
	Short: "Manage exam periods",
	Long:  `Create, activate, and list the exam periods proposals must fall in.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(activateCmd)
	Cmd.AddCommand(deactivateCmd)
	Cmd.AddCommand(listCmd)
}
