package assignment

import "github.com/spf13/cobra"

// Cmd is the assignment command group.
var Cmd = &cobra.Command{
	Use:   "assignment",
	Short: "Manage exam assignments",
	Long:  `Draft, propose, review, confirm, and cancel exam assignments.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(proposeCmd)
	Cmd.AddCommand(reviewCmd)
	Cmd.AddCommand(resolveCmd)
	Cmd.AddCommand(confirmCmd)
	Cmd.AddCommand(cancelCmd)
	Cmd.AddCommand(roomCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
}
