package period

import (
	"fmt"

	"github.com/fiesc/examsched/adapter/cli"
	schedQueries "github.com/fiesc/examsched/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var listActiveOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List exam periods",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListPeriodsHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Period listing requires database connection.")
			return nil
		}

		periods, err := app.ListPeriodsHandler.Handle(cmd.Context(), schedQueries.ListPeriodsQuery{
			ActiveOnly: listActiveOnly,
		})
		if err != nil {
			return err
		}

		if len(periods) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No periods found. Create one with: examsched period create \"Name\" --start ... --end ...")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Periods (%d):\n", len(periods))
		for _, p := range periods {
			status := "inactive"
			if p.Active {
				status = "active"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "    ID: %s\n", p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "    Window: %s to %s\n", p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
			fmt.Fprintf(cmd.OutOrStdout(), "    Status: %s\n", status)
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listActiveOnly, "active", "a", false, "only the active period")
}
