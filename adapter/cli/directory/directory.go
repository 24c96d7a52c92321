package directory

import "github.com/spf13/cobra"

// Cmd is the directory command group. It maintains the local teacher,
// room, discipline, and group registers; in server mode these come from
// the institution database and the commands are unavailable.
var Cmd = &cobra.Command{
	Use:   "directory",
	Short: "Maintain the local directory",
	Long:  `Register teachers, rooms, disciplines, and student groups in local mode.`,
}

func init() {
	Cmd.AddCommand(addTeacherCmd)
	Cmd.AddCommand(addRoomCmd)
	Cmd.AddCommand(addDisciplineCmd)
	Cmd.AddCommand(addGroupCmd)
}
