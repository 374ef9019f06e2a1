package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bookroll/bookroll/pkg/classes"
)

var (
	classesDepartment string
	classesGrade      string
	classesTrack      string
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the class names a department's track maps to",
	Long: `Classes expands the school roster into concrete class names for a
grade, either for one track of a department or for every class in the
grade. The roster ships embedded; point the roster config key at a
YAML file to override it.`,
	RunE: runClasses,
}

func init() {
	rootCmd.AddCommand(classesCmd)

	classesCmd.Flags().StringVar(&classesDepartment, "dept", "", "department owning the classes")
	classesCmd.Flags().StringVar(&classesGrade, "grade", "", "grade to expand (required)")
	classesCmd.Flags().StringVar(&classesTrack, "track", "", "class track, e.g. 普通科")

	_ = classesCmd.MarkFlagRequired("grade")
}

func runClasses(_ *cobra.Command, _ []string) error {
	roster := classes.DefaultRoster()
	if cfg.RosterPath != "" {
		loaded, err := classes.LoadRoster(cfg.RosterPath)
		if err != nil {
			return err
		}
		roster = loaded
	}

	var names []string
	if classesTrack != "" {
		names = roster.TargetClasses(classesDepartment, classesGrade, classes.Track(classesTrack))
	} else {
		names = roster.AllClasses(classesGrade)
	}
	return renderList(os.Stdout, "班級", names)
}
