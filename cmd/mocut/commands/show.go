package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
)

func newShowCommand(a *app) *cobra.Command {
	var (
		animPath  string
		minFrames int
	)

	cmd := &cobra.Command{
		Use:     "show <costmatrix.csv>",
		Short:   "Reload a cost matrix CSV and report coverage",
		Example: `  mocut show out/walk.costmatrix.csv --animation walk.csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			anim, err := animation.ReadCSVFile(animPath)
			if err != nil {
				return err
			}
			op, err := a.operation(anim)
			if err != nil {
				return err
			}
			cm, err := costmatrix.ReadCSVFile(args[0], anim, op, a.matrixOptions(nil)...)
			if err != nil {
				return err
			}

			stats := cm.Stats()
			fmt.Fprintf(a.out, "animation: %s %v\ncomputed: %d/%d\n", anim.Name, anim.Timeline, stats.Computed, stats.Windows)

			return printBest(a.out, cm, minFrames)
		},
	}

	cmd.Flags().StringVarP(&animPath, "animation", "a", "", "animation CSV the matrix was computed from")
	cmd.Flags().IntVar(&minFrames, "min-frames", 3, "minimum window length when reporting the best window")
	_ = cmd.MarkFlagRequired("animation")

	return cmd
}
