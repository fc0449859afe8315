package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mocut/animation"
)

func newInspectCommand(a *app) *cobra.Command {
	var dimension string

	cmd := &cobra.Command{
		Use:   "inspect <animation.csv>",
		Short: "Describe an animation or print one dimension curve",
		Example: `  mocut inspect walk.csv
  mocut inspect walk.csv --dimension hip-x`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			anim, err := animation.ReadCSVFile(args[0])
			if err != nil {
				return err
			}

			if dimension != "" {
				curve, err := anim.CurveForDimension(dimension)
				if err != nil {
					return err
				}
				for _, p := range curve {
					fmt.Fprintf(a.out, "%d\t%g\n", p.Time, p.Value)
				}

				return nil
			}

			dims, err := anim.Dimensions()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "name: %s\ntimeline: %v\nframes: %d\nwindows: %d\ndimensions (%d): %s\n",
				anim.Name, anim.Timeline, anim.NFrames(), len(anim.Timeline.Permutations()),
				len(dims), strings.Join(dims, ", "))

			return nil
		},
	}

	cmd.Flags().StringVarP(&dimension, "dimension", "d", "", "print the curve of this dimension")

	return cmd
}
