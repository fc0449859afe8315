package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mocut/store"
)

func newComputeCommand(a *app) *cobra.Command {
	var (
		outFile   string
		noStore   bool
		minFrames int
		tolerance float64
	)

	cmd := &cobra.Command{
		Use:   "compute <animation.csv>",
		Short: "Evaluate the cost matrix of an animation",
		Long: `Evaluate the configured operation over every window of an animation and
write the result as <output.dir>/<name>.costmatrix.csv.

When store.enabled is set the matrix is also saved as a new run. With
--tolerance the minimal keyframe set is printed as well.`,
		Example: `  # Score with the default interp operation
  mocut compute walk.csv

  # Keyframes that keep interpolation within 0.5 units
  mocut compute walk.csv --tolerance 0.5

  # DTW against frames 0..29 of the same clip, 8 workers
  MOCUT_OPERATION_KIND=dtw MOCUT_OPERATION_DTW_REFERENCE_FRAMES=30 mocut compute -w 8 walk.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var st store.Store
			if a.cfg.Store.Enabled && !noStore {
				s, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				defer s.Close()
				st = s
			}

			res, err := a.computeFile(ctx, args[0], outFile, st, nil)
			if err != nil {
				return err
			}

			stats := res.Matrix.Stats()
			log.Info().
				Str("output", res.Output).
				Int("windows", stats.Windows).
				Msg("Cost matrix written")

			fmt.Fprintf(a.out, "windows: %d\noutput: %s\n", stats.Windows, res.Output)
			if res.Run != nil {
				fmt.Fprintf(a.out, "run: %s\n", res.Run.ID)
			}

			if err = printBest(a.out, res.Matrix, minFrames); err != nil {
				return err
			}
			if cmd.Flags().Changed("tolerance") {
				return printKeyframes(a.out, res.Matrix, tolerance)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output CSV path (default <output.dir>/<name>.costmatrix.csv)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not save the run even if store.enabled is set")
	cmd.Flags().IntVar(&minFrames, "min-frames", 3, "minimum window length when reporting the best window")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "also plan the fewest keyframes whose segments stay within this error")

	return cmd
}
