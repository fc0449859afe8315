package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mocut/animation"
)

func newRunsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage cost matrices saved in the store",
	}

	cmd.AddCommand(newRunsListCommand(a))
	cmd.AddCommand(newRunsExportCommand(a))
	cmd.AddCommand(newRunsDeleteCommand(a))

	return cmd
}

func newRunsListCommand(a *app) *cobra.Command {
	var animName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(cmd.Context(), animName)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tANIMATION\tOPERATION\tTIMELINE\tWINDOWS\tCREATED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t[%d,%d]\t%d\t%s\n",
					r.ID, r.Animation, r.Operation, r.StartTime, r.EndTime, r.Windows,
					r.CreatedAt.Format(time.RFC3339))
			}

			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&animName, "animation", "a", "", "only runs of this animation")

	return cmd
}

func newRunsExportCommand(a *app) *cobra.Command {
	var (
		animPath string
		outFile  string
	)

	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Write a saved run back out as a cost matrix CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			anim, err := animation.ReadCSVFile(animPath)
			if err != nil {
				return err
			}
			op, err := a.operation(anim)
			if err != nil {
				return err
			}

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			cm, err := s.LoadMatrix(ctx, args[0], anim, op, a.matrixOptions(nil)...)
			if err != nil {
				return err
			}
			if outFile == "" {
				outFile = a.outputPath(anim)
			}
			if err = cm.WriteCSVFile(outFile); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "output: %s\n", outFile)

			return nil
		},
	}

	cmd.Flags().StringVarP(&animPath, "animation", "a", "", "animation CSV the run was computed from")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output CSV path")
	_ = cmd.MarkFlagRequired("animation")

	return cmd
}

func newRunsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			return s.DeleteRun(cmd.Context(), args[0])
		},
	}
}
