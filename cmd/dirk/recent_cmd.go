package main

import (
	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/history"
	"github.com/rvth/dirk/internal/output"
)

func newRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "recent",
		Short:   "Print recently picked directories",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Print recently picked directories, most recent first.

Use with shell command substitution: cd $(dirk recent -n 1)`,
		Example: `  cd $(dirk recent -n 1)   # cd to the last picked directory
  dirk recent              # list recent picks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			paths, err := history.Recent(history.Path(), limit)
			if err != nil {
				return err
			}
			for _, p := range paths {
				out.Println(p)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of paths to print")

	return cmd
}
