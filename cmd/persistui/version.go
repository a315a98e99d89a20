package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/odvcencio/persistui/pkg/console"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := console.NewWithOutput(cmd.OutOrStdout())
			out.KeyValue([][2]string{
				{"version", version},
				{"commit", commit},
				{"built", buildDate},
				{"go", runtime.Version()},
			})
			return nil
		},
	}
}
