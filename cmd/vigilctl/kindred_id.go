package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vigileye/vigil/internal/domain/model"
)

func newKindredIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kindred-id <seed>",
		Short: "Derive the device kindred ID for a seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), model.DeriveKindredID(args[0]))
			return nil
		},
	}
}
