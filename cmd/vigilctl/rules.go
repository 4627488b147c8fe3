package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vigileye/vigil/internal/infrastructure/rules"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate rule files",
	}
	cmd.AddCommand(newRulesValidateCmd(), newRulesListCmd())
	return cmd
}

func newRulesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a rule file parses and compiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rules.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d rules)\n", args[0], rs.Len())
			return nil
		},
	}
}

func newRulesListCmd() *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the rules in a file, or the built-in rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rs, err := rules.Load(rulesPath)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tWEIGHT\tLABEL\tPATTERN")
			for _, d := range rs.Definitions() {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", d.Kind, d.Weight, d.Label, d.Pattern)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "Rule file (default: built-in rules)")
	return cmd
}
