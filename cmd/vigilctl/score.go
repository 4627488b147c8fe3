package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vigileye/vigil/internal/application/dto"
	"github.com/vigileye/vigil/internal/domain/service"
	"github.com/vigileye/vigil/internal/domain/valueobject"
	"github.com/vigileye/vigil/internal/infrastructure/rules"
)

type scoreFlags struct {
	rulesPath string
	format    string
	failOn    string
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score [text...]",
		Short: "Score text from the arguments or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.rulesPath, "rules", "", "Rule file (default: built-in rules)")
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit 2 if the tier is at least this level: low, medium or high")

	return cmd
}

func runScore(cmd *cobra.Command, args []string, f *scoreFlags) error {
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("unsupported format %q", f.format)
	}

	var failTier valueobject.RiskTier
	if f.failOn != "" {
		t, err := valueobject.RiskTierFromString(f.failOn)
		if err != nil {
			return err
		}
		if t.Equal(valueobject.RiskTierSafe) {
			return fmt.Errorf("--fail-on must be low, medium or high, got %q", f.failOn)
		}
		failTier = t
	}

	rs, err := rules.Load(f.rulesPath)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(b)
	}

	result := service.NewRiskScorer(rs).Score(text)
	if err := writeScore(cmd.OutOrStdout(), f.format, result); err != nil {
		return err
	}

	if !failTier.IsZero() && result.Tier.AtLeast(failTier) {
		return exitError(2, "risk level %s meets --fail-on %s", result.Tier, failTier)
	}
	return nil
}

func writeScore(w io.Writer, format string, result service.ScoreResult) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.FromScoreResult(result))
	}

	flagged := "-"
	if len(result.Signals) > 0 {
		flagged = strings.Join(result.Signals, ", ")
	}
	_, err := fmt.Fprintf(w, "risk_level: %s\nscore: %d\nflagged: %s\n", result.Tier, result.Score, flagged)
	return err
}
