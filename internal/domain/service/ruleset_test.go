package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigileye/vigil/internal/domain/service"
)

func TestCompileRules_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		defs    []service.RuleDefinition
		wantErr string
	}{
		{"unknown kind", []service.RuleDefinition{{Kind: "glob", Pattern: "a*", Weight: 1}}, "unknown kind"},
		{"empty pattern", []service.RuleDefinition{{Kind: service.RuleKindLiteral, Pattern: "  ", Weight: 1}}, "empty pattern"},
		{"zero weight", []service.RuleDefinition{{Kind: service.RuleKindLiteral, Pattern: "a", Weight: 0}}, "weight must be positive"},
		{"negative weight", []service.RuleDefinition{{Kind: service.RuleKindLiteral, Pattern: "a", Weight: -2}}, "weight must be positive"},
		{"regex without label", []service.RuleDefinition{{Kind: service.RuleKindRegex, Pattern: `\d+`, Weight: 1}}, "requires a label"},
		{"bad regex", []service.RuleDefinition{{Kind: service.RuleKindRegex, Pattern: `(`, Weight: 1, Label: "x"}}, "regex"},
		{"literal phrase too long for a label", []service.RuleDefinition{
			{Kind: service.RuleKindLiteral, Pattern: strings.Repeat("grooming phrase ", 6), Weight: 2},
		}, "limit is 64"},
		{"explicit label too long", []service.RuleDefinition{
			{Kind: service.RuleKindRegex, Pattern: `\d+`, Weight: 1, Label: strings.Repeat("x", service.MaxLabelLength+1)},
		}, "label is 65 bytes"},
		{"duplicate literal differing in case", []service.RuleDefinition{
			{Kind: service.RuleKindLiteral, Pattern: "Meet Me", Weight: 1},
			{Kind: service.RuleKindLiteral, Pattern: "meet me", Weight: 2},
		}, "duplicates rule 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := service.CompileRules(tt.defs)
			require.Error(t, err)
			assert.Nil(t, rs)
			assert.True(t, errors.Is(err, service.ErrInvalidRule))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompileRules_Normalizes(t *testing.T) {
	rs, err := service.CompileRules([]service.RuleDefinition{
		{Kind: service.RuleKindLiteral, Pattern: "Gift Card", Weight: 3},
		{Kind: service.RuleKindLiteral, Pattern: "damn", Weight: 3, Label: "profanity"},
		{Kind: service.RuleKindRegex, Pattern: `\d{3}`, Weight: 2, Label: "digits"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, rs.Len())

	defs := rs.Definitions()
	assert.Equal(t, service.RuleDefinition{Kind: service.RuleKindLiteral, Pattern: "gift card", Label: "gift card", Weight: 3}, defs[0])
	assert.Equal(t, "profanity", defs[1].Label)
	assert.Equal(t, `\d{3}`, defs[2].Pattern)

	scorer := service.NewRiskScorer(rs)
	assert.Equal(t, 3, scorer.Score("GIFT CARD").Score)
}

func TestCompileRules_LabelAtLimit(t *testing.T) {
	long := strings.Repeat("a", service.MaxLabelLength+10)
	rs, err := service.CompileRules([]service.RuleDefinition{
		{Kind: service.RuleKindLiteral, Pattern: long, Weight: 2, Label: strings.Repeat("b", service.MaxLabelLength)},
	})
	require.NoError(t, err)

	result := service.NewRiskScorer(rs).Score(long)
	require.Len(t, result.Signals, 1)
	assert.Len(t, result.Signals[0], service.MaxLabelLength)
}

func TestCompileRules_SameLabelEachAddsWeight(t *testing.T) {
	rs, err := service.CompileRules([]service.RuleDefinition{
		{Kind: service.RuleKindLiteral, Pattern: "darn", Weight: 3, Label: "profanity"},
		{Kind: service.RuleKindLiteral, Pattern: "heck", Weight: 3, Label: "profanity"},
	})
	require.NoError(t, err)

	out := service.NewRiskScorer(rs).Score("darn heck")
	assert.Equal(t, 6, out.Score)
	assert.Equal(t, []string{"profanity"}, out.Signals)
}

func TestCompileRules_Empty(t *testing.T) {
	rs, err := service.CompileRules(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rs.Len())
}

func TestRuleSet_NilSafe(t *testing.T) {
	var rs *service.RuleSet
	assert.Equal(t, 0, rs.Len())
	assert.Nil(t, rs.Definitions())
}
