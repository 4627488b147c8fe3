package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidRule is wrapped by every rule compilation failure.
var ErrInvalidRule = errors.New("invalid rule")

// MaxLabelLength is the longest signal label in bytes. It matches the
// signal VARCHAR(64) columns of message_signals and alert_signals.
const MaxLabelLength = 64

// RuleKind selects how a rule's pattern is matched.
type RuleKind string

const (
	// RuleKindLiteral matches by case-insensitive substring containment.
	RuleKindLiteral RuleKind = "literal"
	// RuleKindRegex matches a regular expression against the lower-cased text.
	RuleKindRegex RuleKind = "regex"
)

// RuleDefinition is the configuration form of a rule.
type RuleDefinition struct {
	Kind    RuleKind `yaml:"kind" json:"kind"`
	Pattern string   `yaml:"pattern" json:"pattern"`
	Label   string   `yaml:"label,omitempty" json:"label,omitempty"`
	Weight  int      `yaml:"weight" json:"weight"`
}

// rule is a compiled RuleDefinition.
type rule struct {
	re      *regexp.Regexp
	kind    RuleKind
	pattern string
	label   string
	weight  int
}

func compileRule(def RuleDefinition) (rule, error) {
	if strings.TrimSpace(def.Pattern) == "" {
		return rule{}, fmt.Errorf("%w: empty pattern", ErrInvalidRule)
	}
	if def.Weight <= 0 {
		return rule{}, fmt.Errorf("%w: pattern %q: weight must be positive, got %d", ErrInvalidRule, def.Pattern, def.Weight)
	}

	r := rule{kind: def.Kind, weight: def.Weight, label: def.Label}

	switch def.Kind {
	case RuleKindLiteral:
		r.pattern = strings.ToLower(def.Pattern)
		if r.label == "" {
			r.label = r.pattern
		}
	case RuleKindRegex:
		if r.label == "" {
			return rule{}, fmt.Errorf("%w: regex %q requires a label", ErrInvalidRule, def.Pattern)
		}
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return rule{}, fmt.Errorf("%w: regex %q: %v", ErrInvalidRule, def.Pattern, err)
		}
		r.pattern = def.Pattern
		r.re = re
	default:
		return rule{}, fmt.Errorf("%w: pattern %q: unknown kind %q", ErrInvalidRule, def.Pattern, def.Kind)
	}

	if len(r.label) > MaxLabelLength {
		return rule{}, fmt.Errorf("%w: pattern %q: label is %d bytes, limit is %d", ErrInvalidRule, def.Pattern, len(r.label), MaxLabelLength)
	}

	return r, nil
}

// matches reports whether the rule fires on already lower-cased text.
func (r rule) matches(lowered string) bool {
	if r.re != nil {
		return r.re.MatchString(lowered)
	}
	return strings.Contains(lowered, r.pattern)
}

func (r rule) definition() RuleDefinition {
	return RuleDefinition{Kind: r.kind, Pattern: r.pattern, Label: r.label, Weight: r.weight}
}
