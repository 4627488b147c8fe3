package service

import "fmt"

// RuleSet is an immutable, compiled collection of rules. Every rule is
// evaluated independently; order only affects listing.
type RuleSet struct {
	rules []rule
}

// CompileRules validates defs and compiles them into a RuleSet. Any invalid
// definition fails the whole set.
func CompileRules(defs []RuleDefinition) (*RuleSet, error) {
	type key struct {
		kind    RuleKind
		pattern string
	}
	seen := make(map[key]int, len(defs))

	rules := make([]rule, 0, len(defs))
	for i, def := range defs {
		r, err := compileRule(def)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		k := key{kind: r.kind, pattern: r.pattern}
		if prev, dup := seen[k]; dup {
			return nil, fmt.Errorf("rule %d: %w: duplicates rule %d (%s %q)", i, ErrInvalidRule, prev, r.kind, r.pattern)
		}
		seen[k] = i
		rules = append(rules, r)
	}

	return &RuleSet{rules: rules}, nil
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Definitions returns the normalized definitions in load order.
func (rs *RuleSet) Definitions() []RuleDefinition {
	if rs == nil {
		return nil
	}
	defs := make([]RuleDefinition, len(rs.rules))
	for i, r := range rs.rules {
		defs[i] = r.definition()
	}
	return defs
}
