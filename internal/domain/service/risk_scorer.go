package service

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/vigileye/vigil/internal/domain/valueobject"
)

// ScoreResult is the outcome of scoring one message.
type ScoreResult struct {
	Tier valueobject.RiskTier
	// Signals holds the distinct labels of every matched rule, sorted.
	Signals []string
	Score   int
}

// RiskScorer is a domain service that scores text against a RuleSet. The
// rule set can be replaced at runtime with Swap.
type RiskScorer struct {
	rules atomic.Pointer[RuleSet]
}

// NewRiskScorer creates a RiskScorer. A nil rule set scores everything 0.
func NewRiskScorer(rs *RuleSet) *RiskScorer {
	s := &RiskScorer{}
	s.Swap(rs)
	return s
}

// Score evaluates text against every rule. Each rule contributes its weight
// at most once per message, however many times it matches.
func (s *RiskScorer) Score(text string) ScoreResult {
	if strings.TrimSpace(text) == "" {
		return ScoreResult{Score: 0, Signals: []string{}, Tier: valueobject.RiskTierSafe}
	}

	rs := s.rules.Load()
	lowered := strings.ToLower(text)

	score := 0
	labels := make(map[string]struct{})
	for _, r := range rs.rules {
		if !r.matches(lowered) {
			continue
		}
		score += r.weight
		labels[r.label] = struct{}{}
	}

	signals := make([]string, 0, len(labels))
	for l := range labels {
		signals = append(signals, l)
	}
	sort.Strings(signals)

	return ScoreResult{
		Score:   score,
		Signals: signals,
		Tier:    valueobject.RiskTierFromScore(score),
	}
}

// Swap atomically installs rs and returns the previous rule set.
func (s *RiskScorer) Swap(rs *RuleSet) *RuleSet {
	if rs == nil {
		rs = &RuleSet{}
	}
	return s.rules.Swap(rs)
}

// Rules returns the active rule set.
func (s *RiskScorer) Rules() *RuleSet {
	return s.rules.Load()
}
