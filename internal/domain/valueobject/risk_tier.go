package valueobject

import "fmt"

// RiskTier is an immutable value object for the discretized risk of a message.
type RiskTier struct {
	value string
}

var (
	RiskTierSafe   = RiskTier{value: "safe"}
	RiskTierLow    = RiskTier{value: "low"}
	RiskTierMedium = RiskTier{value: "medium"}
	RiskTierHigh   = RiskTier{value: "high"}
)

// Score thresholds. A score at or above a threshold falls into that tier.
const (
	HighThreshold   = 7
	MediumThreshold = 4
	LowThreshold    = 1
)

// RiskTierFromString reconstructs a RiskTier from its string representation.
func RiskTierFromString(s string) (RiskTier, error) {
	switch s {
	case "safe":
		return RiskTierSafe, nil
	case "low":
		return RiskTierLow, nil
	case "medium":
		return RiskTierMedium, nil
	case "high":
		return RiskTierHigh, nil
	default:
		return RiskTier{}, fmt.Errorf("invalid risk tier: %q", s)
	}
}

// RiskTierFromScore classifies a score. It is the only place tiers are derived.
func RiskTierFromScore(score int) RiskTier {
	switch {
	case score >= HighThreshold:
		return RiskTierHigh
	case score >= MediumThreshold:
		return RiskTierMedium
	case score >= LowThreshold:
		return RiskTierLow
	default:
		return RiskTierSafe
	}
}

// String returns the string representation.
func (r RiskTier) String() string {
	return r.value
}

// Rank orders tiers from safe (0) to high (3). The zero value ranks -1.
func (r RiskTier) Rank() int {
	switch r.value {
	case "safe":
		return 0
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	default:
		return -1
	}
}

// AtLeast reports whether r is as severe as other or more.
func (r RiskTier) AtLeast(other RiskTier) bool {
	return r.Rank() >= other.Rank()
}

// IsZero returns true if the RiskTier has not been set.
func (r RiskTier) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskTier.
func (r RiskTier) Equal(other RiskTier) bool {
	return r.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (r RiskTier) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RiskTier) UnmarshalText(b []byte) error {
	t, err := RiskTierFromString(string(b))
	if err != nil {
		return err
	}
	*r = t
	return nil
}
