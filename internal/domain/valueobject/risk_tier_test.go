package valueobject_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigileye/vigil/internal/domain/valueobject"
)

func TestRiskTier_FromScore(t *testing.T) {
	tests := []struct {
		score    int
		expected valueobject.RiskTier
	}{
		{-3, valueobject.RiskTierSafe},
		{0, valueobject.RiskTierSafe},
		{1, valueobject.RiskTierLow},
		{3, valueobject.RiskTierLow},
		{4, valueobject.RiskTierMedium},
		{6, valueobject.RiskTierMedium},
		{7, valueobject.RiskTierHigh},
		{42, valueobject.RiskTierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, valueobject.RiskTierFromScore(tt.score))
		})
	}
}

func TestRiskTier_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskTier
		wantErr  bool
	}{
		{"safe", valueobject.RiskTierSafe, false},
		{"low", valueobject.RiskTierLow, false},
		{"medium", valueobject.RiskTierMedium, false},
		{"high", valueobject.RiskTierHigh, false},
		{"HIGH", valueobject.RiskTier{}, true},
		{"", valueobject.RiskTier{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tier, err := valueobject.RiskTierFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, tier.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(tier))
		})
	}
}

func TestRiskTier_AtLeast(t *testing.T) {
	assert.True(t, valueobject.RiskTierHigh.AtLeast(valueobject.RiskTierMedium))
	assert.True(t, valueobject.RiskTierMedium.AtLeast(valueobject.RiskTierMedium))
	assert.False(t, valueobject.RiskTierLow.AtLeast(valueobject.RiskTierMedium))
	assert.True(t, valueobject.RiskTierSafe.AtLeast(valueobject.RiskTier{}))
	assert.Equal(t, -1, valueobject.RiskTier{}.Rank())
}

func TestRiskTier_JSON(t *testing.T) {
	b, err := json.Marshal(map[string]valueobject.RiskTier{"risk_level": valueobject.RiskTierMedium})
	require.NoError(t, err)
	assert.JSONEq(t, `{"risk_level":"medium"}`, string(b))

	var out struct {
		Tier valueobject.RiskTier `json:"tier"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"tier":"high"}`), &out))
	assert.Equal(t, valueobject.RiskTierHigh, out.Tier)

	require.Error(t, json.Unmarshal([]byte(`{"tier":"extreme"}`), &out))
}

func TestCoordinates(t *testing.T) {
	c, err := valueobject.ParseCoordinates("51.5072", "-0.1276")
	require.NoError(t, err)
	assert.Equal(t, "https://maps.google.com/?q=51.5072,-0.1276", c.MapsURL())
	assert.Equal(t, "51.5072", c.Latitude().String())

	_, err = valueobject.ParseCoordinates("91", "0")
	require.Error(t, err)
	_, err = valueobject.ParseCoordinates("0", "-180.5")
	require.Error(t, err)
	_, err = valueobject.ParseCoordinates("north", "0")
	require.Error(t, err)
}
