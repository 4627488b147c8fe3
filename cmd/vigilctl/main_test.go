package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestScoreCmd_Text(t *testing.T) {
	out, err := execute(t, "", "score", "send", "pic", "now,", "dont", "tell", "anyone")
	require.NoError(t, err)
	assert.Equal(t, "risk_level: high\nscore: 10\nflagged: dont tell anyone, send pic\n", out)
}

func TestScoreCmd_JSONFromStdin(t *testing.T) {
	out, err := execute(t, "You are so cute\n", "score", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		RiskLevel       string   `json:"risk_level"`
		FlaggedKeywords []string `json:"flagged_keywords"`
		Score           int      `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "low", resp.RiskLevel)
	assert.Equal(t, 1, resp.Score)
	assert.Equal(t, []string{"cute"}, resp.FlaggedKeywords)
}

func TestScoreCmd_SafeText(t *testing.T) {
	out, err := execute(t, "", "score", "see you at practice")
	require.NoError(t, err)
	assert.Contains(t, out, "risk_level: safe\n")
	assert.Contains(t, out, "flagged: -\n")
}

func TestScoreCmd_FailOn(t *testing.T) {
	tests := []struct {
		name     string
		failOn   string
		text     string
		wantCode int
	}{
		{"below threshold", "high", "You are so cute", 0},
		{"at threshold", "medium", "turn on your webcam", 2},
		{"above threshold", "low", "this is our little secret", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", "score", "--fail-on", tt.failOn, tt.text)
			if tt.wantCode == 0 {
				require.NoError(t, err)
				return
			}
			var ee *exitErr
			require.True(t, errors.As(err, &ee), "got %v", err)
			assert.Equal(t, tt.wantCode, ee.code)
		})
	}
}

func TestScoreCmd_BadFlags(t *testing.T) {
	_, err := execute(t, "", "score", "--format", "yaml", "hi")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = execute(t, "", "score", "--fail-on", "critical", "hi")
	assert.Error(t, err)

	_, err = execute(t, "", "score", "--fail-on", "safe", "hi")
	assert.ErrorContains(t, err, "--fail-on must be low, medium or high")
	var ee *exitErr
	assert.False(t, errors.As(err, &ee))
}

func TestScoreCmd_CustomRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nrules:\n  - {kind: literal, pattern: homework, weight: 4}\n"), 0o600))

	out, err := execute(t, "", "score", "--rules", path, "did you do the homework")
	require.NoError(t, err)
	assert.Contains(t, out, "risk_level: medium\n")
	assert.Contains(t, out, "flagged: homework\n")
}

func TestRulesValidateCmd(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte("version: 1\nrules:\n  - {kind: literal, pattern: a, weight: 1}\n  - {kind: literal, pattern: b, weight: 2}\n"), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("version: 1\nrules:\n  - {kind: literal, pattern: a, weight: 0}\n"), 0o600))

	out, err := execute(t, "", "rules", "validate", good)
	require.NoError(t, err)
	assert.Equal(t, good+": ok (2 rules)\n", out)

	_, err = execute(t, "", "rules", "validate", bad)
	assert.Error(t, err)

	_, err = execute(t, "", "rules", "validate")
	assert.Error(t, err)
}

func TestRulesListCmd(t *testing.T) {
	out, err := execute(t, "", "rules", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 30)
	assert.Regexp(t, `^KIND\s+WEIGHT\s+LABEL\s+PATTERN$`, lines[0])
	assert.Regexp(t, `^literal\s+5\s+dont tell anyone\s+dont tell anyone$`, lines[1])
	assert.Contains(t, out, "age_request")
}

func TestKindredIDCmd(t *testing.T) {
	out, err := execute(t, "", "kindred-id", "abc")
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad\n", out)
}
