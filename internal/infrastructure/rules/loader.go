// Package rules loads scorer rule sets from YAML.
package rules

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vigileye/vigil/internal/domain/service"
)

//go:embed default_rules.yaml
var defaultRules []byte

// SupportedVersion is the only rule file version understood by Parse.
const SupportedVersion = 1

// File is the on-disk rule file layout.
type File struct {
	Rules   []service.RuleDefinition `yaml:"rules"`
	Version int                      `yaml:"version"`
}

// Parse decodes and compiles a rule file. Unknown fields are rejected.
func Parse(r io.Reader) (*service.RuleSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("rules.Parse: empty rule file")
		}
		return nil, fmt.Errorf("rules.Parse: decode: %w", err)
	}
	if f.Version != SupportedVersion {
		return nil, fmt.Errorf("rules.Parse: unsupported version %d", f.Version)
	}
	if len(f.Rules) == 0 {
		return nil, errors.New("rules.Parse: no rules defined")
	}

	rs, err := service.CompileRules(f.Rules)
	if err != nil {
		return nil, fmt.Errorf("rules.Parse: %w", err)
	}
	return rs, nil
}

// Default returns the built-in rule set.
func Default() (*service.RuleSet, error) {
	return Parse(bytes.NewReader(defaultRules))
}

// MustDefault is Default for callers that treat a broken built-in file as
// a programming error.
func MustDefault() *service.RuleSet {
	rs, err := Default()
	if err != nil {
		panic(err)
	}
	return rs
}

// LoadFile compiles the rule file at path.
func LoadFile(path string) (*service.RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rules.LoadFile: %w", err)
	}
	defer f.Close()

	rs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Load returns the rule set at path, or the built-in set when path is empty.
func Load(path string) (*service.RuleSet, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
