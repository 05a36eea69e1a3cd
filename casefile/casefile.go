// Package casefile loads YAML suites of Xenocode programs with their inputs
// and expected output, and checks them against an engine.
package casefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xenoquest/xenocode/xeno"
)

// Suite is one YAML file of cases.
type Suite struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
	Path  string `yaml:"-"`
}

// Case is a program with its input queue and expectations. A non-empty Error
// or Kind means the case expects the execution to fail.
type Case struct {
	Name    string   `yaml:"name"`
	Program string   `yaml:"program"`
	Inputs  []any    `yaml:"inputs,omitempty"`
	Output  []string `yaml:"output"`
	Error   string   `yaml:"error,omitempty"`
	Kind    string   `yaml:"kind,omitempty"`
}

// ExpectsFailure reports whether the case describes a failing execution.
func (c Case) ExpectsFailure() bool {
	return c.Error != "" || c.Kind != ""
}

// InputValues converts the decoded YAML inputs into interpreter values.
func (c Case) InputValues() ([]xeno.Value, error) {
	values := make([]xeno.Value, len(c.Inputs))
	for i, raw := range c.Inputs {
		val, err := xeno.FromNative(raw)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i+1, err)
		}
		values[i] = val
	}
	return values, nil
}

// Load parses a single suite file.
func Load(path string) (*Suite, error) {
	if path == "" {
		return nil, fmt.Errorf("casefile: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("casefile: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var suite Suite
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("casefile: parse %s: %w", abs, err)
	}
	suite.Path = abs
	if err := suite.normalize(); err != nil {
		return nil, fmt.Errorf("casefile: %s: %w", abs, err)
	}
	return &suite, nil
}

// LoadDir loads every .yaml and .yml file directly inside dir, sorted by name.
func LoadDir(dir string) ([]*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	suites := make([]*Suite, 0, len(paths))
	for _, path := range paths {
		suite, err := Load(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

var errNoCases = errors.New("suite has no cases")

func (s *Suite) normalize() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
	}
	if len(s.Cases) == 0 {
		return errNoCases
	}
	seen := make(map[string]struct{}, len(s.Cases))
	for i := range s.Cases {
		c := &s.Cases[i]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			c.Name = fmt.Sprintf("case %d", i+1)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate case name %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if strings.TrimSpace(c.Program) == "" {
			return fmt.Errorf("case %q has no program", c.Name)
		}
		if c.Output == nil {
			c.Output = []string{}
		}
	}
	return nil
}
