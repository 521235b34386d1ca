// Package loader reads funsh programs and test fixtures from YAML files.
package loader

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/panyam/funsh/decl"
	"gopkg.in/yaml.v3"
)

// Expectation describes the outcome a fixture's program should have.
// Value and Output use the rendered (Kind(payload)) form of values.
type Expectation struct {
	Value  string   `yaml:"value,omitempty"`
	Error  string   `yaml:"error,omitempty"`
	Output []string `yaml:"output,omitempty"`
}

// Fixture is a program together with its input lines and expected outcome.
type Fixture struct {
	Name    string         `yaml:"name"`
	Input   []string       `yaml:"input,omitempty"`
	Expect  Expectation    `yaml:"expect"`
	Program map[string]any `yaml:"program"`

	// Source is the path the fixture was loaded from.
	Source string `yaml:"-"`

	expr decl.Expr
}

// Expr returns the decoded program.
func (f *Fixture) Expr() decl.Expr {
	return f.expr
}

// InputText joins the input lines the way a terminal would deliver them.
func (f *Fixture) InputText() string {
	if len(f.Input) == 0 {
		return ""
	}
	return strings.Join(f.Input, "\n") + "\n"
}

// LoadFixture reads and decodes the fixture at name within fsys.
func LoadFixture(fsys fs.FS, name string) (*Fixture, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if f.Program == nil {
		return nil, fmt.Errorf("%s: program: %w", name, ErrMissingField)
	}
	if f.expr, err = decodeNode(f.Program); err != nil {
		return nil, fmt.Errorf("%s: program: %w", name, err)
	}
	if f.Expect.Value != "" && f.Expect.Error != "" {
		return nil, fmt.Errorf("%s: expect: %w: value and error are exclusive", name, ErrInvalidField)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}
	f.Source = name
	return &f, nil
}

// LoadFixtures loads every file in fsys matching pattern, sorted by path.
// Files that fail to load are reported together in the returned error; the
// fixtures that did load are still returned.
func LoadFixtures(fsys fs.FS, pattern string) ([]*Fixture, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var errs ErrorCollector
	var fixtures []*Fixture
	for _, name := range names {
		f, err := LoadFixture(fsys, name)
		if err != nil {
			if !errs.AddErrors(err) {
				break
			}
			continue
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, errs.Err()
}
