// Package codebank serves multiple-choice code-output problems from a
// fixed catalog.
package codebank

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/riseup/internal/rng"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Bank holds a validated catalog and selects problems from it.
type Bank struct {
	problems []CodeProblem
	src      rng.Source
}

// NewDefault loads the embedded catalog.
func NewDefault(src rng.Source) (*Bank, error) {
	return Load(defaultCatalog, src)
}

// Load parses and validates a YAML catalog.
func Load(data []byte, src rng.Source) (*Bank, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	problems := make([]CodeProblem, 0, len(f.Problems))
	for _, p := range f.Problems {
		problems = append(problems, CodeProblem{
			ID:           p.ID,
			Language:     p.Language,
			Code:         strings.TrimRight(p.Code, "\n"),
			Question:     Question,
			Options:      p.Options,
			CorrectIndex: p.CorrectIndex,
		})
	}
	if err := validate(problems); err != nil {
		return nil, err
	}
	return &Bank{problems: problems, src: src}, nil
}

// validate enforces the catalog invariants: a non-empty catalog, unique
// ids, exactly four options and a correct index in range.
func validate(problems []CodeProblem) error {
	if len(problems) == 0 {
		return fmt.Errorf("%w: no problems", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(problems))
	for i, p := range problems {
		switch {
		case p.ID == "":
			return &CatalogError{Index: i, Reason: "missing id"}
		case seen[p.ID]:
			return &CatalogError{ProblemID: p.ID, Index: i, Reason: "duplicate id"}
		case strings.TrimSpace(p.Code) == "":
			return &CatalogError{ProblemID: p.ID, Index: i, Reason: "empty code"}
		case len(p.Options) != OptionCount:
			return &CatalogError{ProblemID: p.ID, Index: i, Reason: fmt.Sprintf("%d options, want %d", len(p.Options), OptionCount)}
		case p.CorrectIndex < 0 || p.CorrectIndex >= OptionCount:
			return &CatalogError{ProblemID: p.ID, Index: i, Reason: fmt.Sprintf("correct index %d out of range", p.CorrectIndex)}
		}
		seen[p.ID] = true
	}
	return nil
}

// Len returns the number of problems in the catalog.
func (b *Bank) Len() int { return len(b.problems) }

// Problems returns a copy of the catalog.
func (b *Bank) Problems() []CodeProblem {
	out := make([]CodeProblem, len(b.problems))
	copy(out, b.problems)
	return out
}

// Get returns the problem with the given id.
func (b *Bank) Get(id string) (CodeProblem, bool) {
	for _, p := range b.problems {
		if p.ID == id {
			return p, true
		}
	}
	return CodeProblem{}, false
}

// Random returns a uniformly chosen problem whose id is not in excludeIDs.
// If the exclusions cover the whole catalog, it picks uniformly from the
// full catalog instead; it never comes back empty-handed.
func (b *Bank) Random(excludeIDs []string) CodeProblem {
	pool := b.problems
	if len(excludeIDs) > 0 {
		excluded := make(map[string]bool, len(excludeIDs))
		for _, id := range excludeIDs {
			excluded[id] = true
		}
		filtered := make([]CodeProblem, 0, len(b.problems))
		for _, p := range b.problems {
			if !excluded[p.ID] {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}
	return pool[rng.Pick(b.src, len(pool))]
}

// CheckAnswer reports whether selectedIndex is the correct option.
func CheckAnswer(p CodeProblem, selectedIndex int) bool {
	return selectedIndex == p.CorrectIndex
}
