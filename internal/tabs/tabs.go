// ABOUTME: Generic tab navigator over named form sections
// ABOUTME: Completion and progress are recomputed from the value on every call

package tabs

import (
	"fmt"
	"math"
)

// Section is one independently navigable part of a form
type Section struct {
	ID       string
	Label    string
	Required bool
}

// Navigator tracks the active section and derives completion for a value of type T
type Navigator[T any] struct {
	sections []Section
	rules    map[string]func(T) bool
	active   int
}

// New creates a navigator starting at the first section. Every section
// needs a completeness rule.
func New[T any](sections []Section, rules map[string]func(T) bool) (*Navigator[T], error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("navigator needs at least one section")
	}
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate section %q", s.ID)
		}
		seen[s.ID] = true
		if rules[s.ID] == nil {
			return nil, fmt.Errorf("section %q has no completeness rule", s.ID)
		}
	}
	return &Navigator[T]{
		sections: append([]Section(nil), sections...),
		rules:    rules,
	}, nil
}

// Sections returns the sections in display order
func (n *Navigator[T]) Sections() []Section {
	return append([]Section(nil), n.sections...)
}

// IsSectionComplete applies the section's rule to v. Unknown ids are incomplete.
func (n *Navigator[T]) IsSectionComplete(id string, v T) bool {
	rule, ok := n.rules[id]
	return ok && rule(v)
}

// Completed returns the ids of complete sections in display order
func (n *Navigator[T]) Completed(v T) []string {
	var done []string
	for _, s := range n.sections {
		if n.rules[s.ID](v) {
			done = append(done, s.ID)
		}
	}
	return done
}

// Progress is the rounded percentage of required sections that are complete
func (n *Navigator[T]) Progress(v T) int {
	required, done := 0, 0
	for _, s := range n.sections {
		if !s.Required {
			continue
		}
		required++
		if n.rules[s.ID](v) {
			done++
		}
	}
	if required == 0 {
		return 100
	}
	return int(math.Round(100 * float64(done) / float64(required)))
}

// Active returns the active section
func (n *Navigator[T]) Active() Section {
	return n.sections[n.active]
}

// Index returns the position of the active section
func (n *Navigator[T]) Index() int {
	return n.active
}

// Advance moves to the next section; a no-op on the last one
func (n *Navigator[T]) Advance() {
	if n.active < len(n.sections)-1 {
		n.active++
	}
}

// Retreat moves to the previous section; a no-op on the first one
func (n *Navigator[T]) Retreat() {
	if n.active > 0 {
		n.active--
	}
}

// JumpTo activates section id regardless of completion
func (n *Navigator[T]) JumpTo(id string) error {
	for i, s := range n.sections {
		if s.ID == id {
			n.active = i
			return nil
		}
	}
	return fmt.Errorf("unknown section %q", id)
}

// IsFirst reports whether the first section is active
func (n *Navigator[T]) IsFirst() bool {
	return n.active == 0
}

// IsLast reports whether the last section is active
func (n *Navigator[T]) IsLast() bool {
	return n.active == len(n.sections)-1
}
