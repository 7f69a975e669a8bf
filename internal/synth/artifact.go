// Package synth consumes the assembled package model and the rule
// registry to emit the generated artifacts: one main driver script,
// per-component and per-task scripts, a configuration script, a
// dependency manifest and a JSON summary document.
package synth

import "sort"

// Artifact is one generated output file.
type Artifact struct {
	Name     string            `json:"name"`
	Content  string            `json:"-"`
	Imports  []string          `json:"imports,omitempty"`
	Requires []string          `json:"requires,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// stringSet accumulates deduplicated strings and hands them back sorted,
// which keeps every aggregated list deterministic.
type stringSet map[string]struct{}

func newStringSet(items ...string) stringSet {
	s := stringSet{}
	s.add(items...)
	return s
}

func (s stringSet) add(items ...string) {
	for _, it := range items {
		if it != "" {
			s[it] = struct{}{}
		}
	}
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for it := range s {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}
