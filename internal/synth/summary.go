package synth

import (
	"time"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
	"github.com/dtsx2py/dtsx2py/internal/rules"
)

// Summary is the machine-readable record of one conversion, written
// next to the generated scripts as <name>_summary.json.
type Summary struct {
	Package     PackageSummary    `json:"package"`
	Artifacts   []ArtifactSummary `json:"artifacts"`
	Requires    []string          `json:"requirements"`
	Diagnostics diag.Summary      `json:"diagnostics"`
	GeneratedAt string            `json:"generated_at"`
}

type PackageSummary struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Connections int    `json:"connections"`
	Variables   int    `json:"variables"`
	Components  int    `json:"components"`
	Tasks       int    `json:"tasks"`
	ConfigFiles int    `json:"config_files"`
}

type ArtifactSummary struct {
	Name     string            `json:"name"`
	Requires []string          `json:"requirements,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SummaryName returns the summary file name for pkg.
func SummaryName(pkg *model.Package) string {
	return rules.PyIdent(pkg.Name) + "_summary.json"
}

// Summarize builds the conversion summary for pkg from the generated
// artifacts and the collected diagnostics.
func Summarize(pkg *model.Package, artifacts []Artifact, dc *diag.Collector, now time.Time) Summary {
	requires := newStringSet()
	arts := make([]ArtifactSummary, 0, len(artifacts))
	for _, a := range artifacts {
		requires.add(a.Requires...)
		arts = append(arts, ArtifactSummary{
			Name:     a.Name,
			Requires: a.Requires,
			Metadata: a.Metadata,
		})
	}
	return Summary{
		Package: PackageSummary{
			Name:        pkg.Name,
			Version:     pkg.Version,
			Description: pkg.Description,
			Connections: len(pkg.Connections),
			Variables:   len(pkg.Variables),
			Components:  len(pkg.Components),
			Tasks:       len(pkg.Tasks),
			ConfigFiles: len(pkg.ConfigFiles),
		},
		Artifacts:   arts,
		Requires:    requires.sorted(),
		Diagnostics: dc.Summarize(),
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
}

// MarshalSummary encodes s as indented JSON.
func MarshalSummary(s Summary) []byte {
	return []byte(oj.JSON(s, &ojg.Options{Indent: 2, UseTags: true, Sort: true}))
}
