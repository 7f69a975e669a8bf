package synth

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
	"github.com/dtsx2py/dtsx2py/internal/rules"
)

// baseRequires ships with every generated package regardless of the
// entities in it.
var baseRequires = []string{"pandas", "sqlalchemy"}

var baseImports = []string{"pandas as pd", "sqlalchemy"}

// Synthesizer renders artifacts for one package at a time.
type Synthesizer struct {
	registry *rules.Registry
	diags    *diag.Collector

	// now is the generation timestamp source; overridable in tests.
	now func() time.Time
}

// NewSynthesizer returns a synthesizer using reg and reporting through dc.
func NewSynthesizer(reg *rules.Registry, dc *diag.Collector) *Synthesizer {
	return &Synthesizer{registry: reg, diags: dc, now: time.Now}
}

// Generate renders the full artifact set for pkg. A failing entity is
// skipped with a diagnostic; every other entity still produces its
// artifact, and generation as a whole never fails.
func (s *Synthesizer) Generate(pkg *model.Package) []Artifact {
	sub := rules.NewSubstituter(rules.PackageResolver(pkg), s.diags, diag.Context{
		Component: pkg.Name, Operation: "substitute",
	})

	imports := newStringSet(baseImports...)
	requires := newStringSet(baseRequires...)
	names := newNamer()

	var artifacts []Artifact
	var calls []string

	for _, comp := range pkg.Components {
		art, call, ok := s.componentArtifact(pkg, comp, sub, names)
		if !ok {
			continue
		}
		imports.add(art.Imports...)
		requires.add(art.Requires...)
		calls = append(calls, call)
		artifacts = append(artifacts, art)
	}

	for _, task := range pkg.Tasks {
		art, call, ok := s.taskArtifact(pkg, task, sub, names)
		if !ok {
			continue
		}
		imports.add(art.Imports...)
		requires.add(art.Requires...)
		calls = append(calls, call)
		artifacts = append(artifacts, art)
	}

	for _, conn := range pkg.Connections {
		rule := s.registry.Connection(conn.Kind)
		imports.add(rule.Imports...)
		requires.add(rule.Requires...)
		if imp, req, ok := rules.ProviderDriver(conn.Provider); ok {
			imports.add(imp)
			if req != "" {
				requires.add(req)
			}
		}
	}

	main := s.mainArtifact(pkg, imports.sorted(), requires.sorted(), calls)
	cfg := s.configArtifact(pkg, sub)

	manifest := Artifact{
		Name:     "requirements.txt",
		Content:  requirementsContent(pkg.Name, requires.sorted()),
		Requires: requires.sorted(),
		Metadata: map[string]string{"package": pkg.Name},
	}

	out := []Artifact{main}
	out = append(out, artifacts...)
	out = append(out, cfg, manifest)
	return out
}

func (s *Synthesizer) componentArtifact(pkg *model.Package, comp model.Component, sub *rules.Substituter, names *namer) (Artifact, string, bool) {
	rule := s.registry.Component(comp.Kind)
	data := componentData(pkg, comp, sub)

	body, err := rule.Render(data)
	if err != nil {
		s.diags.Errorf(diag.CategoryConversion, diag.Context{
			Component: comp.Name, Operation: "render_component",
		}, "skipping component %s: %v", comp.Name, err)
		return Artifact{}, "", false
	}

	name := names.claim(rules.PyIdent(comp.Name) + "_dataflow.py")
	content := scriptHeader(name, pkg, "data-flow component "+comp.Name, s.now()) +
		importBlock(rule.Imports) + "\n\n" + body

	return Artifact{
		Name:     name,
		Content:  content,
		Imports:  append([]string(nil), rule.Imports...),
		Requires: append([]string(nil), rule.Requires...),
		Metadata: map[string]string{
			"package":  pkg.Name,
			"entity":   comp.Name,
			"kind":     comp.Kind.String(),
			"rule":     rule.Name,
			"class_id": comp.ID,
		},
	}, callFor(comp, data.Func), true
}

func (s *Synthesizer) taskArtifact(pkg *model.Package, task model.Task, sub *rules.Substituter, names *namer) (Artifact, string, bool) {
	rule := s.registry.Task(task.Kind)

	// Task properties embed free text (statement templates); expand
	// references before rendering.
	props := make(map[string]string, len(task.Properties))
	for k, v := range task.Properties {
		props[k] = sub.Expand(v)
	}
	data := rules.TaskData{
		Func:       rules.PyIdent(task.Name),
		Name:       task.Name,
		Kind:       task.Kind,
		Package:    pkg.Name,
		Properties: props,
	}

	body, err := rule.Render(data)
	if err != nil {
		s.diags.Errorf(diag.CategoryConversion, diag.Context{
			Component: task.Name, Operation: "render_task",
		}, "skipping task %s: %v", task.Name, err)
		return Artifact{}, "", false
	}

	name := names.claim(rules.PyIdent(task.Name) + "_task.py")
	content := scriptHeader(name, pkg, "control-flow task "+task.Name, s.now()) +
		importBlock(rule.Imports) + "\n\n" + body

	call := "execute_" + data.Func + "(engine)"
	if rule.Name == "generic_task" {
		call = "execute_" + data.Func + "()"
	}
	meta := map[string]string{
		"package": pkg.Name,
		"entity":  task.Name,
		"kind":    task.Kind,
		"rule":    rule.Name,
	}
	if ref := task.Properties["connection"]; ref != "" {
		if conn := pkg.ConnectionByRef(ref); conn != nil {
			meta["connection"] = conn.Name
		}
	}
	return Artifact{
		Name:     name,
		Content:  content,
		Imports:  append([]string(nil), rule.Imports...),
		Requires: append([]string(nil), rule.Requires...),
		Metadata: meta,
	}, call, true
}

func componentData(pkg *model.Package, comp model.Component, sub *rules.Substituter) rules.ComponentData {
	data := rules.ComponentData{
		Func:       rules.PyIdent(comp.Name),
		Name:       comp.Name,
		Kind:       comp.Kind.String(),
		Package:    pkg.Name,
		Properties: comp.Properties,
	}
	for _, port := range comp.Inputs {
		for _, col := range port.Columns {
			data.InputCols = append(data.InputCols, col.Name)
		}
	}
	for _, port := range comp.Outputs {
		for _, col := range port.Columns {
			data.OutputCols = append(data.OutputCols, col.Name)
			if col.Expression != "" {
				if data.Expressions == nil {
					data.Expressions = map[string]string{}
				}
				data.Expressions[col.Name] = sub.Expand(col.Expression)
			}
		}
	}
	return data
}

func callFor(comp model.Component, fn string) string {
	switch {
	case comp.Kind.IsSource():
		return "read_" + fn + "(engine)"
	case comp.Kind.IsDestination():
		return "write_" + fn + "(df, engine, table_name=None)"
	case comp.Kind == model.CompUnknown:
		return fn + "()"
	default:
		return "apply_" + fn + "(df)"
	}
}

var mainTmpl = template.Must(template.New("main").Parse(`#!/usr/bin/env python3
"""{{.ScriptName}} - ETL driver generated from package: {{.PackageName}}

Generated: {{.Generated}}
{{- if .Description}}
Description: {{.Description}}
{{- end}}
"""

import logging
import sys

{{range .Imports}}import {{.}}
{{end}}
from {{.ConfigModule}} import CONNECTIONS, VARIABLES, ENVIRONMENT


def setup_logging():
    logging.basicConfig(
        level=logging.INFO,
        format="%(asctime)s - %(name)s - %(levelname)s - %(message)s",
    )
    return logging.getLogger("{{.LoggerName}}")


def main():
    logger = setup_logging()
    logger.info("starting ETL run for package {{.PackageName}}")
    try:
{{- if .Steps}}
{{- range .Steps}}
        # {{.}}
{{- end}}
        logger.info("ETL run completed")
{{- else}}
        logger.info("package declares no executable steps")
{{- end}}
        return 0
    except Exception:
        logger.exception("ETL run failed")
        return 1


if __name__ == "__main__":
    sys.exit(main())
`))

func (s *Synthesizer) mainArtifact(pkg *model.Package, imports, requires, calls []string) Artifact {
	base := rules.PyIdent(pkg.Name)
	name := base + "_main.py"

	var b strings.Builder
	err := mainTmpl.Execute(&b, struct {
		ScriptName, PackageName, Description, Generated string
		ConfigModule, LoggerName                        string
		Imports, Steps                                  []string
	}{
		ScriptName:   name,
		PackageName:  pkg.Name,
		Description:  pkg.Description,
		Generated:    s.now().Format("2006-01-02 15:04:05"),
		ConfigModule: base + "_config",
		LoggerName:   base,
		Imports:      imports,
		Steps:        calls,
	})
	if err != nil {
		// The main template only touches fields that always exist; a
		// render failure would be a programmer error.
		s.diags.Add(diag.SeverityCritical, diag.CategoryConversion,
			fmt.Sprintf("main artifact render failed: %v", err),
			diag.Context{Component: pkg.Name, Operation: "render_main"})
	}

	return Artifact{
		Name:     name,
		Content:  b.String(),
		Imports:  imports,
		Requires: requires,
		Metadata: map[string]string{
			"package": pkg.Name,
			"version": pkg.Version,
		},
	}
}

func scriptHeader(script string, pkg *model.Package, derived string, now time.Time) string {
	return fmt.Sprintf(`#!/usr/bin/env python3
"""%s - generated from %s of package %s

Generated: %s
"""

`, script, derived, pkg.Name, now.Format("2006-01-02 15:04:05"))
}

func importBlock(imports []string) string {
	if len(imports) == 0 {
		return ""
	}
	var b strings.Builder
	for _, imp := range imports {
		b.WriteString("import " + imp + "\n")
	}
	return b.String()
}

func requirementsContent(pkgName string, requires []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Requirements for the %s ETL package\n", pkgName)
	b.WriteString("# Generated by dtsx2py\n\n")
	for _, r := range requires {
		b.WriteString(r + "\n")
	}
	return b.String()
}

// namer hands out unique artifact file names; colliding entity names get
// a numeric suffix.
type namer struct {
	used map[string]int
}

func newNamer() *namer { return &namer{used: map[string]int{}} }

func (n *namer) claim(name string) string {
	count := n.used[name]
	n.used[name] = count + 1
	if count == 0 {
		return name
	}
	ext := ""
	base := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		base, ext = name[:i], name[i:]
	}
	return fmt.Sprintf("%s_%d%s", base, count+1, ext)
}
