package dtsx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
	"github.com/dtsx2py/dtsx2py/internal/rules"
)

// Parser assembles the package model for one document at a time. It holds
// no per-document state; the same parser can process a whole batch.
type Parser struct {
	diags *diag.Collector
	dec   Decryptor

	// lookupEnv resolves environment-variable names; overridable in tests.
	lookupEnv func(string) string
}

// NewParser returns a parser reporting through dc. A nil decryptor gets
// the NoDecryptor default.
func NewParser(dc *diag.Collector, dec Decryptor) *Parser {
	if dec == nil {
		dec = NoDecryptor{}
	}
	return &Parser{
		diags:     dc,
		dec:       dec,
		lookupEnv: func(name string) string { return os.Getenv(name) },
	}
}

// ParseFile parses one .dtsx document into a package model.
//
// A missing file, a wrong extension or malformed XML is fatal: no package
// is returned. Any failure below that level degrades to a partial package
// plus diagnostics.
func (p *Parser) ParseFile(path string) (*model.Package, error) {
	if !strings.EqualFold(filepath.Ext(path), ".dtsx") {
		p.diags.Errorf(diag.CategoryParsing, diag.Context{
			FilePath: path, Component: "parser", Operation: "parse_file",
		}, "not a .dtsx file: %s", path)
		return nil, fmt.Errorf("not a .dtsx file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		p.diags.Errorf(diag.CategorySystem, diag.Context{
			FilePath: path, Component: "parser", Operation: "parse_file",
		}, "cannot open package: %v", err)
		return nil, fmt.Errorf("open package: %w", err)
	}
	defer func() { _ = f.Close() }()

	root, err := decode(f)
	if err != nil {
		p.diags.Add(diag.SeverityHigh, diag.CategoryParsing, fmt.Sprintf("malformed XML: %v", err), diag.Context{
			FilePath: path, Component: "parser", Operation: "parse_xml",
		})
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	pkg := p.extractMetadata(root)
	p.extractConnections(root, pkg, path)
	p.extractVariables(root, pkg, path)
	p.extractExecutables(root, pkg, path)
	p.extractConfigFiles(path, pkg)
	pkg.EnvironmentRefs = p.collectEnvironmentRefs(pkg)

	return pkg, nil
}

// ValidateStructure reports whether path parses as XML and has the shape
// of a package document (an Executable root with an ExecutableType).
func (p *Parser) ValidateStructure(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	root, err := decode(f)
	if err != nil {
		return false
	}
	return root.Name.Local == "Executable" && attr(root, nsDTS, "ExecutableType") != ""
}

// extractMetadata always succeeds; missing attributes yield empty strings.
func (p *Parser) extractMetadata(root *Element) *model.Package {
	version := fmt.Sprintf("%s.%s.%s",
		attr(root, nsDTS, "VersionMajor"),
		attr(root, nsDTS, "VersionMinor"),
		attr(root, nsDTS, "VersionBuild"))

	return &model.Package{
		Name:         attr(root, nsDTS, "ObjectName"),
		Version:      version,
		ID:           attr(root, nsDTS, "DTSID"),
		Description:  attr(root, nsDTS, "Description"),
		CreationDate: attr(root, nsDTS, "CreationDate"),
		Creator:      attr(root, nsDTS, "CreatorName"),
		Metadata: map[string]string{
			"executable_type":  attr(root, nsDTS, "ExecutableType"),
			"creation_name":    attr(root, nsDTS, "CreationName"),
			"creator_computer": attr(root, nsDTS, "CreatorComputerName"),
			"package_type":     attr(root, nsDTS, "PackageType"),
			"version_guid":     attr(root, nsDTS, "VersionGUID"),
		},
	}
}

func (p *Parser) extractConnections(root *Element, pkg *model.Package, path string) {
	section := child(root, nsDTS, "ConnectionManagers")
	if section == nil {
		return
	}
	names := map[string]bool{}
	for _, ce := range children(section, nsDTS, "ConnectionManager") {
		if conn, ok := extractConnection(ce, p.diags, path); ok {
			if conn.Name != "" && names[conn.Name] {
				p.diags.Warnf(diag.CategoryValidation, diag.Context{
					FilePath: path, Component: conn.Name, Operation: "extract",
				}, "duplicate connection manager name %q, first definition wins for name lookups", conn.Name)
			}
			names[conn.Name] = true
			pkg.Connections = append(pkg.Connections, conn)
		}
	}
}

func (p *Parser) extractVariables(root *Element, pkg *model.Package, path string) {
	section := child(root, nsDTS, "Variables")
	if section == nil {
		return
	}
	for _, ve := range children(section, nsDTS, "Variable") {
		if v, ok := extractVariable(ve, p.diags, path); ok {
			pkg.Variables = append(pkg.Variables, v)
		}
	}
}

// extractExecutables dispatches each executable to the data-flow or
// control-flow extractor by its declared type token.
func (p *Parser) extractExecutables(root *Element, pkg *model.Package, path string) {
	section := child(root, nsDTS, "Executables")
	if section == nil {
		return
	}
	for _, ee := range children(section, nsDTS, "Executable") {
		execType := attr(ee, nsDTS, "ExecutableType")
		if isDataFlowExecutable(execType) {
			pkg.Components = append(pkg.Components, extractPipeline(ee, p.diags, path)...)
			continue
		}
		if task, ok := extractTask(ee, p.diags, path); ok {
			pkg.Tasks = append(pkg.Tasks, task)
		}
	}
}

func (p *Parser) extractConfigFiles(path string, pkg *model.Package) {
	for _, cfPath := range discoverConfigFiles(path) {
		cf, err := extractConfigFile(cfPath, p.dec, p.diags)
		if err != nil {
			p.diags.Warnf(diag.CategoryConfiguration, diag.Context{
				FilePath: cfPath, Component: "parser", Operation: "parse_config",
			}, "skipping configuration file: %v", err)
			continue
		}
		pkg.ConfigFiles = append(pkg.ConfigFiles, cf)
	}
}

// collectEnvironmentRefs is the final cross-document scan: every
// text-bearing field of connections, variables and task properties plus
// the configuration files' own reference sets, each name resolved from
// the process environment ("" when unset).
func (p *Parser) collectEnvironmentRefs(pkg *model.Package) map[string]string {
	refs := map[string]string{}
	add := func(names []string) {
		for _, n := range names {
			refs[n] = p.lookupEnv(n)
		}
	}

	for _, cf := range pkg.ConfigFiles {
		add(cf.EnvironmentRefs)
	}
	for _, conn := range pkg.Connections {
		add(rules.EnvRefs(conn.ConnectionString))
	}
	for _, v := range pkg.Variables {
		add(rules.EnvRefs(v.Value))
	}
	for _, t := range pkg.Tasks {
		for _, value := range t.Properties {
			add(rules.EnvRefs(value))
		}
	}
	return refs
}
