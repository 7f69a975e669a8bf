// Package rules maps every recognized component, connection and variable
// kind to a generation rule: a Python code template plus the imports and
// runtime dependencies the rendered code needs. The registry is built once
// and never mutated; unknown kinds resolve to a generic fallback whose
// generated code raises at artifact runtime, so generation itself always
// succeeds.
package rules

import (
	"strings"
	"text/template"

	"github.com/dtsx2py/dtsx2py/internal/model"
)

// Rule is one generation entry of the registry.
type Rule struct {
	Name     string
	Imports  []string
	Requires []string

	tmpl *template.Template
}

// Render executes the rule's template over data.
func (r *Rule) Render(data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Registry is the static kind → rule table.
type Registry struct {
	components  map[model.ComponentKind]*Rule
	connections map[model.ConnectionKind]*Rule
	tasks       map[string]*Rule
	fallback    *Rule
	genericTask *Rule
}

var funcs = template.FuncMap{
	"pyident": PyIdent,
	"lower":   strings.ToLower,
	"join":    strings.Join,
}

func mustRule(name string, imports, requires []string, body string) *Rule {
	return &Rule{
		Name:     name,
		Imports:  imports,
		Requires: requires,
		tmpl:     template.Must(template.New(name).Funcs(funcs).Parse(body)),
	}
}

// PyIdent turns an arbitrary entity name into a usable Python identifier.
func PyIdent(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		s = "unnamed"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

// NewRegistry builds the rule table. Template bodies are package constants;
// a parse failure here is a programmer error and panics at startup.
func NewRegistry() *Registry {
	reg := &Registry{
		components:  map[model.ComponentKind]*Rule{},
		connections: map[model.ConnectionKind]*Rule{},
		tasks:       map[string]*Rule{},
	}

	reg.fallback = mustRule("unsupported", nil, nil, fallbackTemplate)
	reg.genericTask = mustRule("generic_task", nil, nil, genericTaskTemplate)
	reg.tasks["Microsoft.ExecuteSQLTask"] = mustRule("execute_sql_task",
		[]string{"sqlalchemy"}, []string{"sqlalchemy"}, sqlTaskTemplate)

	pandasSQL := []string{"pandas as pd", "sqlalchemy"}
	pandasSQLDeps := []string{"pandas", "sqlalchemy"}

	sourceRule := mustRule("relational_source", pandasSQL, pandasSQLDeps, relationalSourceTemplate)
	destRule := mustRule("relational_destination", pandasSQL, pandasSQLDeps, relationalDestinationTemplate)

	reg.components[model.CompOLEDBSource] = sourceRule
	reg.components[model.CompADONETSource] = sourceRule
	reg.components[model.CompOLEDBDestination] = destRule
	reg.components[model.CompADONETDestination] = destRule

	reg.components[model.CompFlatFileSource] = mustRule("flat_file_source",
		[]string{"pandas as pd"}, []string{"pandas"}, flatFileSourceTemplate)
	reg.components[model.CompFlatFileDestination] = mustRule("flat_file_destination",
		[]string{"pandas as pd"}, []string{"pandas"}, flatFileDestinationTemplate)
	reg.components[model.CompExcelSource] = mustRule("excel_source",
		[]string{"pandas as pd", "openpyxl"}, []string{"pandas", "openpyxl"}, excelSourceTemplate)
	reg.components[model.CompExcelDestination] = mustRule("excel_destination",
		[]string{"pandas as pd", "openpyxl"}, []string{"pandas", "openpyxl"}, excelDestinationTemplate)
	reg.components[model.CompXMLSource] = mustRule("xml_source",
		[]string{"pandas as pd", "xml.etree.ElementTree as ET"}, []string{"pandas"}, xmlSourceTemplate)

	reg.components[model.CompRawFileSource] = mustRule("raw_file_source",
		[]string{"pandas as pd"}, []string{"pandas"}, rawFileSourceTemplate)
	reg.components[model.CompRawFileDestination] = mustRule("raw_file_destination",
		[]string{"pandas as pd"}, []string{"pandas"}, rawFileDestinationTemplate)
	reg.components[model.CompRecordsetDestination] = mustRule("recordset_destination",
		[]string{"pandas as pd"}, []string{"pandas"}, recordsetDestinationTemplate)

	transform := func(name, body string) *Rule {
		return mustRule(name, []string{"pandas as pd"}, []string{"pandas"}, body)
	}
	reg.components[model.CompDerivedColumn] = transform("derived_column", derivedColumnTemplate)
	reg.components[model.CompDataConversion] = mustRule("data_conversion",
		[]string{"pandas as pd", "numpy as np"}, []string{"pandas", "numpy"}, dataConversionTemplate)
	reg.components[model.CompLookup] = transform("lookup", lookupTemplate)
	reg.components[model.CompMergeJoin] = transform("merge_join", mergeJoinTemplate)
	reg.components[model.CompMerge] = transform("merge", mergeTemplate)
	reg.components[model.CompUnionAll] = transform("union_all", unionAllTemplate)
	reg.components[model.CompSort] = transform("sort", sortTemplate)
	reg.components[model.CompAggregate] = transform("aggregate", aggregateTemplate)
	reg.components[model.CompConditionalSplit] = transform("conditional_split", conditionalSplitTemplate)
	reg.components[model.CompMulticast] = transform("multicast", multicastTemplate)
	reg.components[model.CompRowCount] = transform("row_count", rowCountTemplate)
	reg.components[model.CompCopyColumn] = transform("copy_column", copyColumnTemplate)
	reg.components[model.CompCharacterMap] = transform("character_map", characterMapTemplate)
	reg.components[model.CompOLEDBCommand] = mustRule("oledb_command",
		pandasSQL, pandasSQLDeps, oledbCommandTemplate)
	reg.components[model.CompScriptComponent] = transform("script_component", scriptComponentTemplate)

	reg.connections[model.ConnectionRelational] = mustRule("relational_connection",
		[]string{"sqlalchemy"}, []string{"sqlalchemy"}, relationalConnectionTemplate)
	reg.connections[model.ConnectionFlatFile] = mustRule("flat_file_connection",
		[]string{"pandas as pd"}, []string{"pandas"}, flatFileConnectionTemplate)
	reg.connections[model.ConnectionSpreadsheet] = mustRule("spreadsheet_connection",
		[]string{"pandas as pd", "openpyxl"}, []string{"pandas", "openpyxl"}, spreadsheetConnectionTemplate)
	reg.connections[model.ConnectionMarkup] = mustRule("markup_connection",
		[]string{"xml.etree.ElementTree as ET"}, nil, markupConnectionTemplate)
	reg.connections[model.ConnectionWeb] = mustRule("web_connection",
		[]string{"requests"}, []string{"requests"}, webConnectionTemplate)

	return reg
}

// Component resolves the rule for a component kind; unknown kinds get the
// fallback rule, never a miss.
func (reg *Registry) Component(kind model.ComponentKind) *Rule {
	if r, ok := reg.components[kind]; ok {
		return r
	}
	return reg.fallback
}

// Connection resolves the rule for a connection kind; unknown kinds get
// the fallback rule.
func (reg *Registry) Connection(kind model.ConnectionKind) *Rule {
	if r, ok := reg.connections[kind]; ok {
		return r
	}
	return reg.fallback
}

// Task resolves the rule for a control-flow task kind (the task's
// creation name); unrecognized kinds get the generic task rule, whose
// generated code raises at artifact runtime.
func (reg *Registry) Task(kind string) *Rule {
	if r, ok := reg.tasks[kind]; ok {
		return r
	}
	return reg.genericTask
}

// ProviderDriver names the Python DB driver package for a provider, used
// to extend the dependency manifest for relational connections.
func ProviderDriver(p model.Provider) (importName, requireName string, ok bool) {
	switch p {
	case model.ProviderSQLServer:
		return "pyodbc", "pyodbc", true
	case model.ProviderOracle:
		return "cx_Oracle", "cx_Oracle", true
	case model.ProviderMySQL:
		return "pymysql", "pymysql", true
	case model.ProviderPostgres:
		return "psycopg2", "psycopg2-binary", true
	case model.ProviderSQLite:
		return "sqlite3", "", true // stdlib driver, no requirement
	default:
		return "", "", false
	}
}
