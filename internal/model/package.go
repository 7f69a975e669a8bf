// Package model defines the normalized intermediate representation of a
// parsed DTSX package: one Package per source document, owning its
// connection managers, variables, data-flow components and control-flow
// tasks. All records are plain structs; every enumerated kind carries an
// explicit Unknown arm so extraction can always degrade instead of failing.
package model

// Package is the assembled model of one DTSX document.
type Package struct {
	Name         string
	Version      string // major.minor.build
	ID           string // DTSID of the package element
	Description  string
	CreationDate string
	Creator      string

	Metadata map[string]string

	Connections []Connection
	Variables   []Variable
	Components  []Component
	Tasks       []Task

	ConfigFiles []ConfigFile

	// EnvironmentRefs maps every environment-variable name referenced
	// anywhere in the package (connection strings, variable values, task
	// properties, configuration entries) to its current process value,
	// "" when unset. Computed last during assembly.
	EnvironmentRefs map[string]string
}

// ConnectionByRef finds the connection a task references, by DTSID first,
// then by name. Names are not unique in the source format; the first match
// by document order wins. nil when nothing matches.
func (p *Package) ConnectionByRef(ref string) *Connection {
	for i := range p.Connections {
		if p.Connections[i].ID == ref {
			return &p.Connections[i]
		}
	}
	for i := range p.Connections {
		if p.Connections[i].Name == ref {
			return &p.Connections[i]
		}
	}
	return nil
}

// Connection is one connection manager. Identity is the document's DTSID;
// names are not unique in the source format.
type Connection struct {
	ID           string
	Name         string
	CreationName string
	Kind         ConnectionKind
	Provider     Provider

	ConnectionString string
	// Properties holds the flat key/value decomposition of the connection
	// string: either semicolon pairs or, for URL-style strings, the
	// scheme/host/port/path/username/password/query parts.
	Properties map[string]string

	Description          string
	RetainSameConnection bool
}

// Variable is one package variable or parameter. The value is always
// carried as text; coercion happens at consumption time.
type Variable struct {
	ID       string
	Name     string
	TypeCode string // raw numeric code from the document
	Kind     VariableKind
	Scope    VariableScope
	Value    string
	ReadOnly bool

	Description       string
	RaiseChangedEvent bool
}

// Component is one node of a data-flow pipeline.
type Component struct {
	ID         string // component class identifier
	Name       string
	Kind       ComponentKind
	Properties map[string]string
	Inputs     []Port
	Outputs    []Port
}

// Port is an input or output of a data-flow component.
type Port struct {
	Name        string
	IsErrorOut  bool
	IsSorted    bool
	Synchronous bool
	Columns     []Column
}

// Column describes one typed column on a port.
type Column struct {
	Name                       string
	DataType                   string
	Precision                  int
	Scale                      int
	Length                     int
	LineageID                  string
	ExternalMetadataColumnName string
	Expression                 string
}

// Task is one control-flow task outside the data pipeline. Kind is the
// task's creation name (e.g. "Microsoft.ExecuteSQLTask"); Properties is
// task-kind specific.
type Task struct {
	ID         string
	Name       string
	Kind       string
	Properties map[string]string
}

// ConfigFile is one parsed .dtsConfig sibling document.
type ConfigFile struct {
	Path    string
	Entries []ConfigEntry
	// EnvironmentRefs is the set of environment-variable names referenced
	// by any entry value.
	EnvironmentRefs []string
}

// ConfigEntry is one path/value pair of a configuration file. Encrypted
// values are never decrypted here; Value holds a placeholder.
type ConfigEntry struct {
	Path        string
	Value       string
	Encrypted   bool
	ValueType   string
	Description string
}
