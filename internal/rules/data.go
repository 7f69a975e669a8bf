package rules

// ComponentData is the template context for component rules.
type ComponentData struct {
	Func        string // python identifier derived from the component name
	Name        string
	Kind        string
	Package     string
	Properties  map[string]string
	InputCols   []string
	OutputCols  []string
	Expressions map[string]string // output column -> expression, when present
}

// ConnectionData is the template context for connection rules.
type ConnectionData struct {
	Func             string
	Name             string
	Kind             string
	Provider         string
	ConnectionString string
	Properties       map[string]string
}

// TaskData is the template context for control-flow task rules.
type TaskData struct {
	Func       string
	Name       string
	Kind       string
	Package    string
	Properties map[string]string
}
