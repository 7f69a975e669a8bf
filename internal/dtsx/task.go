package dtsx

import (
	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
)

// Executable-type tokens that mark a data-flow container task. The GUID
// alias appears in packages saved by older designers.
const (
	execTypeDataFlow     = "Microsoft.DataFlowTask"
	execTypeDataFlowGUID = "{C3BF9DC1-4715-4694-936F-D3CFDA9E42C5}"
	creationExecuteSQL   = "Microsoft.ExecuteSQLTask"
)

func isDataFlowExecutable(execType string) bool {
	return execType == execTypeDataFlow || execType == execTypeDataFlowGUID
}

// extractTask turns a non-data-flow executable into a control-flow task
// record. The ExecuteSQLTask subtype captures its connection reference,
// statement source and result-handling mode; every other executable keeps
// a generic attribute property bag.
func extractTask(e *Element, dc *diag.Collector, file string) (model.Task, bool) {
	name := attr(e, nsDTS, "ObjectName")
	creation := attr(e, nsDTS, "CreationName")
	execType := attr(e, nsDTS, "ExecutableType")
	if name == "" && creation == "" && execType == "" {
		dc.Warnf(diag.CategoryParsing, diag.Context{
			FilePath: file, Component: "task", Operation: "extract",
		}, "executable without name or type skipped")
		return model.Task{}, false
	}

	kind := creation
	if kind == "" {
		kind = execType
	}

	task := model.Task{
		ID:         attr(e, nsDTS, "DTSID"),
		Name:       name,
		Kind:       kind,
		Properties: map[string]string{},
	}
	if d := attr(e, nsDTS, "Description"); d != "" {
		task.Properties["description"] = d
	}

	od := child(e, nsDTS, "ObjectData")
	if od == nil {
		return task, true
	}

	if creation == creationExecuteSQL {
		if data := child(od, nsSQLTask, "SqlTaskData"); data != nil {
			task.Properties["connection"] = attr(data, nsSQLTask, "Connection")
			task.Properties["sql_statement"] = attr(data, nsSQLTask, "SqlStatementSource")
			task.Properties["result_type"] = attr(data, nsSQLTask, "ResultType")
		} else {
			dc.Warnf(diag.CategoryParsing, diag.Context{
				FilePath: file, Component: name, Operation: "extract_sql_task",
			}, "ExecuteSQLTask %s has no SqlTaskData element", name)
		}
		return task, true
	}

	// Generic tasks keep whatever flat attributes their payload carries.
	for _, payload := range od.Children {
		for _, a := range payload.Attrs {
			if a.Name.Local != "" && a.Value != "" {
				task.Properties[a.Name.Local] = a.Value
			}
		}
	}
	return task, true
}
