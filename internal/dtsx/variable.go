package dtsx

import (
	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
	"github.com/dtsx2py/dtsx2py/internal/taxonomy"
)

// extractVariable turns one Variable element into a record. An absent
// DataType code defaults to string; an unrecognized code degrades to
// unknown with a diagnostic. The scope namespace defaults to User.
func extractVariable(e *Element, dc *diag.Collector, file string) (model.Variable, bool) {
	name := attr(e, nsDTS, "ObjectName")
	if name == "" {
		dc.Warnf(diag.CategoryParsing, diag.Context{
			FilePath: file, Component: "variable", Operation: "extract",
		}, "variable without ObjectName skipped")
		return model.Variable{}, false
	}

	code := attr(e, nsDTS, "DataType")
	var kind model.VariableKind
	if code == "" {
		kind = model.VarString
	} else {
		kind = taxonomy.VariableKind(code)
		if kind == model.VarUnknown {
			dc.Warnf(diag.CategoryValidation, diag.Context{
				FilePath: file, Component: "variable", Operation: "resolve_type",
			}, "variable %s has unrecognized type code %q", name, code)
		}
	}

	namespace := attr(e, nsDTS, "Namespace")
	if namespace == "" {
		namespace = "User"
	}
	scope := taxonomy.Scope(namespace)

	// The value may live on the element itself or in a VariableValue child.
	value := attr(e, nsDTS, "Value")
	if value == "" {
		if vv := child(e, nsDTS, "VariableValue"); vv != nil {
			value = vv.Text
		}
	}

	return model.Variable{
		ID:                attr(e, nsDTS, "DTSID"),
		Name:              name,
		TypeCode:          code,
		Kind:              kind,
		Scope:             scope,
		Value:             value,
		ReadOnly:          isTrue(attr(e, nsDTS, "ReadOnly")),
		Description:       attr(e, nsDTS, "Description"),
		RaiseChangedEvent: isTrue(attr(e, nsDTS, "RaiseChangedEvent")),
	}, true
}
