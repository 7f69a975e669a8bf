package dtsx

import (
	"strconv"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
	"github.com/dtsx2py/dtsx2py/internal/taxonomy"
)

// extractPipeline walks a data-flow task's ObjectData for its pipeline and
// returns one record per component. A component with no taxonomy entry is
// still emitted with kind unknown, never dropped.
func extractPipeline(taskElem *Element, dc *diag.Collector, file string) []model.Component {
	od := child(taskElem, nsDTS, "ObjectData")
	if od == nil {
		return nil
	}
	flow := child(od, nsPipeline, "dataflow")
	if flow == nil {
		// Some writers use "pipeline" as the container tag.
		flow = child(od, nsPipeline, "pipeline")
	}
	if flow == nil {
		return nil
	}
	comps := child(flow, nsPipeline, "components")
	if comps == nil {
		return nil
	}

	var out []model.Component
	for _, ce := range children(comps, nsPipeline, "component") {
		out = append(out, extractComponent(ce, dc, file))
	}
	return out
}

func extractComponent(e *Element, dc *diag.Collector, file string) model.Component {
	classID := attr(e, nsPipeline, "componentClassID")
	kind := taxonomy.ComponentKind(classID)
	name := attr(e, nsPipeline, "name")
	if name == "" {
		name = "Unknown"
	}
	if kind == model.CompUnknown {
		dc.Warnf(diag.CategoryValidation, diag.Context{
			FilePath: file, Component: name, Operation: "resolve_component",
		}, "unrecognized component class id %q, kind degraded to unknown", classID)
	}

	return model.Component{
		ID:         classID,
		Name:       name,
		Kind:       kind,
		Properties: componentProperties(e),
		Inputs:     extractPorts(e, "inputs", "input"),
		Outputs:    extractPorts(e, "outputs", "output"),
	}
}

func componentProperties(e *Element) map[string]string {
	props := map[string]string{}
	pe := child(e, nsPipeline, "properties")
	if pe == nil {
		return props
	}
	for _, p := range children(pe, nsPipeline, "property") {
		name := attr(p, nsPipeline, "name")
		if name == "" {
			continue
		}
		value := attr(p, nsPipeline, "value")
		if value == "" {
			value = p.Text
		}
		props[name] = value
	}
	return props
}

// extractPorts reads the inputs or outputs collection of a component,
// each port with its column list.
func extractPorts(e *Element, collection, item string) []model.Port {
	pe := child(e, nsPipeline, collection)
	if pe == nil {
		return nil
	}
	var ports []model.Port
	for _, ioe := range children(pe, nsPipeline, item) {
		port := model.Port{
			Name:        attr(ioe, nsPipeline, "name"),
			IsErrorOut:  isTrue(attr(ioe, nsPipeline, "isErrorOut")),
			IsSorted:    isTrue(attr(ioe, nsPipeline, "isSorted")),
			Synchronous: true,
		}
		if s := attr(ioe, nsPipeline, "synchronous"); s != "" {
			port.Synchronous = isTrue(s)
		}
		if cols := child(ioe, nsPipeline, item+"Columns"); cols != nil {
			for _, col := range children(cols, nsPipeline, item+"Column") {
				port.Columns = append(port.Columns, extractColumn(col))
			}
		}
		ports = append(ports, port)
	}
	return ports
}

func extractColumn(e *Element) model.Column {
	return model.Column{
		Name:                       attr(e, nsPipeline, "name"),
		DataType:                   attr(e, nsPipeline, "dataType"),
		Precision:                  atoi(attr(e, nsPipeline, "precision")),
		Scale:                      atoi(attr(e, nsPipeline, "scale")),
		Length:                     atoi(attr(e, nsPipeline, "length")),
		LineageID:                  attr(e, nsPipeline, "lineageId"),
		ExternalMetadataColumnName: attr(e, nsPipeline, "externalMetadataColumnName"),
		Expression:                 attr(e, nsPipeline, "expression"),
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
