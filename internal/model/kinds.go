package model

// ConnectionKind classifies a connection manager by the resource it fronts.
type ConnectionKind int

const (
	ConnectionUnknown ConnectionKind = iota
	ConnectionRelational
	ConnectionFlatFile
	ConnectionSpreadsheet
	ConnectionMarkup
	ConnectionWeb
)

func (k ConnectionKind) String() string {
	switch k {
	case ConnectionRelational:
		return "relational"
	case ConnectionFlatFile:
		return "flat_file"
	case ConnectionSpreadsheet:
		return "spreadsheet"
	case ConnectionMarkup:
		return "markup"
	case ConnectionWeb:
		return "web"
	default:
		return "unknown"
	}
}

// Provider identifies the database vendor behind a relational connection.
type Provider int

const (
	ProviderUnknown Provider = iota
	ProviderSQLServer
	ProviderOracle
	ProviderMySQL
	ProviderPostgres
	ProviderSQLite
	ProviderDB2
	ProviderSybase
)

func (p Provider) String() string {
	switch p {
	case ProviderSQLServer:
		return "sql_server"
	case ProviderOracle:
		return "oracle"
	case ProviderMySQL:
		return "mysql"
	case ProviderPostgres:
		return "postgresql"
	case ProviderSQLite:
		return "sqlite"
	case ProviderDB2:
		return "db2"
	case ProviderSybase:
		return "sybase"
	default:
		return "unknown"
	}
}

// VariableKind is the semantic type of a variable value.
type VariableKind int

const (
	VarUnknown VariableKind = iota
	VarString
	VarInt
	VarFloat
	VarBoolean
	VarDateTime
	VarObject
)

func (k VariableKind) String() string {
	switch k {
	case VarString:
		return "string"
	case VarInt:
		return "int"
	case VarFloat:
		return "float"
	case VarBoolean:
		return "boolean"
	case VarDateTime:
		return "datetime"
	case VarObject:
		return "object"
	default:
		return "unknown"
	}
}

// VariableScope is the namespace a variable lives in.
type VariableScope int

const (
	ScopeUnknown VariableScope = iota
	ScopeSystem
	ScopeUser
	ScopeParameter
)

func (s VariableScope) String() string {
	switch s {
	case ScopeSystem:
		return "system"
	case ScopeUser:
		return "user"
	case ScopeParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// ComponentKind classifies a data-flow component.
type ComponentKind int

const (
	CompUnknown ComponentKind = iota

	// Sources
	CompOLEDBSource
	CompADONETSource
	CompFlatFileSource
	CompExcelSource
	CompXMLSource
	CompRawFileSource

	// Destinations
	CompOLEDBDestination
	CompADONETDestination
	CompFlatFileDestination
	CompExcelDestination
	CompRawFileDestination
	CompRecordsetDestination

	// Transforms
	CompDerivedColumn
	CompDataConversion
	CompLookup
	CompMergeJoin
	CompMerge
	CompUnionAll
	CompSort
	CompAggregate
	CompConditionalSplit
	CompMulticast
	CompRowCount
	CompCopyColumn
	CompCharacterMap
	CompOLEDBCommand
	CompScriptComponent
)

func (k ComponentKind) String() string {
	if s, ok := componentKindNames[k]; ok {
		return s
	}
	return "unknown"
}

var componentKindNames = map[ComponentKind]string{
	CompOLEDBSource:          "oledb_source",
	CompADONETSource:         "adonet_source",
	CompFlatFileSource:       "flat_file_source",
	CompExcelSource:          "excel_source",
	CompXMLSource:            "xml_source",
	CompRawFileSource:        "raw_file_source",
	CompOLEDBDestination:     "oledb_destination",
	CompADONETDestination:    "adonet_destination",
	CompFlatFileDestination:  "flat_file_destination",
	CompExcelDestination:     "excel_destination",
	CompRawFileDestination:   "raw_file_destination",
	CompRecordsetDestination: "recordset_destination",
	CompDerivedColumn:        "derived_column",
	CompDataConversion:       "data_conversion",
	CompLookup:               "lookup",
	CompMergeJoin:            "merge_join",
	CompMerge:                "merge",
	CompUnionAll:             "union_all",
	CompSort:                 "sort",
	CompAggregate:            "aggregate",
	CompConditionalSplit:     "conditional_split",
	CompMulticast:            "multicast",
	CompRowCount:             "row_count",
	CompCopyColumn:           "copy_column",
	CompCharacterMap:         "character_map",
	CompOLEDBCommand:         "oledb_command",
	CompScriptComponent:      "script_component",
}

// IsSource reports whether the kind reads data into the pipeline.
func (k ComponentKind) IsSource() bool {
	switch k {
	case CompOLEDBSource, CompADONETSource, CompFlatFileSource,
		CompExcelSource, CompXMLSource, CompRawFileSource:
		return true
	}
	return false
}

// IsDestination reports whether the kind writes data out of the pipeline.
func (k ComponentKind) IsDestination() bool {
	switch k {
	case CompOLEDBDestination, CompADONETDestination, CompFlatFileDestination,
		CompExcelDestination, CompRawFileDestination, CompRecordsetDestination:
		return true
	}
	return false
}

// IsTransform reports whether the kind reshapes rows inside the pipeline.
func (k ComponentKind) IsTransform() bool {
	return k != CompUnknown && !k.IsSource() && !k.IsDestination()
}
