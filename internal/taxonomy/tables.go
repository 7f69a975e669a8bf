// Package taxonomy holds the fixed lookup tables that normalize raw DTSX
// tokens into model kinds. Every lookup is total: unrecognized keys map to
// the Unknown arm of the target enum, never to an error. The tables are
// plain package-level constants; nothing here allocates after init or
// touches I/O.
package taxonomy

import (
	"strings"

	"github.com/dtsx2py/dtsx2py/internal/model"
)

// componentKinds maps a component class identifier (the vendor GUID carried
// in pipeline componentClassID) to its kind.
var componentKinds = map[string]model.ComponentKind{
	// Sources
	"{E9216C7C-4A8A-4F77-8948-60C5D8C75F70}": model.CompOLEDBSource,
	"{F4BA6B0E-3F54-40F9-9D77-0DC2A6E2B3C8}": model.CompADONETSource,
	"{A560E93D-4177-4C8B-9F5F-96F8FD959C4B}": model.CompFlatFileSource,
	"{C27664E8-786E-4EB0-9A94-D2CCF1AFE4EE}": model.CompExcelSource,
	"{C8C8C883-0E37-4C98-A094-E4B6BB9E42B5}": model.CompXMLSource,
	"{6D380B29-11F6-4CF4-98E9-3E2E56B2BBF4}": model.CompRawFileSource,

	// Destinations
	"{5A0B62E8-D91D-49F5-94A5-7BE58DE508F0}": model.CompOLEDBDestination,
	"{2E42D45B-F83C-400F-8D77-61DDE6A7DF29}": model.CompADONETDestination,
	"{8DA75FED-1B7C-407D-B2AD-2B24209CCCA4}": model.CompFlatFileDestination,
	"{79849929-79B4-4825-8DB9-3C622F06A126}": model.CompExcelDestination,
	"{7F823BD9-D40E-4F5A-91D4-EF0F4C13C62B}": model.CompRawFileDestination,
	"{F08FB922-EC95-4AE7-9A7E-7E8764A5BBEE}": model.CompRecordsetDestination,

	// Transforms
	"{C9C7375C-8340-4F56-A550-919B1E4F4C66}": model.CompDerivedColumn,
	"{149447B8-8A7C-4FC7-B4E6-5DD2687916C1}": model.CompDataConversion,
	"{1E7B0B8A-8A7C-4FC7-B4E6-5DD2687916C1}": model.CompLookup,
	"{2E7B0B8A-8A7C-4FC7-B4E6-5DD2687916C1}": model.CompMergeJoin,
	"{EFF8B2C9-FD3F-4B43-A70A-B20DDBF9BD74}": model.CompMerge,
	"{3E7B0B8A-8A7C-4FC7-B4E6-5DD2687916C1}": model.CompUnionAll,
	"{4E7B0B8A-8A7C-4FC7-B4E6-5DD2687916C1}": model.CompSort,
	"{5E7B0B8A-8A7C-4FC7-B4E6-5DD2687916C1}": model.CompAggregate,
	"{6E7B0B8A-8A7C-4FC7-B4E6-5DD2687916C1}": model.CompConditionalSplit,
	"{7E7B0B8A-8A7C-4FC7-B4E6-5DD2687916C1}": model.CompMulticast,
	"{150E6F0F-5EA1-4DEA-9332-1E73A1B5A30A}": model.CompRowCount,
	"{A3F405F3-71B4-4B1D-B6EE-583D7B1C6D4B}": model.CompCopyColumn,
	"{8B5E9A43-748E-4153-B237-9F24A3F14F75}": model.CompCharacterMap,
	"{D3B40A74-A6B8-4B26-8B24-95A2A4F27EAD}": model.CompOLEDBCommand,
	"{8E7B0B8A-8A7C-4FC7-B4E6-5DD2687916C1}": model.CompScriptComponent,
}

// ComponentKind resolves a component class identifier. Unrecognized
// identifiers resolve to CompUnknown.
func ComponentKind(classID string) model.ComponentKind {
	if k, ok := componentKinds[classID]; ok {
		return k
	}
	return model.CompUnknown
}

// connectionToken pairs a creation-name fragment with the kind and default
// provider it implies. Matching is case-insensitive substring, first match
// wins, so more specific tokens come first.
type connectionToken struct {
	token    string
	kind     model.ConnectionKind
	provider model.Provider
}

var connectionTokens = []connectionToken{
	{"SQLNCLI", model.ConnectionRelational, model.ProviderSQLServer},
	{"MSOLEDBSQL", model.ConnectionRelational, model.ProviderSQLServer},
	{"OLEDB", model.ConnectionRelational, model.ProviderUnknown},
	{"ADO.NET", model.ConnectionRelational, model.ProviderUnknown},
	{"ODBC", model.ConnectionRelational, model.ProviderUnknown},
	{"FLATFILE", model.ConnectionFlatFile, model.ProviderUnknown},
	{"MULTIFLATFILE", model.ConnectionFlatFile, model.ProviderUnknown},
	{"EXCEL", model.ConnectionSpreadsheet, model.ProviderUnknown},
	{"XML", model.ConnectionMarkup, model.ProviderUnknown},
	{"HTTP", model.ConnectionWeb, model.ProviderUnknown},
	{"FTP", model.ConnectionWeb, model.ProviderUnknown},
	{"SMTP", model.ConnectionWeb, model.ProviderUnknown},
	{"FILE", model.ConnectionFlatFile, model.ProviderUnknown},
}

// Connection resolves a creation name to its (kind, provider) pair.
// No match yields (ConnectionUnknown, ProviderUnknown).
func Connection(creationName string) (model.ConnectionKind, model.Provider) {
	upper := strings.ToUpper(creationName)
	for _, t := range connectionTokens {
		if strings.Contains(upper, t.token) {
			return t.kind, t.provider
		}
	}
	return model.ConnectionUnknown, model.ProviderUnknown
}

var providerTokens = []struct {
	token    string
	provider model.Provider
}{
	{"SQLNCLI", model.ProviderSQLServer},
	{"MSOLEDBSQL", model.ProviderSQLServer},
	{"SQL SERVER", model.ProviderSQLServer},
	{"SQLOLEDB", model.ProviderSQLServer},
	{"ORAOLEDB", model.ProviderOracle},
	{"ORACLE", model.ProviderOracle},
	{"MYSQL", model.ProviderMySQL},
	{"POSTGRESQL", model.ProviderPostgres},
	{"POSTGRES", model.ProviderPostgres},
	{"SQLITE", model.ProviderSQLite},
	{"DB2", model.ProviderDB2},
	{"SYBASE", model.ProviderSybase},
}

// Provider resolves a provider fragment of a connection string (or the
// whole string) to a database vendor, ProviderUnknown when nothing matches.
func Provider(fragment string) model.Provider {
	upper := strings.ToUpper(fragment)
	for _, t := range providerTokens {
		if strings.Contains(upper, t.token) {
			return t.provider
		}
	}
	return model.ProviderUnknown
}

// variableKinds maps the string-encoded numeric DataType codes of the
// source format to semantic kinds. Codes 0 (empty), 1 (null) and 10
// (error) have no value semantics and stay unknown.
var variableKinds = map[string]model.VariableKind{
	"2":  model.VarInt,      // Int16
	"3":  model.VarInt,      // Int32
	"4":  model.VarFloat,    // Single
	"5":  model.VarFloat,    // Double
	"6":  model.VarFloat,    // Currency
	"7":  model.VarDateTime, // Date
	"8":  model.VarString,
	"9":  model.VarObject,
	"11": model.VarBoolean,
	"12": model.VarString, // Variant, carried as text
	"13": model.VarFloat,  // Decimal
	"14": model.VarInt,    // Byte
	"16": model.VarInt,    // Int64
	"17": model.VarInt,    // UInt64
	"18": model.VarInt,    // UInt32
	"19": model.VarInt,    // UInt16
	"20": model.VarInt,    // UInt8
	"21": model.VarInt,    // Int8
	"22": model.VarString, // Guid
	"23": model.VarDateTime,
	"24": model.VarDateTime, // DBDate
	"25": model.VarDateTime, // DBTime
	"26": model.VarDateTime, // DBTimeStamp
	"27": model.VarFloat,    // Numeric
	"28": model.VarDateTime, // DBFileTime
	"29": model.VarDateTime, // DBTime2
	"30": model.VarDateTime, // DBTimeStamp2
	"31": model.VarDateTime, // DBTimeStampOffset
}

// VariableKind resolves a numeric type code. Unrecognized codes resolve to
// VarUnknown; callers decide the default for an absent code.
func VariableKind(code string) model.VariableKind {
	if k, ok := variableKinds[code]; ok {
		return k
	}
	return model.VarUnknown
}

// Scope resolves a variable namespace attribute.
func Scope(namespace string) model.VariableScope {
	switch namespace {
	case "System":
		return model.ScopeSystem
	case "User":
		return model.ScopeUser
	case "Parameter":
		return model.ScopeParameter
	default:
		return model.ScopeUnknown
	}
}
