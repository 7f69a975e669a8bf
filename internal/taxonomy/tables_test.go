package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtsx2py/dtsx2py/internal/model"
)

func TestComponentKindLookup(t *testing.T) {
	assert.Equal(t, model.CompOLEDBSource,
		ComponentKind("{E9216C7C-4A8A-4F77-8948-60C5D8C75F70}"))
	assert.Equal(t, model.CompDerivedColumn,
		ComponentKind("{C9C7375C-8340-4F56-A550-919B1E4F4C66}"))
}

func TestComponentKindUnknownClassID(t *testing.T) {
	assert.Equal(t, model.CompUnknown, ComponentKind("{DEADBEEF-0000-0000-0000-000000000000}"))
	assert.Equal(t, model.CompUnknown, ComponentKind(""))
}

func TestConnectionTokenMatching(t *testing.T) {
	cases := []struct {
		creationName string
		kind         model.ConnectionKind
		provider     model.Provider
	}{
		{"OLEDB", model.ConnectionRelational, model.ProviderUnknown},
		{"SQLNCLI11", model.ConnectionRelational, model.ProviderSQLServer},
		{"MSOLEDBSQL", model.ConnectionRelational, model.ProviderSQLServer},
		{"ADO.NET:System.Data.SqlClient", model.ConnectionRelational, model.ProviderUnknown},
		{"FLATFILE", model.ConnectionFlatFile, model.ProviderUnknown},
		{"MULTIFLATFILE", model.ConnectionFlatFile, model.ProviderUnknown},
		{"EXCEL", model.ConnectionSpreadsheet, model.ProviderUnknown},
		{"XML", model.ConnectionMarkup, model.ProviderUnknown},
		{"HTTP", model.ConnectionWeb, model.ProviderUnknown},
		{"oledb", model.ConnectionRelational, model.ProviderUnknown}, // case-insensitive
	}
	for _, tc := range cases {
		kind, provider := Connection(tc.creationName)
		assert.Equal(t, tc.kind, kind, "creation name %q", tc.creationName)
		assert.Equal(t, tc.provider, provider, "creation name %q", tc.creationName)
	}
}

func TestConnectionUnrecognizedToken(t *testing.T) {
	kind, provider := Connection("SOMETHINGELSE")
	assert.Equal(t, model.ConnectionUnknown, kind)
	assert.Equal(t, model.ProviderUnknown, provider)
}

func TestProviderFromFragment(t *testing.T) {
	assert.Equal(t, model.ProviderSQLServer, Provider("Provider=SQLNCLI11;Data Source=srv"))
	assert.Equal(t, model.ProviderPostgres, Provider("postgresql://host/db"))
	assert.Equal(t, model.ProviderUnknown, Provider("no database hints here"))
}

func TestVariableKindCodes(t *testing.T) {
	assert.Equal(t, model.VarString, VariableKind("8"))
	assert.Equal(t, model.VarInt, VariableKind("3"))
	assert.Equal(t, model.VarFloat, VariableKind("5"))
	assert.Equal(t, model.VarBoolean, VariableKind("11"))
	assert.Equal(t, model.VarDateTime, VariableKind("7"))
	assert.Equal(t, model.VarObject, VariableKind("9"))
	assert.Equal(t, model.VarUnknown, VariableKind("999"))
}

func TestScope(t *testing.T) {
	assert.Equal(t, model.ScopeUser, Scope("User"))
	assert.Equal(t, model.ScopeSystem, Scope("System"))
	assert.Equal(t, model.ScopeUnknown, Scope("Custom"))
}
