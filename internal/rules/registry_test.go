package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtsx2py/dtsx2py/internal/model"
)

func TestPyIdent(t *testing.T) {
	assert.Equal(t, "extract_customers", PyIdent("Extract Customers"))
	assert.Equal(t, "ole_db_source_1", PyIdent("OLE DB Source 1"))
	assert.Equal(t, "unnamed", PyIdent(""))
	assert.Equal(t, "unnamed", PyIdent("---"))
	assert.Equal(t, "_2024_load", PyIdent("2024 Load"))
}

func TestRegistryComponentFallback(t *testing.T) {
	reg := NewRegistry()
	rule := reg.Component(model.CompUnknown)
	require.NotNil(t, rule)

	body, err := rule.Render(ComponentData{Func: "mystery", Name: "Mystery", Kind: "unknown"})
	require.NoError(t, err)
	assert.Contains(t, body, "NotImplementedError")
	assert.Contains(t, body, "mystery")
}

func TestRegistryCoversAllComponentKinds(t *testing.T) {
	reg := NewRegistry()
	kinds := []model.ComponentKind{
		model.CompOLEDBSource, model.CompADONETSource, model.CompFlatFileSource,
		model.CompExcelSource, model.CompXMLSource, model.CompRawFileSource,
		model.CompOLEDBDestination, model.CompADONETDestination,
		model.CompFlatFileDestination, model.CompExcelDestination,
		model.CompRawFileDestination, model.CompRecordsetDestination,
		model.CompDerivedColumn, model.CompDataConversion, model.CompLookup,
		model.CompMergeJoin, model.CompMerge, model.CompUnionAll, model.CompSort,
		model.CompAggregate, model.CompConditionalSplit, model.CompMulticast,
		model.CompRowCount, model.CompCopyColumn, model.CompCharacterMap,
		model.CompOLEDBCommand, model.CompScriptComponent,
	}
	for _, kind := range kinds {
		rule := reg.Component(kind)
		require.NotNil(t, rule, "kind %v", kind)
		assert.NotEqual(t, "unsupported", rule.Name, "kind %v fell back", kind)
	}
}

func TestRelationalSourceRule(t *testing.T) {
	reg := NewRegistry()
	rule := reg.Component(model.CompOLEDBSource)

	body, err := rule.Render(ComponentData{
		Func: "load_orders", Name: "Load Orders", Kind: "oledb_source",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "def read_load_orders")
	assert.Contains(t, body, "pd.read_sql")
	assert.Contains(t, rule.Requires, "pandas")
}

func TestDerivedColumnRuleRendersExpressions(t *testing.T) {
	reg := NewRegistry()
	rule := reg.Component(model.CompDerivedColumn)

	body, err := rule.Render(ComponentData{
		Func: "add_total", Name: "Add Total",
		Expressions: map[string]string{"Total": "qty * price"},
	})
	require.NoError(t, err)
	assert.Contains(t, body, "def apply_add_total")
	assert.Contains(t, body, "Total")
	assert.Contains(t, body, "qty * price")
}

func TestConnectionRules(t *testing.T) {
	reg := NewRegistry()

	rel := reg.Connection(model.ConnectionRelational)
	body, err := rel.Render(ConnectionData{Func: "warehouse", Name: "Warehouse"})
	require.NoError(t, err)
	assert.Contains(t, body, "create_engine")

	web := reg.Connection(model.ConnectionWeb)
	body, err = web.Render(ConnectionData{Func: "api", Name: "API"})
	require.NoError(t, err)
	assert.Contains(t, body, "requests")

	unknown := reg.Connection(model.ConnectionUnknown)
	require.NotNil(t, unknown)
}

func TestTaskRules(t *testing.T) {
	reg := NewRegistry()

	sql := reg.Task("Microsoft.ExecuteSQLTask")
	body, err := sql.Render(TaskData{
		Func: "truncate_staging", Name: "Truncate Staging",
		Properties: map[string]string{"sql_statement": "TRUNCATE TABLE staging"},
	})
	require.NoError(t, err)
	assert.Contains(t, body, "def execute_truncate_staging")
	assert.Contains(t, body, "TRUNCATE TABLE staging")

	generic := reg.Task("Microsoft.SendMailTask")
	body, err = generic.Render(TaskData{Func: "notify", Name: "Notify", Kind: "Microsoft.SendMailTask"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(body, "notify"))
}

func TestProviderDriver(t *testing.T) {
	imp, req, ok := ProviderDriver(model.ProviderSQLServer)
	assert.True(t, ok)
	assert.Equal(t, "pyodbc", imp)
	assert.Equal(t, "pyodbc", req)

	imp, req, ok = ProviderDriver(model.ProviderSQLite)
	assert.True(t, ok)
	assert.Equal(t, "sqlite3", imp)
	assert.Empty(t, req)

	_, _, ok = ProviderDriver(model.ProviderUnknown)
	assert.False(t, ok)
}
