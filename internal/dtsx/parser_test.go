package dtsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
)

const samplePackage = `<?xml version="1.0"?>
<DTS:Executable xmlns:DTS="www.microsoft.com/SqlServer/Dts"
	DTS:ObjectName="LoadOrders"
	DTS:DTSID="{PKG-1}"
	DTS:ExecutableType="Microsoft.Package"
	DTS:CreatorName="etl-team"
	DTS:VersionMajor="1" DTS:VersionMinor="2" DTS:VersionBuild="3"
	DTS:Description="Nightly order load">
	<DTS:ConnectionManagers>
		<DTS:ConnectionManager DTS:DTSID="{CM-1}" DTS:ObjectName="Warehouse"
			DTS:CreationName="OLEDB"
			DTS:ConnectionString="Provider=SQLNCLI11;Data Source=$(DB_HOST);Initial Catalog=dw;"/>
	</DTS:ConnectionManagers>
	<DTS:Variables>
		<DTS:Variable DTS:ObjectName="TargetTable" DTS:DataType="8"
			DTS:Namespace="User" DTS:Value="dbo.orders"/>
		<DTS:Variable DTS:ObjectName="BatchSize" DTS:DataType="3" DTS:Value="500"/>
	</DTS:Variables>
	<DTS:Executables>
		<DTS:Executable DTS:ObjectName="DFT Load" DTS:ExecutableType="Microsoft.DataFlowTask">
			<DTS:ObjectData>
				<pipeline xmlns="www.microsoft.com/sqlserver/dts/pipeline">
					<components>
						<component componentClassID="{E9216C7C-4A8A-4F77-8948-60C5D8C75F70}" name="OLE DB Source"/>
						<component componentClassID="{C9C7375C-8340-4F56-A550-919B1E4F4C66}" name="Derive"/>
					</components>
				</pipeline>
			</DTS:ObjectData>
		</DTS:Executable>
		<DTS:Executable DTS:ObjectName="Prep" DTS:CreationName="Microsoft.ExecuteSQLTask"
			DTS:ExecutableType="Microsoft.ExecuteSQLTask">
			<DTS:ObjectData>
				<SqlTaskData xmlns="www.microsoft.com/sqlserver/dts/tasks/sqltask"
					Connection="{CM-1}"
					SqlStatementSource="TRUNCATE TABLE @[User::TargetTable]"/>
			</DTS:ObjectData>
		</DTS:Executable>
	</DTS:Executables>
</DTS:Executable>`

func writePackage(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	path := writePackage(t, t.TempDir(), "load_orders.dtsx", samplePackage)
	p := NewParser(diag.NewCollector(nil), nil)
	p.lookupEnv = func(name string) string {
		if name == "DB_HOST" {
			return "db01"
		}
		return ""
	}

	pkg, err := p.ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "LoadOrders", pkg.Name)
	assert.Equal(t, "1.2.3", pkg.Version)
	assert.Equal(t, "etl-team", pkg.Creator)
	assert.Equal(t, "Microsoft.Package", pkg.Metadata["executable_type"])

	require.Len(t, pkg.Connections, 1)
	assert.Equal(t, model.ConnectionRelational, pkg.Connections[0].Kind)
	assert.Equal(t, model.ProviderSQLServer, pkg.Connections[0].Provider)

	require.Len(t, pkg.Variables, 2)
	assert.Equal(t, model.VarString, pkg.Variables[0].Kind)
	assert.Equal(t, model.VarInt, pkg.Variables[1].Kind)

	require.Len(t, pkg.Components, 2)
	assert.Equal(t, model.CompOLEDBSource, pkg.Components[0].Kind)
	assert.Equal(t, model.CompDerivedColumn, pkg.Components[1].Kind)

	require.Len(t, pkg.Tasks, 1)
	assert.Equal(t, "TRUNCATE TABLE @[User::TargetTable]", pkg.Tasks[0].Properties["sql_statement"])

	// $(DB_HOST) in the connection string, @[User::TargetTable] in the task.
	assert.Equal(t, "db01", pkg.EnvironmentRefs["DB_HOST"])
	assert.Contains(t, pkg.EnvironmentRefs, "TargetTable")
}

func TestParseFileWrongExtension(t *testing.T) {
	path := writePackage(t, t.TempDir(), "not_a_package.xml", samplePackage)
	p := NewParser(diag.NewCollector(nil), nil)
	_, err := p.ParseFile(path)
	assert.Error(t, err)
}

func TestParseFileMissing(t *testing.T) {
	p := NewParser(diag.NewCollector(nil), nil)
	_, err := p.ParseFile(filepath.Join(t.TempDir(), "gone.dtsx"))
	assert.Error(t, err)
}

func TestParseFileMalformedXML(t *testing.T) {
	path := writePackage(t, t.TempDir(), "broken.dtsx", "<DTS:Executable><unclosed>")
	dc := diag.NewCollector(nil)
	p := NewParser(dc, nil)
	_, err := p.ParseFile(path)
	assert.Error(t, err)
	assert.GreaterOrEqual(t, dc.Len(), 1)
}

func TestParseFileBareNamespaceVariant(t *testing.T) {
	// The same document with all namespace prefixes stripped must yield
	// the same model.
	bare := `<Executable ObjectName="Plain" ExecutableType="Microsoft.Package"
		VersionMajor="2" VersionMinor="0" VersionBuild="1">
		<ConnectionManagers>
			<ConnectionManager DTSID="{C1}" ObjectName="Files" CreationName="FLATFILE"
				ConnectionString="C:\in\data.csv"/>
		</ConnectionManagers>
		<Variables>
			<Variable ObjectName="Stage" DataType="8" Value="dev"/>
		</Variables>
	</Executable>`
	path := writePackage(t, t.TempDir(), "plain.dtsx", bare)

	pkg, err := NewParser(diag.NewCollector(nil), nil).ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Plain", pkg.Name)
	assert.Equal(t, "2.0.1", pkg.Version)
	require.Len(t, pkg.Connections, 1)
	assert.Equal(t, model.ConnectionFlatFile, pkg.Connections[0].Kind)
	require.Len(t, pkg.Variables, 1)
}

func TestParseFileEmptySectionsYieldEmptyPackage(t *testing.T) {
	path := writePackage(t, t.TempDir(), "empty.dtsx",
		`<Executable ObjectName="Empty" ExecutableType="Microsoft.Package"/>`)
	pkg, err := NewParser(diag.NewCollector(nil), nil).ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, pkg.Connections)
	assert.Empty(t, pkg.Variables)
	assert.Empty(t, pkg.Components)
	assert.Empty(t, pkg.Tasks)
	assert.Empty(t, pkg.EnvironmentRefs)
}

func TestParseFileDuplicateConnectionNames(t *testing.T) {
	doc := `<Executable ObjectName="Dup" ExecutableType="Microsoft.Package">
		<ConnectionManagers>
			<ConnectionManager DTSID="{A}" ObjectName="Files" CreationName="FLATFILE"/>
			<ConnectionManager DTSID="{B}" ObjectName="Files" CreationName="FLATFILE"/>
		</ConnectionManagers>
	</Executable>`
	path := writePackage(t, t.TempDir(), "dup.dtsx", doc)

	dc := diag.NewCollector(nil)
	pkg, err := NewParser(dc, nil).ParseFile(path)
	require.NoError(t, err)

	// Both records survive, keyed by DTSID; the collision is reported.
	require.Len(t, pkg.Connections, 2)
	assert.Equal(t, 1, dc.Len())
	assert.Equal(t, diag.CategoryValidation, dc.Records()[0].Category)
	assert.Equal(t, "{A}", pkg.ConnectionByRef("Files").ID)
}

func TestValidateStructure(t *testing.T) {
	dir := t.TempDir()
	p := NewParser(diag.NewCollector(nil), nil)

	good := writePackage(t, dir, "good.dtsx", samplePackage)
	assert.True(t, p.ValidateStructure(good))

	wrongRoot := writePackage(t, dir, "wrong.dtsx", `<NotAPackage ExecutableType="x"/>`)
	assert.False(t, p.ValidateStructure(wrongRoot))

	noType := writePackage(t, dir, "notype.dtsx", `<Executable/>`)
	assert.False(t, p.ValidateStructure(noType))

	assert.False(t, p.ValidateStructure(filepath.Join(dir, "missing.dtsx")))
}
