package dtsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
)

const derivedColumnComponent = `<component
	componentClassID="{C9C7375C-8340-4F56-A550-919B1E4F4C66}"
	name="Add Total">
	<properties>
		<property name="FriendlyExpression" value="qty * price"/>
		<property name="Notes">inline text value</property>
	</properties>
	<inputs>
		<input name="Input">
			<inputColumns>
				<inputColumn name="qty" dataType="i4"/>
				<inputColumn name="price" dataType="numeric" precision="12" scale="2"/>
			</inputColumns>
		</input>
	</inputs>
	<outputs>
		<output name="Output" synchronous="true">
			<outputColumns>
				<outputColumn name="Total" dataType="numeric" expression="qty * price"/>
			</outputColumns>
		</output>
		<output name="Error Output" isErrorOut="true"/>
	</outputs>
</component>`

func TestExtractComponentDerivedColumn(t *testing.T) {
	e := mustElement(t, derivedColumnComponent)
	dc := diag.NewCollector(nil)
	comp := extractComponent(e, dc, "pkg.dtsx")

	assert.Equal(t, "Add Total", comp.Name)
	assert.Equal(t, model.CompDerivedColumn, comp.Kind)
	assert.Zero(t, dc.Len())

	assert.Equal(t, "qty * price", comp.Properties["FriendlyExpression"])
	assert.Equal(t, "inline text value", comp.Properties["Notes"])

	require.Len(t, comp.Inputs, 1)
	require.Len(t, comp.Inputs[0].Columns, 2)
	assert.Equal(t, 12, comp.Inputs[0].Columns[1].Precision)
	assert.Equal(t, 2, comp.Inputs[0].Columns[1].Scale)

	require.Len(t, comp.Outputs, 2)
	assert.Equal(t, "qty * price", comp.Outputs[0].Columns[0].Expression)
	assert.True(t, comp.Outputs[1].IsErrorOut)
}

func TestExtractComponentUnknownClassID(t *testing.T) {
	e := mustElement(t, `<component componentClassID="{FFFF}" name="Mystery"/>`)
	dc := diag.NewCollector(nil)
	comp := extractComponent(e, dc, "pkg.dtsx")

	// Unknown components are emitted, not dropped.
	assert.Equal(t, model.CompUnknown, comp.Kind)
	assert.Equal(t, "Mystery", comp.Name)
	assert.Equal(t, 1, dc.Len())
}

func TestExtractComponentPortSynchronousDefault(t *testing.T) {
	e := mustElement(t, `<component componentClassID="{C9C7375C-8340-4F56-A550-919B1E4F4C66}" name="T">
		<outputs>
			<output name="A"/>
			<output name="B" synchronous="false"/>
		</outputs>
	</component>`)
	comp := extractComponent(e, diag.NewCollector(nil), "pkg.dtsx")
	require.Len(t, comp.Outputs, 2)
	assert.True(t, comp.Outputs[0].Synchronous)
	assert.False(t, comp.Outputs[1].Synchronous)
}

func TestExtractPipeline(t *testing.T) {
	e := mustElement(t, `<Executable ExecutableType="Microsoft.DataFlowTask" ObjectName="DFT">
		<ObjectData>
			<pipeline>
				<components>
					<component componentClassID="{E9216C7C-4A8A-4F77-8948-60C5D8C75F70}" name="Src"/>
					<component componentClassID="{5A0B62E8-D91D-49F5-94A5-7BE58DE508F0}" name="Dst"/>
				</components>
			</pipeline>
		</ObjectData>
	</Executable>`)
	comps := extractPipeline(e, diag.NewCollector(nil), "pkg.dtsx")
	require.Len(t, comps, 2)
	assert.Equal(t, model.CompOLEDBSource, comps[0].Kind)
	assert.Equal(t, model.CompOLEDBDestination, comps[1].Kind)
}

func TestExtractPipelineNoObjectData(t *testing.T) {
	e := mustElement(t, `<Executable ExecutableType="Microsoft.DataFlowTask"/>`)
	assert.Empty(t, extractPipeline(e, diag.NewCollector(nil), "pkg.dtsx"))
}
