package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionByRef(t *testing.T) {
	pkg := &Package{Connections: []Connection{
		{ID: "{A}", Name: "Warehouse"},
		{ID: "{B}", Name: "Files"},
		{ID: "{C}", Name: "Files"},
	}}

	byID := pkg.ConnectionByRef("{B}")
	require.NotNil(t, byID)
	assert.Equal(t, "Files", byID.Name)

	// Name lookups take the first definition in document order.
	byName := pkg.ConnectionByRef("Files")
	require.NotNil(t, byName)
	assert.Equal(t, "{B}", byName.ID)

	assert.Nil(t, pkg.ConnectionByRef("Nope"))
}

func TestComponentKindClassification(t *testing.T) {
	assert.True(t, CompOLEDBSource.IsSource())
	assert.False(t, CompOLEDBSource.IsDestination())
	assert.True(t, CompFlatFileDestination.IsDestination())
	assert.True(t, CompDerivedColumn.IsTransform())
	assert.False(t, CompUnknown.IsSource())
	assert.False(t, CompUnknown.IsTransform())
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "relational", ConnectionRelational.String())
	assert.Equal(t, "unknown", ConnectionUnknown.String())
	assert.Equal(t, "oledb_source", CompOLEDBSource.String())
	assert.Equal(t, "string", VarString.String())
	assert.Equal(t, "user", ScopeUser.String())
}
