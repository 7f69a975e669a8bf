package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
)

func mapResolver(values map[string]string) Resolver {
	return func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}
}

func TestExpandAllThreeGrammars(t *testing.T) {
	sub := NewSubstituter(mapResolver(map[string]string{
		"Server":          "db01",
		"STAGE":           "prod",
		"FilterCondition": "amount > 100",
	}), diag.NewCollector(nil), diag.Context{})

	assert.Equal(t, "host=db01", sub.Expand("host=$(Server)"))
	assert.Equal(t, "env: prod", sub.Expand("env: %STAGE%"))
	assert.Equal(t, "WHERE amount > 100", sub.Expand("WHERE @[User::FilterCondition]"))
}

func TestExpandIsIdempotent(t *testing.T) {
	sub := NewSubstituter(mapResolver(map[string]string{
		"Server": "db01",
	}), diag.NewCollector(nil), diag.Context{})

	once := sub.Expand("SELECT * FROM $(Server).dbo.orders WHERE x = @[User::Missing]")
	twice := sub.Expand(once)
	assert.Equal(t, once, twice)
}

func TestExpandNestedReferences(t *testing.T) {
	sub := NewSubstituter(mapResolver(map[string]string{
		"Outer": "$(Inner)/path",
		"Inner": "base",
	}), diag.NewCollector(nil), diag.Context{})

	assert.Equal(t, "base/path", sub.Expand("$(Outer)"))
}

func TestExpandSelfReferenceLeftVerbatim(t *testing.T) {
	dc := diag.NewCollector(nil)
	sub := NewSubstituter(mapResolver(map[string]string{
		"Loop": "$(Loop)x",
	}), dc, diag.Context{})

	// A cyclic value never expands; the reference survives untouched and
	// re-expanding changes nothing.
	once := sub.Expand("$(Loop)")
	assert.Equal(t, "$(Loop)", once)
	assert.Equal(t, once, sub.Expand(once))
	assert.Equal(t, 1, dc.Len())
	assert.Equal(t, diag.CategoryConversion, dc.Records()[0].Category)
}

func TestExpandMutualCycleLeftVerbatim(t *testing.T) {
	dc := diag.NewCollector(nil)
	sub := NewSubstituter(mapResolver(map[string]string{
		"A": "%B%",
		"B": "%A%",
		"C": "steady",
	}), dc, diag.Context{})

	out := sub.Expand("%A% and %C%")
	assert.Equal(t, "%A% and steady", out)
	assert.Equal(t, out, sub.Expand(out))
}

func TestUnresolvedReferenceLeftVerbatimWithOneDiagnostic(t *testing.T) {
	dc := diag.NewCollector(nil)
	sub := NewSubstituter(mapResolver(nil), dc, diag.Context{Component: "pkg"})

	out := sub.Expand("a=@[User::Gone] b=@[User::Gone] c=%Gone%")
	assert.Equal(t, "a=@[User::Gone] b=@[User::Gone] c=%Gone%", out)

	// One diagnostic per distinct name, not per occurrence.
	assert.Equal(t, 1, dc.Len())
	rec := dc.Records()[0]
	assert.Equal(t, diag.SeverityMedium, rec.Severity)
	assert.Equal(t, diag.CategoryConversion, rec.Category)
}

func TestPackageResolverPrefersVariables(t *testing.T) {
	pkg := &model.Package{
		Variables: []model.Variable{
			{Name: "Target", Value: "from-variable"},
			{Name: "Target", Value: "shadowed"},
		},
		EnvironmentRefs: map[string]string{"Target": "from-env", "Only": "env-only"},
	}
	resolve := PackageResolver(pkg)

	v, ok := resolve("Target")
	assert.True(t, ok)
	assert.Equal(t, "from-variable", v)

	v, ok = resolve("Only")
	assert.True(t, ok)
	assert.Equal(t, "env-only", v)

	_, ok = resolve("Nope")
	assert.False(t, ok)
}

func TestEnvRefs(t *testing.T) {
	refs := EnvRefs("x=$(A) y=%B% z=@[User::C] again=$(A)")
	assert.Equal(t, []string{"A", "B", "C"}, refs)

	assert.Empty(t, EnvRefs("no references here"))
}
