package rules

import (
	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
)

// Resolver resolves a reference name to its value.
type Resolver func(name string) (string, bool)

// PackageResolver resolves names against a package's variables first
// (first match by document order), then its environment-reference map.
func PackageResolver(pkg *model.Package) Resolver {
	return func(name string) (string, bool) {
		for _, v := range pkg.Variables {
			if v.Name == name {
				return v.Value, true
			}
		}
		if v, ok := pkg.EnvironmentRefs[name]; ok && v != "" {
			return v, true
		}
		return "", false
	}
}

// Substituter rewrites the three reference grammars in free text.
//
// Values expand recursively; a reference whose expansion leads back to a
// name already on the expansion path is cyclic and stays verbatim, as does
// an unresolvable one. Applying Expand to already-expanded text is
// therefore a no-op. Each problem name produces one conversion diagnostic.
type Substituter struct {
	resolve Resolver
	diags   *diag.Collector
	ctx     diag.Context

	warned map[string]bool
}

// NewSubstituter returns a substituter reporting unresolved references
// through dc with ctx attached.
func NewSubstituter(resolve Resolver, dc *diag.Collector, ctx diag.Context) *Substituter {
	return &Substituter{
		resolve: resolve,
		diags:   dc,
		ctx:     ctx,
		warned:  map[string]bool{},
	}
}

// Expand substitutes every resolvable reference in text. Values expand
// recursively; cyclic names never expand at all, so their references
// survive verbatim and a second pass finds nothing left to rewrite.
func (s *Substituter) Expand(text string) string {
	for _, pat := range refPatterns {
		text = pat.ReplaceAllStringFunc(text, func(ref string) string {
			name := pat.FindStringSubmatch(ref)[1]
			value, ok := s.resolve(name)
			if !ok {
				s.warnOnce(name, "unresolvable reference %s left verbatim", ref)
				return ref
			}
			if s.cyclic(name) {
				s.warnOnce(name, "cyclic reference %s left verbatim", ref)
				return ref
			}
			return s.Expand(value)
		})
	}
	return text
}

// cyclic reports whether expanding name eventually references name again.
func (s *Substituter) cyclic(name string) bool {
	return s.reaches(name, name, map[string]bool{})
}

func (s *Substituter) reaches(target, from string, seen map[string]bool) bool {
	if seen[from] {
		return false
	}
	seen[from] = true
	value, ok := s.resolve(from)
	if !ok {
		return false
	}
	for _, n := range EnvRefs(value) {
		if n == target || s.reaches(target, n, seen) {
			return true
		}
	}
	return false
}

func (s *Substituter) warnOnce(name, format string, ref string) {
	if s.warned[name] {
		return
	}
	s.warned[name] = true
	s.diags.Warnf(diag.CategoryConversion, s.ctx, format, ref)
}
