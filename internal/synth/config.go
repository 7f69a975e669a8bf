package synth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
	"github.com/dtsx2py/dtsx2py/internal/rules"
)

// configArtifact emits <name>_config.py: the CONNECTIONS, VARIABLES and
// ENVIRONMENT dictionaries plus one connection helper per connection
// manager.
func (s *Synthesizer) configArtifact(pkg *model.Package, sub *rules.Substituter) Artifact {
	name := rules.PyIdent(pkg.Name) + "_config.py"

	var b strings.Builder
	b.WriteString(scriptHeader(name, pkg, "configuration of package "+pkg.Name, s.now()))
	b.WriteString("import os\n\n")

	b.WriteString("CONNECTIONS = {\n")
	for _, conn := range pkg.Connections {
		fmt.Fprintf(&b, "    %s: {\n", pyStr(conn.Name))
		fmt.Fprintf(&b, "        \"kind\": %s,\n", pyStr(conn.Kind.String()))
		fmt.Fprintf(&b, "        \"provider\": %s,\n", pyStr(conn.Provider.String()))
		fmt.Fprintf(&b, "        \"connection_string\": %s,\n", pyStr(sub.Expand(conn.ConnectionString)))
		b.WriteString("    },\n")
	}
	b.WriteString("}\n\n")

	b.WriteString("VARIABLES = {\n")
	for _, v := range pkg.Variables {
		fmt.Fprintf(&b, "    %s: %s,\n", pyStr(v.Scope.String()+"::"+v.Name), pyValue(v))
	}
	b.WriteString("}\n\n")

	b.WriteString("ENVIRONMENT = {\n")
	for _, ref := range sortedKeys(pkg.EnvironmentRefs) {
		fmt.Fprintf(&b, "    %s: os.environ.get(%s, %s),\n",
			pyStr(ref), pyStr(ref), pyStr(pkg.EnvironmentRefs[ref]))
	}
	b.WriteString("}\n")

	imports := newStringSet()
	requires := newStringSet()
	for _, conn := range pkg.Connections {
		rule := s.registry.Connection(conn.Kind)
		body, err := rule.Render(connectionData(pkg, conn, sub))
		if err != nil {
			s.diags.Errorf(diag.CategoryConversion, diag.Context{
				Component: conn.Name, Operation: "render_connection",
			}, "skipping connection helper %s: %v", conn.Name, err)
			continue
		}
		imports.add(rule.Imports...)
		requires.add(rule.Requires...)
		b.WriteString("\n\n" + body)
	}

	content := b.String()
	if imps := imports.sorted(); len(imps) > 0 {
		// Hoist helper imports under the os import.
		content = strings.Replace(content, "import os\n",
			"import os\n"+importBlock(imps), 1)
	}

	return Artifact{
		Name:     name,
		Content:  content,
		Imports:  imports.sorted(),
		Requires: requires.sorted(),
		Metadata: map[string]string{
			"package":     pkg.Name,
			"connections": fmt.Sprint(len(pkg.Connections)),
			"variables":   fmt.Sprint(len(pkg.Variables)),
		},
	}
}

func connectionData(pkg *model.Package, conn model.Connection, sub *rules.Substituter) rules.ConnectionData {
	return rules.ConnectionData{
		Func:             rules.PyIdent(conn.Name),
		Name:             conn.Name,
		Kind:             conn.Kind.String(),
		Provider:         conn.Provider.String(),
		ConnectionString: sub.Expand(conn.ConnectionString),
		Properties:       conn.Properties,
	}
}

// pyStr renders s as a double-quoted Python string literal.
func pyStr(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// pyValue renders a variable value in its native Python type where the
// declared kind allows it; anything unparseable falls back to a string.
func pyValue(v model.Variable) string {
	val := strings.TrimSpace(v.Value)
	switch v.Kind {
	case model.VarInt, model.VarFloat:
		if val != "" && isNumeric(val) {
			return val
		}
	case model.VarBoolean:
		switch strings.ToLower(val) {
		case "true", "1":
			return "True"
		case "false", "0":
			return "False"
		}
	}
	return pyStr(v.Value)
}

func isNumeric(s string) bool {
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' && i == 0:
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
