package dtsx

import (
	"net/url"
	"strings"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
	"github.com/dtsx2py/dtsx2py/internal/taxonomy"
)

// extractConnection turns one ConnectionManager element into a record.
// The bool result is false only when the element is unusable (no identity
// at all); everything else degrades and is reported on the collector.
func extractConnection(e *Element, dc *diag.Collector, file string) (model.Connection, bool) {
	id := attr(e, nsDTS, "DTSID")
	name := attr(e, nsDTS, "ObjectName")
	if id == "" && name == "" {
		dc.Warnf(diag.CategoryParsing, diag.Context{
			FilePath: file, Component: "connection", Operation: "extract",
		}, "connection manager without DTSID or ObjectName skipped")
		return model.Connection{}, false
	}

	creation := attr(e, nsDTS, "CreationName")
	kind, provider := taxonomy.Connection(creation)
	if kind == model.ConnectionUnknown && creation != "" {
		dc.Warnf(diag.CategoryValidation, diag.Context{
			FilePath: file, Component: "connection", Operation: "resolve_kind",
		}, "unrecognized connection creation name %q, kind degraded to unknown", creation)
	}

	connStr := attr(e, nsDTS, "ConnectionString")
	// A nested ObjectData/ConnectionManager block carries the effective
	// connection string for several manager types; it wins when present.
	if od := child(e, nsDTS, "ObjectData"); od != nil {
		if nested := child(od, nsDTS, "ConnectionManager"); nested != nil {
			if s := attr(nested, nsDTS, "ConnectionString"); s != "" {
				connStr = s
			}
		}
	}

	props := parseConnectionString(connStr)
	if provider == model.ProviderUnknown {
		if p, ok := props["provider"]; ok {
			provider = taxonomy.Provider(p)
		} else if kind == model.ConnectionRelational {
			provider = taxonomy.Provider(connStr)
		}
	}

	return model.Connection{
		ID:                   id,
		Name:                 name,
		CreationName:         creation,
		Kind:                 kind,
		Provider:             provider,
		ConnectionString:     connStr,
		Properties:           props,
		Description:          attr(e, nsDTS, "Description"),
		RetainSameConnection: isTrue(attr(e, nsDTS, "RetainSameConnection")),
	}, true
}

// parseConnectionString decomposes a connection string into a flat
// property map. Semicolon-delimited key=value strings split on the first
// '=' with whitespace trimmed; URL-style strings ("://" present) break
// into scheme/host/port/path/username/password/query parts instead.
func parseConnectionString(s string) map[string]string {
	props := map[string]string{}
	if s == "" {
		return props
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(strings.TrimSpace(s))
		if err != nil {
			return props
		}
		props["scheme"] = u.Scheme
		props["host"] = u.Hostname()
		if p := u.Port(); p != "" {
			props["port"] = p
		}
		if u.Path != "" {
			props["path"] = u.Path
		}
		if u.User != nil {
			props["username"] = u.User.Username()
			if pw, ok := u.User.Password(); ok {
				props["password"] = pw
			}
		}
		if q := u.RawQuery; q != "" {
			props["query"] = q
		}
		return props
	}

	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		props[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return props
}
