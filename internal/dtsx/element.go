// Package dtsx turns a DTSX document into the normalized package model.
// It contains the namespace-tolerant element tree, the per-entity
// extractors, and the assembler that orchestrates them over one file.
package dtsx

import (
	"encoding/xml"
	"io"
	"strings"
)

// Namespace URIs of the three vocabularies a package document uses. Real
// documents bind these to prefixes (DTS:, pipeline:, SQLTask:), but hand
// written or stripped variants omit them entirely, so every lookup probes
// both forms.
const (
	nsDTS      = "www.microsoft.com/SqlServer/Dts"
	nsPipeline = "www.microsoft.com/sqlserver/dts/pipeline"
	nsSQLTask  = "www.microsoft.com/sqlserver/dts/tasks/sqltask"
)

// Element is one node of the decoded document tree. Attribute and child
// names keep the resolved namespace URI in xml.Name.Space, which is what
// the dual-probe lookups match against.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Element
	Text     string
}

// decode builds an element tree from r. It fails only for malformed XML;
// an empty document yields a nil root and an io.EOF-derived error.
func decode(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// attr returns the value of the logical attribute name on e: the form
// namespaced with ns first, the bare form second, "" when neither is
// present. Missing attributes are never an error.
func attr(e *Element, ns, name string) string {
	for _, a := range e.Attrs {
		if a.Name.Space == ns && a.Name.Local == name {
			return a.Value
		}
	}
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// child returns the first child element with the logical tag name,
// probing the namespaced form first, then the bare form. nil when absent.
func child(e *Element, ns, local string) *Element {
	for _, c := range e.Children {
		if c.Name.Space == ns && c.Name.Local == local {
			return c
		}
	}
	for _, c := range e.Children {
		if c.Name.Space == "" && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// children returns every child element with the logical tag name. The
// namespaced matches are preferred; only when there are none does the bare
// form count. Neither present means zero children, never an error.
func children(e *Element, ns, local string) []*Element {
	var namespaced []*Element
	for _, c := range e.Children {
		if c.Name.Space == ns && c.Name.Local == local {
			namespaced = append(namespaced, c)
		}
	}
	if len(namespaced) > 0 {
		return namespaced
	}
	var bare []*Element
	for _, c := range e.Children {
		if c.Name.Space == "" && c.Name.Local == local {
			bare = append(bare, c)
		}
	}
	return bare
}

// descendants walks the subtree rooted at e collecting every element with
// the logical tag name in either form.
func descendants(e *Element, ns, local string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name.Local == local && (c.Name.Space == ns || c.Name.Space == "") {
			out = append(out, c)
		}
		out = append(out, descendants(c, ns, local)...)
	}
	return out
}

func isTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
