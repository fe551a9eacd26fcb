// Package unparse renders a Zenith AST back to canonical source text,
// following the fluent-builder-to-S-expression rendering shape of the
// token-model DSL builder this repository is descended from: a single
// String-style renderer with fixed indentation conventions and no external
// formatting dependency.
package unparse

import (
	"strings"

	"github.com/zenithlang/zenith/ast"
	"github.com/zenithlang/zenith/point"
)

const indentUnit = "    "

// Corpus renders a full corpus to canonical source text: one declaration
// per line, four-space indents per nesting level, GROUP on a single
// parenthesized line with " - " separators.
func Corpus(c *ast.Corpus) string {
	var b strings.Builder
	for i, node := range c.Roots {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeNode(&b, node, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, node ast.Node, depth int) {
	switch n := node.(type) {
	case *ast.Law:
		writeLaw(b, n, depth)
	case *ast.Target:
		writeTarget(b, n, depth)
	}
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}

func writeLaw(b *strings.Builder, l *ast.Law, depth int) {
	indent(b, depth)
	b.WriteString("law ")
	b.WriteString(l.Name)
	b.WriteString(":\n")

	indent(b, depth+1)
	b.WriteString("start_date: ")
	b.WriteString(l.StartDate)
	b.WriteString(" at ")
	b.WriteString(l.StartTime)
	b.WriteByte('\n')

	indent(b, depth+1)
	b.WriteString("period: ")
	b.WriteString(point.FromMinutes(l.PeriodMin))
	b.WriteByte('\n')

	indent(b, depth+1)
	b.WriteString("Event:\n")
	for _, e := range l.Events {
		indent(b, depth+2)
		b.WriteString(e.Name)
		if e.Tag != "" {
			b.WriteString("[")
			b.WriteString(e.Tag)
			b.WriteString("]")
		}
		b.WriteString(": \"")
		b.WriteString(e.Description)
		b.WriteString("\"\n")
	}

	indent(b, depth+1)
	b.WriteString("GROUP: (")
	for i, term := range l.Group {
		if i > 0 {
			b.WriteString(" - ")
		}
		b.WriteString(term.EventRef)
		b.WriteByte(' ')
		b.WriteString(point.FromMinutes(term.CoherenceMin))
		b.WriteByte('^')
		b.WriteString(point.FromMinutes(term.DispersalMin))
	}
	b.WriteString(")\n")

	indent(b, depth)
	b.WriteString("end_law\n")
}

func writeTarget(b *strings.Builder, t *ast.Target, depth int) {
	indent(b, depth)
	b.WriteString("target ")
	b.WriteString(t.Name)
	b.WriteString(":\n")

	indent(b, depth+1)
	b.WriteString("key: \"")
	b.WriteString(t.Key)
	b.WriteString("\"\n")

	indent(b, depth+1)
	b.WriteString("dictionnary:\n")
	for _, d := range t.Dictionary {
		indent(b, depth+2)
		b.WriteString(d.LocalKey)
		if d.ParentRef != "" {
			b.WriteString("[")
			b.WriteString(d.ParentRef)
			b.WriteString("]")
		}
		b.WriteString(": \"")
		b.WriteString(d.Description)
		b.WriteString("\"\n")
	}

	for _, child := range t.Children {
		writeNode(b, child, depth+1)
	}

	indent(b, depth)
	b.WriteString("end_target\n")
}
