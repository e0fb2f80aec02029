// Package treeviz draws the part tree of a document as a Graphviz diagram.
//
// It is a debugging aid: the diagram shows how pictures, frames and visible
// scopes nest and which colors the drawables use, which is hard to see in
// the generated markup.
package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tikzdoc/pkg/latex"
)

// Options configures tree rendering.
type Options struct {
	// Detailed adds option lists and point counts to the node labels.
	Detailed bool
}

// ToDOT converts the part tree of doc to Graphviz DOT. The document itself
// is the root node; parts are numbered in pre-order. Drawables are filled
// with their color.
func ToDOT(doc *latex.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Parts {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	fmt.Fprintf(&buf, "  n0 [label=%s, shape=folder];\n", quote("document\n"+doc.Class().String()))

	// Parts arrive in pre-order, so the parent of each part is the nearest
	// open ancestor that still has children left to visit.
	type open struct {
		id, left int
	}
	ancestors := []open{{0, len(doc.Blocks())}}
	next := 1
	for p := range doc.Parts() {
		for ancestors[len(ancestors)-1].left == 0 {
			ancestors = ancestors[:len(ancestors)-1]
		}
		parent := &ancestors[len(ancestors)-1]
		parent.left--

		id := next
		next++
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, strings.Join(nodeAttrs(p, opts), ", "))
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", parent.id, id)

		if n := len(latex.Children(p)); n > 0 {
			ancestors = append(ancestors, open{id, n})
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(p latex.Part, opts Options) []string {
	attrs := []string{"label=" + quote(label(p, opts.Detailed))}
	if p.Kind().IsContainer() {
		attrs = append(attrs, "fillcolor=\"#f0f0f0\"")
	} else {
		attrs = append(attrs, "style=filled")
	}
	if c, ok := latex.ColorOf(p); ok {
		attrs = append(attrs, "fillcolor="+quote(c.Hex()), "fontcolor="+quote(contrast(c)))
	}
	return attrs
}

func label(p latex.Part, detailed bool) string {
	lines := []string{p.Kind().String()}
	switch p := p.(type) {
	case *latex.Frame:
		if t := p.Title(); t != "" {
			lines = append(lines, t)
		}
	case *latex.Visible:
		if spec, err := latex.OverlaySpec(p.Frames()); err == nil {
			lines = append(lines, "<"+spec+">")
		} else {
			lines = append(lines, "<invalid>")
		}
	case *latex.Node:
		lines = append(lines, p.Label())
	}
	if !detailed {
		return strings.Join(lines, "\n")
	}

	switch p := p.(type) {
	case *latex.Polygon:
		lines = append(lines, pointsLine(len(p.Points())), optionsLine(p.Options().All()))
	case *latex.Line:
		lines = append(lines, pointsLine(len(p.Points())), optionsLine(p.Options().All()))
	case *latex.Node:
		lines = append(lines, pointsLine(len(p.Points())), optionsLine(p.Options().All()))
	case *latex.Picture:
		lines = append(lines, optionsLine(p.Options().All()))
	}
	return strings.Join(lines, "\n")
}

func pointsLine(n int) string {
	if n == 1 {
		return "1 point"
	}
	return strconv.Itoa(n) + " points"
}

func optionsLine[O latex.Option](all iter.Seq[O]) string {
	var opts []string
	for o := range all {
		s, err := o.Render()
		if err != nil {
			s = o.OptionKind().String() + "=?"
		}
		opts = append(opts, s)
	}
	return "[" + strings.Join(opts, ", ") + "]"
}

// quote returns s as a DOT double-quoted string. Newlines become DOT line
// breaks; other control characters become spaces.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
		case unicode.IsControl(r), r == '\u2028', r == '\u2029':
			sb.WriteByte(' ')
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// contrast picks black or white text for a fill color by its relative
// luminance.
func contrast(c latex.Color) string {
	l := 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
	if l > 140 {
		return "black"
	}
	return "white"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg header (sized in pt) with one
// sized in user units, so browsers scale the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
