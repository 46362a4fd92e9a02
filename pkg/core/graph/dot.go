package graph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures [ToDOT].
type DOTOptions[K comparable] struct {
	// Name is the DOT graph identifier. Default: "G".
	Name string

	// Label returns the label for a node. Default: fmt.Sprint(node).
	Label func(K) string

	// Attrs returns extra DOT attributes for a node, e.g. `shape=box`.
	Attrs func(K) []string

	// Pos returns a pinned layout position for a node. When set, every node
	// carries a `pos="x,y!"` attribute so neato keeps the dungeon geometry.
	Pos func(K) (x, y float64)
}

// ToDOT returns a Graphviz DOT description of g. Nodes are emitted in
// insertion order and are identified as n0, n1, ... so arbitrary key types
// can be exported.
func ToDOT[K comparable](g *Graph[K], opts DOTOptions[K]) string {
	name := opts.Name
	if name == "" {
		name = "G"
	}
	label := opts.Label
	if label == nil {
		label = func(k K) string { return fmt.Sprint(k) }
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph %s {\n", name)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10];\n\n")

	ids := make(map[K]string, g.NodeCount())
	for i, n := range g.order {
		id := fmt.Sprintf("n%d", i)
		ids[n] = id
		attrs := []string{fmt.Sprintf("label=%q", label(n))}
		if opts.Pos != nil {
			x, y := opts.Pos(n)
			attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", x, y))
		}
		if opts.Attrs != nil {
			attrs = append(attrs, opts.Attrs(n)...)
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -- %s;\n", ids[e[0]], ids[e[1]])
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT description to SVG using Graphviz. Pinned graphs
// (see [DOTOptions.Pos]) are laid out with neato so positions are kept;
// everything else uses dot.
//
// Errors are wrapped with context and can be unwrapped with errors.Is.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	if strings.Contains(dot, "!\"") {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
