package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
	"github.com/matzehuels/dungeonforge/pkg/core/pathfind"
	"github.com/matzehuels/dungeonforge/pkg/core/tilemap"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// =============================================================================
// Tile Styles
// =============================================================================

var (
	styleTileWall    = lipgloss.NewStyle().Foreground(colorGray)
	styleTileFloor   = lipgloss.NewStyle().Foreground(colorDim)
	styleTileDoor    = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleTileVisited = lipgloss.NewStyle().Foreground(colorCyan)
	styleTilePath    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

const (
	glyphWall    = "#"
	glyphFloor   = "."
	glyphDoor    = "+"
	glyphVisited = "~"
	glyphPath    = "*"
)

// renderMap draws the state's tile grid with doors, flood-filled cells and
// path cells highlighted. Before rasterize-tiles has run it draws a preview
// of the current rooms instead. flip puts y=0 at the bottom.
func renderMap(st *pipeline.State, path pathfind.Path, flip bool) string {
	d := st.Dungeon
	grid := st.Grid
	if grid == nil {
		grid = tilemap.Rasterize(d.Bounds.Size(), d.RoomBounds(), d.DoorPositions())
	}

	doors := mapset.New[geom.Point]()
	for _, p := range d.DoorPositions() {
		doors.Put(p)
	}
	onPath := mapset.New[geom.Point]()
	for _, v := range path {
		onPath.Put(v.Cell())
	}

	var b strings.Builder
	for i := range grid.Height() {
		y := i
		if flip {
			y = grid.Height() - 1 - i
		}
		for x := range grid.Width() {
			p := geom.Pt(x, y)
			switch {
			case onPath.Has(p):
				b.WriteString(styleTilePath.Render(glyphPath))
			case grid.At(x, y) == tilemap.Wall:
				b.WriteString(styleTileWall.Render(glyphWall))
			case doors.Has(p):
				b.WriteString(styleTileDoor.Render(glyphDoor))
			case st.Traversal != nil && st.Traversal.Visited(x, y):
				b.WriteString(styleTileVisited.Render(glyphVisited))
			default:
				b.WriteString(styleTileFloor.Render(glyphFloor))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// renderTileCases prints the marching-squares case of every 2x2 window as
// one hex digit.
func renderTileCases(g *tilemap.Grid, flip bool) string {
	cases := g.TileCases()
	var b strings.Builder
	for i := range cases {
		y := i
		if flip {
			y = len(cases) - 1 - i
		}
		for _, c := range cases[y] {
			fmt.Fprintf(&b, "%x", c)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
