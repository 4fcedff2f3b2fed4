package form

import (
	"github.com/xuri/excelize/v2"

	"reviewforms/internal/layout"
)

// edge is the visual weight of one border edge. Invisible edges are drawn
// thin and white rather than omitted so they overwrite whatever the
// neighbouring cell set.
type edge int

const (
	edgeInvisible edge = iota
	edgeMedium
)

// borders describes the four edges of a cell.
type borders struct {
	left, right, top, bottom edge
}

func boxInvisible() borders { return borders{} }

type fontKind int

const (
	fontPlain fontKind = iota
	fontBold
	fontTitle
	fontSection
)

type fillKind int

const (
	fillNone fillKind = iota
	fillMarker
	fillLegendLight
	fillLegendDark
)

type alignKind int

const (
	alignWrap alignKind = iota // left/top, word-wrap
	alignCenter
)

// cellSpec is the full visual description of one cell. It is the cache key
// for composed styles, so it must stay comparable.
type cellSpec struct {
	font  fontKind
	fill  fillKind
	align alignKind
	box   borders
}

// palette builds and caches excelize styles for cell specs. A palette is
// scoped to one output workbook; style IDs are not portable across files.
type palette struct {
	f     *excelize.File
	cache map[cellSpec]int
}

func newPalette(f *excelize.File) *palette {
	return &palette{f: f, cache: make(map[cellSpec]int)}
}

// style returns the style ID for a spec, creating it on first use.
func (p *palette) style(spec cellSpec) (int, error) {
	if id, ok := p.cache[spec]; ok {
		return id, nil
	}

	s := &excelize.Style{
		Border: composeBorders(spec.box),
	}

	switch spec.font {
	case fontBold:
		s.Font = &excelize.Font{Bold: true}
	case fontTitle:
		s.Font = &excelize.Font{Bold: true, Size: 14}
	case fontSection:
		s.Font = &excelize.Font{Bold: true, Size: 12}
	}

	switch spec.fill {
	case fillMarker:
		s.Fill = patternFill(layout.MarkerFill)
	case fillLegendLight:
		s.Fill = patternFill(layout.LegendFillLight)
	case fillLegendDark:
		s.Fill = patternFill(layout.LegendFillDark)
	}

	switch spec.align {
	case alignCenter:
		s.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	default:
		s.Alignment = &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true}
	}

	id, err := p.f.NewStyle(s)
	if err != nil {
		return 0, err
	}
	p.cache[spec] = id
	return id, nil
}

// apply sets a composed style on a single cell.
func (p *palette) apply(sheet string, col, row int, spec cellSpec) error {
	id, err := p.style(spec)
	if err != nil {
		return err
	}
	cell := layout.Cell(col, row)
	return p.f.SetCellStyle(sheet, cell, cell, id)
}

func patternFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func composeBorders(b borders) []excelize.Border {
	return []excelize.Border{
		borderEdge("left", b.left),
		borderEdge("right", b.right),
		borderEdge("top", b.top),
		borderEdge("bottom", b.bottom),
	}
}

func borderEdge(side string, e edge) excelize.Border {
	if e == edgeMedium {
		return excelize.Border{Type: side, Color: layout.BorderBlack, Style: 2}
	}
	return excelize.Border{Type: side, Color: layout.BorderWhite, Style: 1}
}

// outlineBox returns the borders for a cell at (col, row) inside the
// rectangle (c1, r1)..(c2, r2) whose perimeter is medium black and whose
// internal edges are invisible.
func outlineBox(col, row, c1, r1, c2, r2 int) borders {
	b := boxInvisible()
	if col == c1 {
		b.left = edgeMedium
	}
	if col == c2 {
		b.right = edgeMedium
	}
	if row == r1 {
		b.top = edgeMedium
	}
	if row == r2 {
		b.bottom = edgeMedium
	}
	return b
}
