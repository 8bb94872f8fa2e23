package grid

// Alignment values for cell presentation.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"

	VAlignTop    = "top"
	VAlignMiddle = "middle"
	VAlignBottom = "bottom"
)

// Style holds the presentation attributes of a cell, independent of its
// value. The zero value means "default presentation".
type Style struct {
	FontSize int    `json:"font_size,omitempty"`
	Align    string `json:"align,omitempty"`
	VAlign   string `json:"valign,omitempty"`
	Bold     bool   `json:"bold,omitempty"`
	Italic   bool   `json:"italic,omitempty"`
}

// IsDefault reports whether the style carries no custom attribute.
func (st Style) IsDefault() bool {
	return st == Style{}
}

// Cell is a single stored grid cell. Value is the display string and the
// source of truth for numeric interpretation; Raw preserves the input as
// typed (for formulas Raw keeps the "=..." text while Value holds the
// evaluated result).
//
// Cells are held by pointer in the store. Structural row/column shifts
// mutate Row/Col in place rather than replacing the object, so references
// captured by pending undo commands stay valid across shifts.
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
	Raw   string `json:"raw,omitempty"`
	Style Style  `json:"style,omitempty"`
}

// IsDefault reports whether the cell carries no data at all. Default cells
// must not occupy storage slots.
func (c *Cell) IsDefault() bool {
	return c.Value == "" && c.Raw == "" && c.Style.IsDefault()
}

// Clone returns an independent copy of the cell.
func (c *Cell) Clone() *Cell {
	cp := *c
	return &cp
}
