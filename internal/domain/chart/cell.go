// Package chart derives the visual state of each tooth cell from the
// condition records attached to it. Derivation is pure; the schematic layout
// and the click/selection arity belong to the front-end.
package chart

import (
	"github.com/odonto/odonto/internal/domain/catalog"
	"github.com/odonto/odonto/internal/domain/odontogram"
)

// Cell is the aggregate visual state of one tooth position.
type Cell struct {
	ToothNumber int    `json:"tooth_number"`
	Color       string `json:"color"`      // "" when no condition is attached
	Glyph       string `json:"glyph"`      // glyph of the dominant condition
	StatusDot   string `json:"status_dot"` // "" when no condition is attached
	Count       int    `json:"count"`
	ShowBadge   bool   `json:"show_badge"` // multiplicity badge, count >= 2
}

// DeriveCell computes the cell state for one tooth from its condition
// sequence, oldest first. The dominant color is the color of the earliest
// inserted condition; later conditions never change it, they only raise the
// multiplicity count. The status dot follows the same first condition.
func DeriveCell(tooth int, conds []*odontogram.ToothCondition) Cell {
	cell := Cell{ToothNumber: tooth, Count: len(conds)}
	if len(conds) == 0 {
		return cell
	}

	first := conds[0]
	cell.Color = catalog.ConditionColor(first.ConditionType)
	if e, ok := catalog.LookupCondition(first.ConditionType); ok {
		cell.Glyph = e.Glyph
	}
	cell.StatusDot = catalog.StatusDot(first.Status)
	cell.ShowBadge = len(conds) >= 2
	return cell
}

// UpperArch and LowerArch list the permanent tooth positions in schematic
// left-to-right order, matching the on-screen tooth map. Deciduous positions
// (quadrants 5-8) are accepted by the store and appear in the report ledger,
// but the rendered map covers permanent dentition only.
var (
	UpperArch = []int{18, 17, 16, 15, 14, 13, 12, 11, 21, 22, 23, 24, 25, 26, 27, 28}
	LowerArch = []int{48, 47, 46, 45, 44, 43, 42, 41, 31, 32, 33, 34, 35, 36, 37, 38}
)

// Chart is the full derived tooth map for one odontogram.
type Chart struct {
	Upper []Cell `json:"upper"`
	Lower []Cell `json:"lower"`
}

// Derive builds the chart for the standard permanent arches from a loaded
// condition store.
func Derive(store *odontogram.ConditionStore) Chart {
	derive := func(teeth []int) []Cell {
		cells := make([]Cell, len(teeth))
		for i, n := range teeth {
			cells[i] = DeriveCell(n, store.ConditionsFor(n))
		}
		return cells
	}
	return Chart{
		Upper: derive(UpperArch),
		Lower: derive(LowerArch),
	}
}
