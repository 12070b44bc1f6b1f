// Package catalog holds the static reference data for dental charting: the
// closed set of diagnostic condition types, treatment statuses, and tooth
// surfaces, together with their display labels, color tokens, glyphs, and
// report codes. Pure lookup tables, no behavior beyond fallbacks.
package catalog

// ConditionType identifies one diagnostic condition kind.
type ConditionType string

const (
	ConditionCaries               ConditionType = "caries"
	ConditionRestoration          ConditionType = "restoration"
	ConditionCrown                ConditionType = "crown"
	ConditionEndodontics          ConditionType = "endodontics"
	ConditionExtraction           ConditionType = "extraction"
	ConditionImplant              ConditionType = "implant"
	ConditionFracture             ConditionType = "fracture"
	ConditionBridge               ConditionType = "bridge"
	ConditionVeneer               ConditionType = "veneer"
	ConditionApicalInfection      ConditionType = "apical_infection"
	ConditionDefectiveRestoration ConditionType = "defective_restoration"
)

// ConditionEntry is one row of the condition catalog.
type ConditionEntry struct {
	ID    ConditionType `json:"id"`
	Label string        `json:"label"`
	Color string        `json:"color"`
	Glyph string        `json:"glyph"`
}

// Conditions is the fixed, ordered condition catalog. Order is display order
// and must not change between releases; the legend and reports rely on it.
var Conditions = []ConditionEntry{
	{ID: ConditionCaries, Label: "Caries", Color: "#e53935", Glyph: "C"},
	{ID: ConditionRestoration, Label: "Restoration", Color: "#1e88e5", Glyph: "R"},
	{ID: ConditionCrown, Label: "Crown", Color: "#fdd835", Glyph: "K"},
	{ID: ConditionEndodontics, Label: "Endodontics", Color: "#8e24aa", Glyph: "E"},
	{ID: ConditionExtraction, Label: "Extraction", Color: "#424242", Glyph: "X"},
	{ID: ConditionImplant, Label: "Implant", Color: "#00897b", Glyph: "I"},
	{ID: ConditionFracture, Label: "Fracture", Color: "#fb8c00", Glyph: "F"},
	{ID: ConditionBridge, Label: "Bridge", Color: "#3949ab", Glyph: "P"},
	{ID: ConditionVeneer, Label: "Veneer", Color: "#00acc1", Glyph: "V"},
	{ID: ConditionApicalInfection, Label: "Apical Infection", Color: "#6d4c41", Glyph: "A"},
	{ID: ConditionDefectiveRestoration, Label: "Defective Restoration", Color: "#c0ca33", Glyph: "D"},
}

var conditionIndex = func() map[ConditionType]ConditionEntry {
	m := make(map[ConditionType]ConditionEntry, len(Conditions))
	for _, e := range Conditions {
		m[e.ID] = e
	}
	return m
}()

// LookupCondition returns the catalog entry for id. The second return value is
// false for unknown ids.
func LookupCondition(id ConditionType) (ConditionEntry, bool) {
	e, ok := conditionIndex[id]
	return e, ok
}

// ConditionLabel returns the display label for id, falling back to the raw
// stored value when the id is not in the catalog. Unknown ids degrade rather
// than fail so a report can always be produced.
func ConditionLabel(id ConditionType) string {
	if e, ok := conditionIndex[id]; ok {
		return e.Label
	}
	return string(id)
}

// ConditionColor returns the color token for id, or "" when unknown.
func ConditionColor(id ConditionType) string {
	if e, ok := conditionIndex[id]; ok {
		return e.Color
	}
	return ""
}

// TreatmentStatus is the treatment state of one recorded condition. Display
// order only; no transitions are enforced.
type TreatmentStatus string

const (
	StatusPlanned    TreatmentStatus = "planned"
	StatusInProgress TreatmentStatus = "in_progress"
	StatusCompleted  TreatmentStatus = "completed"
)

// StatusEntry is one row of the treatment status catalog.
type StatusEntry struct {
	ID    TreatmentStatus `json:"id"`
	Label string          `json:"label"`
	Dot   string          `json:"dot"`
}

// Statuses is the fixed treatment status catalog in display order.
var Statuses = []StatusEntry{
	{ID: StatusPlanned, Label: "Planned", Dot: "#90a4ae"},
	{ID: StatusInProgress, Label: "In Progress", Dot: "#ffb300"},
	{ID: StatusCompleted, Label: "Completed", Dot: "#43a047"},
}

var statusIndex = func() map[TreatmentStatus]StatusEntry {
	m := make(map[TreatmentStatus]StatusEntry, len(Statuses))
	for _, e := range Statuses {
		m[e.ID] = e
	}
	return m
}()

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s TreatmentStatus) bool {
	_, ok := statusIndex[s]
	return ok
}

// StatusDot returns the dot color for s, or "" when unknown.
func StatusDot(s TreatmentStatus) string {
	if e, ok := statusIndex[s]; ok {
		return e.Dot
	}
	return ""
}

// Surface is one face of a tooth a condition can affect.
type Surface string

const (
	SurfaceOcclusal Surface = "occlusal"
	SurfaceMesial   Surface = "mesial"
	SurfaceDistal   Surface = "distal"
	SurfaceBuccal   Surface = "buccal"
	SurfaceLingual  Surface = "lingual"
)

// SurfaceEntry is one row of the surface catalog.
type SurfaceEntry struct {
	ID    Surface `json:"id"`
	Label string  `json:"label"`
	Code  string  `json:"code"`
}

// Surfaces is the fixed surface catalog in display order. Code is the
// single-letter abbreviation used in the report ledger.
var Surfaces = []SurfaceEntry{
	{ID: SurfaceOcclusal, Label: "Occlusal", Code: "O"},
	{ID: SurfaceMesial, Label: "Mesial", Code: "M"},
	{ID: SurfaceDistal, Label: "Distal", Code: "D"},
	{ID: SurfaceBuccal, Label: "Buccal", Code: "B"},
	{ID: SurfaceLingual, Label: "Lingual", Code: "L"},
}

var surfaceIndex = func() map[Surface]SurfaceEntry {
	m := make(map[Surface]SurfaceEntry, len(Surfaces))
	for _, e := range Surfaces {
		m[e.ID] = e
	}
	return m
}()

// ValidSurface reports whether s is a known surface.
func ValidSurface(s Surface) bool {
	_, ok := surfaceIndex[s]
	return ok
}

// SurfaceCode returns the report code for s, falling back to the raw stored
// value when unmapped.
func SurfaceCode(s Surface) string {
	if e, ok := surfaceIndex[s]; ok {
		return e.Code
	}
	return string(s)
}

// ValidToothNumber reports whether n is a valid FDI arch position: permanent
// teeth 11-18, 21-28, 31-38, 41-48 and deciduous teeth 51-55, 61-65, 71-75,
// 81-85.
func ValidToothNumber(n int) bool {
	q := n / 10
	p := n % 10
	switch {
	case q >= 1 && q <= 4:
		return p >= 1 && p <= 8
	case q >= 5 && q <= 8:
		return p >= 1 && p <= 5
	default:
		return false
	}
}
