package domain

// CategoryColumn describes one reservation-category cutoff as stored in a CAP round table.
//
// Most categories are stored twice: a state-level column (suffix S) and a
// home-university column (suffix H). The effective rank of such a column is the
// state value when it is non-zero and the home value is zero, otherwise the home
// value. Single-column categories (DEF, ORPHAN, EWS, TFWS) have no Alternate.
type CategoryColumn struct {
	// Label is the display label, e.g. "GOPEN"
	Label string
	// Alias is the lower-case projection alias, e.g. "gopen"
	Alias string
	// Standard is the state-level (or only) source column
	Standard string
	// Alternate is the home-university source column, empty for single columns
	Alternate string
}

// Dual reports whether the column has a home-university alternate
func (c CategoryColumn) Dual() bool {
	return c.Alternate != ""
}

// Labels for the non caste-derived columns
const (
	LabelGeneralOpen = "GOPEN"
	LabelLadiesOpen  = "LOPEN"
	LabelPWD         = "PWD"
	LabelDefence     = "DEF"
	LabelOrphan      = "ORPHAN"
	LabelEWS         = "EWS"
	LabelTFWS        = "TFWS"
	LabelAllIndia    = "AI"
)

func dual(label, alias string) CategoryColumn {
	return CategoryColumn{Label: label, Alias: alias, Standard: label + "S", Alternate: label + "H"}
}

func single(label, alias, column string) CategoryColumn {
	return CategoryColumn{Label: label, Alias: alias, Standard: column}
}

// catalog is the fixed set of category columns, in response order.
var catalog = []CategoryColumn{
	dual("GOPEN", "gopen"),
	dual("LOPEN", "lopen"),
	dual("GOBC", "gobc"),
	dual("LOBC", "lobc"),
	dual("GSEBC", "gsebc"),
	dual("LSEBC", "lsebc"),
	dual("GSC", "gsc"),
	dual("LSC", "lsc"),
	dual("GST", "gst"),
	dual("LST", "lst"),
	dual("GNT1", "gnt1"),
	dual("LNT1", "lnt1"),
	dual("GNT2", "gnt2"),
	dual("LNT2", "lnt2"),
	dual("GNT3", "gnt3"),
	dual("LNT3", "lnt3"),
	dual("GVJ", "gvj"),
	dual("LVJ", "lvj"),
	{Label: LabelPWD, Alias: "pwd", Standard: "PWDOPENS", Alternate: "PWDOPENH"},
	single(LabelDefence, "def", "DEFOPENS"),
	single(LabelOrphan, "orphan", "ORPHAN"),
	single(LabelEWS, "ews", "EWS"),
	single(LabelTFWS, "tfws", "TFWS"),
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, c := range catalog {
		idx[c.Label] = i
	}
	return idx
}()

// Catalog returns every category column in response order
func Catalog() []CategoryColumn {
	out := make([]CategoryColumn, len(catalog))
	copy(out, catalog)
	return out
}

// Column looks up a category column by label
func Column(label string) (CategoryColumn, bool) {
	i, ok := catalogIndex[label]
	if !ok {
		return CategoryColumn{}, false
	}
	return catalog[i], true
}

func mustColumn(label string) CategoryColumn {
	c, ok := Column(label)
	if !ok {
		panic("domain: unknown category column " + label)
	}
	return c
}
