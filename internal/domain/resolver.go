package domain

// Selection is the part of a student profile that decides which cutoff columns apply
type Selection struct {
	Category Category
	Gender   Gender
	TFWS     bool
	Special  SpecialReservation
}

// ColumnRef is a resolved slot of a Descriptor. A slot that does not apply is
// kept with Applicable=false so every query has the same row shape.
type ColumnRef struct {
	Column     CategoryColumn
	Applicable bool
}

func applicable(label string) ColumnRef {
	return ColumnRef{Column: mustColumn(label), Applicable: true}
}

// Descriptor names the cutoff columns a student competes under
type Descriptor struct {
	// Primary is the student's own category column. For OPEN and EWS students
	// it is the gender-appropriate open column.
	Primary ColumnRef
	// GenderOpen is the gender-linked open column evaluated alongside a
	// non-open primary (GOPEN for G students, LOPEN for L students).
	GenderOpen ColumnRef
	EWS        ColumnRef
	TFWS       ColumnRef
	Special    ColumnRef
}

// Resolve maps a selection to its cutoff column descriptor
func Resolve(sel Selection) Descriptor {
	prefix := sel.Gender.Prefix()
	openLabel := prefix + "OPEN"

	var d Descriptor
	if sel.Category.IsCaste() {
		d.Primary = applicable(prefix + string(sel.Category))
		d.GenderOpen = applicable(openLabel)
	} else {
		// EWS replaces the caste column entirely; the open column stays primary.
		d.Primary = applicable(openLabel)
		d.GenderOpen = ColumnRef{Column: mustColumn(openLabel)}
	}

	d.EWS = ColumnRef{Column: mustColumn(LabelEWS), Applicable: sel.Category == CategoryEWS}
	d.TFWS = ColumnRef{Column: mustColumn(LabelTFWS), Applicable: sel.TFWS}

	switch sel.Special {
	case SpecialPWD:
		d.Special = applicable(LabelPWD)
	case SpecialDefence:
		d.Special = applicable(LabelDefence)
	case SpecialOrphan:
		d.Special = applicable(LabelOrphan)
	default:
		d.Special = ColumnRef{Column: mustColumn(LabelPWD)}
	}
	return d
}

// Slots returns the five descriptor slots in a fixed order
func (d Descriptor) Slots() []ColumnRef {
	return []ColumnRef{d.Primary, d.GenderOpen, d.EWS, d.TFWS, d.Special}
}

// CategoryColumns returns the applicable category columns: the primary column
// plus the EWS, TFWS and special reservation columns requested.
func (d Descriptor) CategoryColumns() []CategoryColumn {
	var out []CategoryColumn
	for _, ref := range []ColumnRef{d.Primary, d.EWS, d.TFWS, d.Special} {
		if ref.Applicable {
			out = append(out, ref.Column)
		}
	}
	return out
}

// Active returns every applicable column, gender-linked open column included
func (d Descriptor) Active() []CategoryColumn {
	var out []CategoryColumn
	seen := make(map[string]bool, 5)
	for _, ref := range d.Slots() {
		if ref.Applicable && !seen[ref.Column.Label] {
			seen[ref.Column.Label] = true
			out = append(out, ref.Column)
		}
	}
	return out
}

// IsActive reports whether the column with the given label is applicable
func (d Descriptor) IsActive(label string) bool {
	for _, ref := range d.Slots() {
		if ref.Applicable && ref.Column.Label == label {
			return true
		}
	}
	return false
}

// OpenLabel returns the open column label matching the primary column's gender prefix
func (d Descriptor) OpenLabel() string {
	return d.Primary.Column.Label[:1] + "OPEN"
}
