package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(cols []CategoryColumn) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.Label)
	}
	return out
}

func TestResolve_ColumnCountForEveryCombination(t *testing.T) {
	genders := []Gender{GenderMale, GenderFemale, GenderOther}
	specials := []SpecialReservation{SpecialNone, SpecialPWD, SpecialDefence, SpecialOrphan}

	for _, cat := range Categories() {
		for _, g := range genders {
			for _, tfws := range []bool{false, true} {
				for _, sp := range specials {
					sel := Selection{Category: cat, Gender: g, TFWS: tfws, Special: sp}
					d := Resolve(sel)

					want := 1
					if cat == CategoryEWS {
						want++
					}
					if tfws {
						want++
					}
					if sp != SpecialNone {
						want++
					}
					assert.Len(t, d.CategoryColumns(), want, "%+v", sel)

					// every slot is present, applicable or not
					for _, ref := range d.Slots() {
						assert.NotEmpty(t, ref.Column.Label, "%+v", sel)
					}
					assert.True(t, d.Primary.Applicable)
				}
			}
		}
	}
}

func TestResolve_CasteColumns(t *testing.T) {
	tests := []struct {
		name       string
		sel        Selection
		primary    string
		genderOpen string
	}{
		{"male open", Selection{Category: CategoryOpen, Gender: GenderMale}, "GOPEN", ""},
		{"female open", Selection{Category: CategoryOpen, Gender: GenderFemale}, "LOPEN", ""},
		{"male obc", Selection{Category: CategoryOBC, Gender: GenderMale}, "GOBC", "GOPEN"},
		{"female obc", Selection{Category: CategoryOBC, Gender: GenderFemale}, "LOBC", "LOPEN"},
		{"female nt2", Selection{Category: CategoryNT2, Gender: GenderFemale}, "LNT2", "LOPEN"},
		{"other sc", Selection{Category: CategorySC, Gender: GenderOther}, "GSC", "GOPEN"},
		{"male ews", Selection{Category: CategoryEWS, Gender: GenderMale}, "GOPEN", ""},
		{"female ews", Selection{Category: CategoryEWS, Gender: GenderFemale}, "LOPEN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(tt.sel)
			assert.Equal(t, tt.primary, d.Primary.Column.Label)
			if tt.genderOpen == "" {
				assert.False(t, d.GenderOpen.Applicable)
			} else {
				assert.True(t, d.GenderOpen.Applicable)
				assert.Equal(t, tt.genderOpen, d.GenderOpen.Column.Label)
			}
		})
	}
}

func TestResolve_EWSReplacesCasteColumn(t *testing.T) {
	d := Resolve(Selection{Category: CategoryEWS, Gender: GenderMale, TFWS: true})

	assert.Equal(t, []string{"GOPEN", "EWS", "TFWS"}, labels(d.CategoryColumns()))
	for _, label := range []string{"GOBC", "GSC", "GST", "GSEBC", "GNT1", "GVJ"} {
		assert.False(t, d.IsActive(label), label)
	}
}

func TestResolve_SpecialReservation(t *testing.T) {
	tests := map[SpecialReservation]string{
		SpecialPWD:     LabelPWD,
		SpecialDefence: LabelDefence,
		SpecialOrphan:  LabelOrphan,
	}
	for sp, label := range tests {
		d := Resolve(Selection{Category: CategoryOpen, Gender: GenderMale, Special: sp})
		require.True(t, d.Special.Applicable, sp)
		assert.Equal(t, label, d.Special.Column.Label)
	}

	d := Resolve(Selection{Category: CategoryOpen, Gender: GenderMale, Special: SpecialNone})
	assert.False(t, d.Special.Applicable)
	assert.False(t, d.EWS.Applicable)
	assert.False(t, d.TFWS.Applicable)
}

func TestDescriptor_ActiveAndOpenLabel(t *testing.T) {
	d := Resolve(Selection{Category: CategoryVJ, Gender: GenderFemale, Special: SpecialOrphan})

	assert.Equal(t, []string{"LVJ", "LOPEN", "ORPHAN"}, labels(d.Active()))
	assert.Equal(t, "LOPEN", d.OpenLabel())
	assert.True(t, d.IsActive("LOPEN"))
	assert.False(t, d.IsActive("GOPEN"))
}

func TestParseEnums(t *testing.T) {
	c, err := ParseCategory(" obc ")
	require.NoError(t, err)
	assert.Equal(t, CategoryOBC, c)

	_, err = ParseCategory("XYZ")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	g, err := ParseGender("FEMALE")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	_, err = ParseGender("unknown")
	assert.ErrorIs(t, err, ErrUnknownGender)

	sp, err := ParseSpecialReservation("No")
	require.NoError(t, err)
	assert.Equal(t, SpecialNone, sp)

	sp, err = ParseSpecialReservation("DEF")
	require.NoError(t, err)
	assert.Equal(t, SpecialDefence, sp)

	_, err = ParseSpecialReservation("sports")
	assert.ErrorIs(t, err, ErrUnknownSpecialReservation)
}
