package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables(t *testing.T) {
	ts, err := Tables(Year2025, 4)
	require.NoError(t, err)
	assert.Equal(t, "MH_2025_26_CAP_4", ts.Cutoff)
	assert.Equal(t, "merit_list_2025_26", ts.Merit)
	assert.Equal(t, "College_info_2025_26", ts.College)
	assert.Equal(t, "Branch_info_2025_26", ts.Branch)
	assert.Equal(t, "AI_2025_26_ALL_CAP", ts.AllIndia)
	assert.Equal(t, "cap_4_rank", ts.AllIndiaRank)
	assert.Equal(t, "cap_4_per", ts.AllIndiaPercentile)

	ts, err = Tables(Year2024, 2)
	require.NoError(t, err)
	assert.Equal(t, "MH_2024_25_CAP_2", ts.Cutoff)
	assert.Equal(t, "merit_list_2024_25", ts.Merit)
}

func TestTables_Unsupported(t *testing.T) {
	_, err := Tables(Year2024, 4)
	assert.ErrorIs(t, err, ErrUnsupportedRound)

	_, err = Tables(Year2025, 0)
	assert.ErrorIs(t, err, ErrUnsupportedRound)

	_, err = Tables(2019, 1)
	assert.ErrorIs(t, err, ErrUnsupportedYear)

	assert.Equal(t, 4, MaxRound(Year2025))
	assert.Equal(t, 3, MaxRound(Year2024))
	assert.Equal(t, 0, MaxRound(2030))
}

func TestCatalog(t *testing.T) {
	cols := Catalog()
	require.Len(t, cols, 23)
	assert.Equal(t, "GOPEN", cols[0].Label)

	pwd, ok := Column(LabelPWD)
	require.True(t, ok)
	assert.True(t, pwd.Dual())
	assert.Equal(t, "PWDOPENS", pwd.Standard)
	assert.Equal(t, "PWDOPENH", pwd.Alternate)

	def, ok := Column(LabelDefence)
	require.True(t, ok)
	assert.False(t, def.Dual())
	assert.Equal(t, "DEFOPENS", def.Standard)

	_, ok = Column("NOPE")
	assert.False(t, ok)
}
