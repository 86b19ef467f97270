package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"MH_2025_26_CAP_1"`, QuoteIdent("MH_2025_26_CAP_1"))
	assert.Equal(t, `"GOPENS"`, QuoteIdent("GOPENS"))
	assert.Equal(t, `"a""b"`, QuoteIdent(`a"b`))
	assert.Equal(t, `c."GOBCH"`, Qualify("c", "GOBCH"))
}

func TestTrimmedOrAll(t *testing.T) {
	assert.True(t, TrimmedOrAll(nil))
	assert.True(t, TrimmedOrAll([]string{"Pune", " all "}))
	assert.False(t, TrimmedOrAll([]string{"Pune"}))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, info := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, int64(5), info.TotalItems)

	page, _ = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, page)

	page, info = Paginate(items, 9, 2)
	assert.Empty(t, page)
	assert.Equal(t, 3, info.CurrentPage)

	page, info = Paginate([]int{}, 1, 0)
	assert.Empty(t, page)
	assert.Equal(t, DefaultPageSize, info.PageSize)
	assert.Equal(t, 1, info.TotalPages)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, ParseDuration("2s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}
