package repository

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name, field, dir string
		want             Order
	}{
		{"valid asc", "name", "asc", Order{Field: "name", Column: "name", Desc: false}},
		{"case insensitive dir", "email", "ASC", Order{Field: "email", Column: "email", Desc: false}},
		{"explicit desc", "createdAt", "desc", Order{Field: "createdAt", Column: "created_at", Desc: true}},
		{"unknown field", "password", "asc", Order{Field: "name", Column: "name", Desc: false}},
		{"unknown dir", "id", "sideways", Order{Field: "id", Column: "id", Desc: true}},
		{"both empty", "", "", Order{Field: "name", Column: "name", Desc: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderBy(UserOrderFields, tt.field, tt.dir))
		})
	}
}

func TestOrderBy_FavoriteFields(t *testing.T) {
	o := OrderBy(FavoriteCityOrderFields, "countryCode", "asc")
	assert.Equal(t, "country_code", o.Column)

	o = OrderBy(FavoriteCityOrderFields, "isActive", "asc")
	assert.Equal(t, "name", o.Column)
}

func TestNewPageRequest(t *testing.T) {
	tests := []struct {
		page, size string
		want       PageRequest
	}{
		{"2", "5", PageRequest{Page: 2, PageSize: 5}},
		{"", "", PageRequest{Page: 1, PageSize: 10}},
		{"0", "-3", PageRequest{Page: 1, PageSize: 10}},
		{"abc", "2.5", PageRequest{Page: 1, PageSize: 10}},
		{" 3 ", "1000", PageRequest{Page: 3, PageSize: MaxPageSize}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewPageRequest(tt.page, tt.size), "page=%q size=%q", tt.page, tt.size)
	}
	assert.Equal(t, 10, PageRequest{Page: 3, PageSize: 5}.Offset())
}

func TestNewPageRequest_HugePageKeepsOffsetPositive(t *testing.T) {
	for _, page := range []string{"922337203685477582", strconv.Itoa(math.MaxInt)} {
		req := NewPageRequest(page, "10")
		assert.Equal(t, math.MaxInt/10, req.Page)
		assert.Positive(t, req.Offset(), "page=%s", page)
	}

	req := NewPageRequest(strconv.Itoa(math.MaxInt), "100")
	assert.Positive(t, req.Offset())
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%mar%", containsPattern("MAR"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}
