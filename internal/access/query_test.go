package access

import (
	"math"
	"strconv"
	"testing"

	"recruit/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQueryForcesOwnerForRegularUser(t *testing.T) {
	user := &Actor{ID: 5, Role: entity.UserRoleUser}

	q := BuildQuery(user, Filters{OwnerID: Owner(42), Status: "accepted"})

	require.NotNil(t, q.OwnerID)
	assert.Equal(t, uint(5), *q.OwnerID)
	assert.Equal(t, "accepted", q.Status)
}

func TestBuildQueryAdminScopes(t *testing.T) {
	admin := &Actor{ID: 1, Role: entity.UserRoleAdmin}

	q := BuildQuery(admin, Filters{})
	assert.Nil(t, q.OwnerID)

	q = BuildQuery(admin, Filters{OwnerID: Owner(9)})
	require.NotNil(t, q.OwnerID)
	assert.Equal(t, uint(9), *q.OwnerID)
}

func TestBuildQueryAnonymousMatchesNothing(t *testing.T) {
	q := BuildQuery(nil, Filters{OwnerID: Owner(3)})
	require.NotNil(t, q.OwnerID)
	assert.Equal(t, uint(0), *q.OwnerID)
}

func TestBuildQueryPaging(t *testing.T) {
	actor := &Actor{ID: 1, Role: entity.UserRoleAdmin}

	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
		wantSkip  int
	}{
		{name: "默认值", wantPage: 1, wantLimit: 20, wantSkip: 0},
		{name: "第三页", page: "3", limit: "10", wantPage: 3, wantLimit: 10, wantSkip: 20},
		{name: "非数字", page: "abc", limit: "x", wantPage: 1, wantLimit: 20, wantSkip: 0},
		{name: "零和负数", page: "0", limit: "-5", wantPage: 1, wantLimit: 20, wantSkip: 0},
		{name: "超出上限", page: "2", limit: "1000", wantPage: 2, wantLimit: MaxLimit, wantSkip: MaxLimit},
		{name: "带空格", page: " 2 ", limit: " 5 ", wantPage: 2, wantLimit: 5, wantSkip: 5},
		{name: "页码溢出", page: strconv.Itoa(math.MaxInt), limit: "20", wantPage: math.MaxInt, wantLimit: 20, wantSkip: math.MaxInt},
		{name: "最大安全页码", page: strconv.Itoa(math.MaxInt/20 + 1), limit: "20", wantPage: math.MaxInt/20 + 1, wantLimit: 20, wantSkip: math.MaxInt / 20 * 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildQuery(actor, Filters{Page: tt.page, Limit: tt.limit})
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantSkip, q.Skip)
		})
	}
}

func TestBuildQueryTrimsFilters(t *testing.T) {
	q := BuildQuery(&Actor{ID: 1, Role: entity.UserRoleAdmin}, Filters{
		Search:   "  Go  ",
		Position: " 后端工程师 ",
		Sort:     "NAME",
	})
	assert.Equal(t, "Go", q.Search)
	assert.Equal(t, "后端工程师", q.Position)
	assert.Equal(t, SortName, q.Sort)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortNewest, ParseSort(""))
	assert.Equal(t, SortNewest, ParseSort("whatever"))
	assert.Equal(t, SortOldest, ParseSort("oldest"))
	assert.Equal(t, SortOldest, ParseSort("asc"))
	assert.Equal(t, SortName, ParseSort("name"))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(ScopedQuery{Page: 1, Limit: 20}, 45)
	assert.Equal(t, int64(3), p.Pages)
	assert.Equal(t, int64(45), p.Total)

	p = NewPagination(ScopedQuery{Page: 1, Limit: 20}, 40)
	assert.Equal(t, int64(2), p.Pages)

	p = NewPagination(ScopedQuery{Page: 1, Limit: 20}, 0)
	assert.Equal(t, int64(0), p.Pages)

	p = NewPagination(ScopedQuery{}, 45)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, int64(3), p.Pages)
}
