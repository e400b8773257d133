package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryValuesOmitEmptyFilters(t *testing.T) {
	q := NewQuery(15).Merge(map[string]*string{
		"username":     strPtr("kim"),
		"lostItemName": strPtr("   "),
		"sizeType":     nil,
	})

	v := q.Values(nil)
	assert.Equal(t, "1", v.Get("pageIndex"))
	assert.Equal(t, "15", v.Get("pageSize"))
	assert.Equal(t, "kim", v.Get("username"))
	assert.False(t, v.Has("lostItemName"))
	assert.False(t, v.Has("sizeType"))
	assert.Len(t, v, 3)
}

func TestMergeRemovesConstraint(t *testing.T) {
	q := NewQuery(10).Merge(map[string]*string{"title": strPtr("maintenance"), "author": strPtr("ops")})
	q = q.Merge(map[string]*string{"title": nil})

	assert.NotContains(t, q.Filters, "title")
	assert.Equal(t, "ops", q.Filters["author"])
}

func TestQueryCopiesAreIndependent(t *testing.T) {
	base := NewQuery(10).Merge(map[string]*string{"name": strPtr("a")})
	next := base.WithFilters(map[string]*string{"name": strPtr("b")})

	assert.Equal(t, "a", base.Filters["name"])
	assert.Equal(t, "b", next.Filters["name"])
}

func TestSortEncoding(t *testing.T) {
	sorts := SortParams{"size": "sortBySize", "stored": "sortByStored"}
	q := NewQuery(8).WithSort(&Sort{Field: "size", Direction: Asc})
	require.NoError(t, q.Validate())

	assert.Equal(t, "pageIndex=1&pageSize=8&sortBySize=asc", q.Values(sorts).Encode())

	q = q.WithSort(&Sort{Field: "stored", Direction: Desc})
	v := q.Values(sorts)
	assert.Equal(t, "desc", v.Get("sortByStored"))
	assert.False(t, v.Has("sortBySize"))

	// 선언되지 않은 필드는 보내지 않는다.
	assert.Len(t, q.Values(nil), 2)

	assert.Nil(t, q.WithSort(nil).Sort)
}

func TestNoticeBufferDropsOldest(t *testing.T) {
	b := NewNoticeBuffer(2)
	b.Push(NoticeInfo, "one")
	b.Push(NoticeInfo, "two")
	b.Push(NoticeError, "three")

	got := b.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Message)
	assert.Equal(t, "three", got[1].Message)
	assert.Empty(t, b.Drain())
}
