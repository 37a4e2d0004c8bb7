package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 0, 25)
	for i := 1; i <= 25; i++ {
		items = append(items, i)
	}

	page, info := Paginate(items, &PageParams{Page: 1, PageSize: 10})
	assert.Len(t, page, 10)
	assert.Equal(t, 1, page[0])
	assert.Equal(t, int64(25), info.Total)
	assert.Equal(t, 3, info.TotalPages)
	assert.True(t, info.HasNext)
	assert.False(t, info.HasPrev)

	// 末页只剩余数
	page, info = Paginate(items, &PageParams{Page: 3, PageSize: 10})
	assert.Len(t, page, 5)
	assert.Equal(t, 21, page[0])
	assert.False(t, info.HasNext)

	// 页码越界返回空页，分页信息仍然正确
	page, info = Paginate(items, &PageParams{Page: 9, PageSize: 10})
	assert.Empty(t, page)
	assert.Equal(t, int64(25), info.Total)
}

func TestPaginate_Empty(t *testing.T) {
	page, info := Paginate([]string{}, &PageParams{Page: 1, PageSize: 10})
	assert.Empty(t, page)
	assert.Zero(t, info.Total)
	assert.False(t, info.HasNext)
}
