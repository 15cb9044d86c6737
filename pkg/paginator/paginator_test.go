package paginator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustAndBounds(t *testing.T) {
	q := PaginateQuery{Page: 0, Limit: 1000}
	q.Adjust()
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, int64(MaxLimit), q.Limit)

	q = PaginateQuery{Page: 2, Limit: 10}
	from, to := q.Bounds(15)
	assert.Equal(t, 10, from)
	assert.Equal(t, 15, to)

	from, to = PaginateQuery{Page: 5, Limit: 10}.Bounds(15)
	assert.Equal(t, 15, from)
	assert.Equal(t, 15, to)
}

func TestToResponse(t *testing.T) {
	r := New(PaginateQuery{Page: 1, Limit: 10}, 25, 10).ToResponse()
	assert.Equal(t, 3, r.TotalPages)
	assert.True(t, r.HasNext)
	assert.False(t, r.HasPrev)
}
