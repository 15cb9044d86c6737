package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"analytics-srv/internal/post"
	"analytics-srv/internal/post/repository"
	pkgES "analytics-srv/pkg/elasticsearch"
	"analytics-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	repository.ESRepository
	raw      []byte
	err      error
	deadline bool
}

func (f *fakeRepo) Search(ctx context.Context, _ repository.SearchOptions) ([]byte, error) {
	_, f.deadline = ctx.Deadline()
	return f.raw, f.err
}

func TestSearchDecodesAndSetsDeadline(t *testing.T) {
	repo := &fakeRepo{raw: []byte(`{"hits":{"total":{"value":3},"hits":[{"_id":"a"}]},"aggregations":{"x":{"value":7}}}`)}
	uc := New(repo, log.NewNop(), time.Second)

	out, err := uc.Search(context.Background(), post.SearchInput{Indices: []string{"twitter_data"}})
	require.NoError(t, err)
	assert.True(t, repo.deadline)
	assert.Equal(t, int64(3), out.Total())
	assert.Len(t, out.Hits(), 1)
	assert.Equal(t, int64(7), out.Agg("x.value").Int())
}

func TestSearchClassifiesErrors(t *testing.T) {
	uc := New(&fakeRepo{err: &pkgES.ResponseError{Status: 400, Type: "parsing_exception"}}, log.NewNop(), 0)
	_, err := uc.Search(context.Background(), post.SearchInput{})
	assert.True(t, errors.Is(err, post.ErrBadQuery))

	uc = New(&fakeRepo{err: pkgES.ErrUnavailable}, log.NewNop(), 0)
	_, err = uc.Search(context.Background(), post.SearchInput{})
	assert.True(t, errors.Is(err, post.ErrStoreUnavailable))
}
