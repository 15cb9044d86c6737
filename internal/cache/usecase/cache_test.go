package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"analytics-srv/internal/cache/repository"
	"analytics-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	data    map[string][]byte
	failGet error
	failSet error
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, opt repository.GetOptions) ([]byte, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	v, ok := m.data[opt.Key]
	if !ok {
		return nil, repository.ErrMiss
	}
	return v, nil
}

func (m *memRepo) Save(_ context.Context, opt repository.SaveOptions) error {
	if m.failSet != nil {
		return m.failSet
	}
	m.data[opt.Key] = opt.Value
	return nil
}

func TestLookupAndStore(t *testing.T) {
	uc := New(newMemRepo(), log.NewNop())
	ctx := context.Background()

	var out map[string]int
	assert.False(t, uc.Lookup(ctx, "ep:k", &out))

	uc.Store(ctx, "ep:k", map[string]int{"a": 1}, time.Minute)
	assert.True(t, uc.Lookup(ctx, "ep:k", &out))
	assert.Equal(t, map[string]int{"a": 1}, out)
}

func TestCacheDegradesSilently(t *testing.T) {
	repo := newMemRepo()
	repo.failGet = errors.New("dial tcp: connection refused")
	repo.failSet = repo.failGet
	uc := New(repo, log.NewNop())

	var out int
	assert.False(t, uc.Lookup(context.Background(), "ep:k", &out))
	assert.NotPanics(t, func() { uc.Store(context.Background(), "ep:k", 1, time.Minute) })
}

type countingGen struct{ calls int }

func (g *countingGen) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	return "reply to " + prompt, nil
}

func TestCachedGenerator(t *testing.T) {
	next := &countingGen{}
	gen := NewCachedGenerator(next, newMemRepo(), log.NewNop(), 0, nil)

	a, err := gen.Generate(context.Background(), "p")
	assert.NoError(t, err)
	b, err := gen.Generate(context.Background(), "p")
	assert.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, next.calls)

	_, _ = gen.Generate(context.Background(), "q")
	assert.Equal(t, 2, next.calls)
}

type sequenceGen struct {
	replies []string
	calls   int
}

func (g *sequenceGen) Generate(context.Context, string) (string, error) {
	r := g.replies[g.calls]
	g.calls++
	return r, nil
}

func TestCachedGeneratorSkipsRejectedReplies(t *testing.T) {
	next := &sequenceGen{replies: []string{"sorry, I cannot help", `{"Banjir": ["banjir jakarta"]}`}}
	repo := newMemRepo()
	gen := NewCachedGenerator(next, repo, log.NewNop(), time.Hour, func(reply string) bool {
		return strings.HasPrefix(reply, "{")
	})

	first, err := gen.Generate(context.Background(), "group these issues")
	require.NoError(t, err)
	assert.Equal(t, "sorry, I cannot help", first)
	assert.Empty(t, repo.data)

	second, err := gen.Generate(context.Background(), "group these issues")
	require.NoError(t, err)
	assert.Equal(t, `{"Banjir": ["banjir jakarta"]}`, second)
	assert.Equal(t, 2, next.calls)

	third, err := gen.Generate(context.Background(), "group these issues")
	require.NoError(t, err)
	assert.Equal(t, second, third)
	assert.Equal(t, 2, next.calls)
}

func TestMeteredPassesThrough(t *testing.T) {
	next := &countingGen{}
	gen := Metered(next, "test")

	a, err := gen.Generate(context.Background(), "p")
	assert.NoError(t, err)
	assert.NotEmpty(t, a)
	assert.Equal(t, 1, next.calls)
}
