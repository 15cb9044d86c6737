package elasticsearch

import (
	"context"
	"errors"
	"testing"
	"time"

	"analytics-srv/internal/model"
	pkgES "analytics-srv/pkg/elasticsearch"
	"analytics-srv/pkg/log"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type indexCall struct {
	index string
	id    string
	doc   any
}

type fakeES struct {
	pkgES.IElasticsearch

	exists    bool
	mappings  map[string]any
	createErr error
	indexErr  error
	indexed   []indexCall
}

func (f *fakeES) IndexExists(context.Context, string) (bool, error) { return f.exists, nil }

func (f *fakeES) CreateIndex(_ context.Context, index string, body any) error {
	if f.mappings == nil {
		f.mappings = map[string]any{}
	}
	f.mappings[index] = body
	return f.createErr
}

func (f *fakeES) Index(_ context.Context, index, id string, doc any, _ bool) error {
	f.indexed = append(f.indexed, indexCall{index: index, id: id, doc: doc})
	return f.indexErr
}

func TestSaveFeedbackCreatesIndexOnce(t *testing.T) {
	es := &fakeES{}
	repo := New(es, log.NewNop(), "")
	fb := model.AIFeedback{Timestamp: time.Now(), QueryUser: "siapa paling viral", FeedbackUser: "good"}

	id1, err := repo.SaveFeedback(context.Background(), fb)
	require.NoError(t, err)
	id2, err := repo.SaveFeedback(context.Background(), fb)
	require.NoError(t, err)

	require.Len(t, es.mappings, 1)
	assert.Equal(t, model.FeedbackMapping, es.mappings[DefaultIndex])

	require.Len(t, es.indexed, 2)
	assert.Equal(t, DefaultIndex, es.indexed[0].index)
	assert.Equal(t, id1, es.indexed[0].id)
	assert.Equal(t, fb, es.indexed[0].doc)
	assert.NotEqual(t, id1, id2)
	_, err = uuid.Parse(id1)
	assert.NoError(t, err)
}

func TestSaveFeedbackExistingIndex(t *testing.T) {
	es := &fakeES{exists: true}
	_, err := New(es, log.NewNop(), "feedback").SaveFeedback(context.Background(), model.AIFeedback{})
	require.NoError(t, err)
	assert.Empty(t, es.mappings)
	assert.Equal(t, "feedback", es.indexed[0].index)
}

func TestSaveFeedbackErrors(t *testing.T) {
	es := &fakeES{createErr: &pkgES.ResponseError{Status: 400, Type: "resource_already_exists_exception"}}
	_, err := New(es, log.NewNop(), "").SaveFeedback(context.Background(), model.AIFeedback{})
	require.NoError(t, err)

	es = &fakeES{createErr: &pkgES.ResponseError{Status: 403, Type: "security_exception"}}
	_, err = New(es, log.NewNop(), "").SaveFeedback(context.Background(), model.AIFeedback{})
	assert.Error(t, err)
	assert.Empty(t, es.indexed)

	es = &fakeES{exists: true, indexErr: errors.New("timeout")}
	_, err = New(es, log.NewNop(), "").SaveFeedback(context.Background(), model.AIFeedback{})
	assert.Error(t, err)
}
