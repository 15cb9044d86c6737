package elasticsearch

import (
	"context"
	"errors"

	"analytics-srv/internal/model"
	pkgES "analytics-srv/pkg/elasticsearch"

	"github.com/google/uuid"
)

func (r *implRepository) SaveFeedback(ctx context.Context, fb model.AIFeedback) (string, error) {
	if err := r.ensureIndex(ctx); err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := r.client.Index(ctx, r.index, id, fb, false); err != nil {
		r.l.Errorf(ctx, "assistant.repository.elasticsearch.SaveFeedback: Failed to index feedback: %v", err)
		return "", err
	}
	return id, nil
}

func (r *implRepository) ensureIndex(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ensured {
		return nil
	}
	ok, err := r.client.IndexExists(ctx, r.index)
	if err != nil {
		r.l.Errorf(ctx, "assistant.repository.elasticsearch.ensureIndex: Failed to check %s: %v", r.index, err)
		return err
	}
	if !ok {
		if err := r.client.CreateIndex(ctx, r.index, model.FeedbackMapping); err != nil && !alreadyExists(err) {
			r.l.Errorf(ctx, "assistant.repository.elasticsearch.ensureIndex: Failed to create %s: %v", r.index, err)
			return err
		}
		r.l.Infof(ctx, "assistant.repository.elasticsearch.ensureIndex: created index %s", r.index)
	}
	r.ensured = true
	return nil
}

// alreadyExists reports a lost creation race with another replica.
func alreadyExists(err error) bool {
	var re *pkgES.ResponseError
	return errors.As(err, &re) && re.Type == "resource_already_exists_exception"
}
