package elasticsearch

import (
	"context"
	"errors"
	"fmt"

	"analytics-srv/internal/model"
	"analytics-srv/internal/observability"
	"analytics-srv/internal/topic/repository"
	pkgES "analytics-srv/pkg/elasticsearch"

	"github.com/tidwall/gjson"
)

const (
	maxListSize     = 10000
	retryOnConflict = 3
)

// mergeScript grows list_issue without duplicates and refreshes the label.
const mergeScript = `if (ctx._source.list_issue == null) { ctx._source.list_issue = new ArrayList(); }
for (def i : params.issues) {
  if (!ctx._source.list_issue.contains(i)) { ctx._source.list_issue.add(i); }
}
ctx._source.project_name = params.project_name;
ctx._source.unified_issue = params.unified_issue;
if (params.description != null && params.description != '') { ctx._source.description = params.description; }`

func (r *implRepository) List(ctx context.Context, opt repository.ListOptions) ([]model.TopicCluster, error) {
	size := opt.Size
	if size <= 0 || size > maxListSize {
		size = maxListSize
	}
	filter := []map[string]any{{"term": map[string]any{"project_name": opt.ProjectName}}}
	if len(opt.Issues) > 0 {
		filter = append(filter, map[string]any{"terms": map[string]any{"list_issue": opt.Issues}})
	}
	body := map[string]any{
		"size":  size,
		"query": map[string]any{"bool": map[string]any{"filter": filter}},
	}

	raw, err := r.client.Search(ctx, []string{r.index}, body)
	if err != nil {
		if isMissingIndex(err) {
			return nil, nil
		}
		r.l.Errorf(ctx, "topic.repository.elasticsearch.List: Failed to search %s: %v", r.index, err)
		return nil, err
	}
	return decodeClusters(raw), nil
}

func decodeClusters(raw []byte) []model.TopicCluster {
	hits := gjson.GetBytes(raw, "hits.hits").Array()
	out := make([]model.TopicCluster, 0, len(hits))
	for _, h := range hits {
		src := h.Get("_source")
		c := model.TopicCluster{
			UUID:         src.Get("uuid").String(),
			ProjectName:  src.Get("project_name").String(),
			UnifiedIssue: src.Get("unified_issue").String(),
			Description:  src.Get("description").String(),
		}
		if c.UUID == "" {
			c.UUID = h.Get("_id").String()
		}
		for _, i := range src.Get("list_issue").Array() {
			c.ListIssue = append(c.ListIssue, i.String())
		}
		out = append(out, c)
	}
	return out
}

func (r *implRepository) Upsert(ctx context.Context, clusters []model.TopicCluster) (repository.UpsertSummary, error) {
	if len(clusters) == 0 {
		return repository.UpsertSummary{}, nil
	}
	if err := r.ensureIndex(ctx); err != nil {
		return repository.UpsertSummary{}, err
	}

	actions := make([]pkgES.BulkAction, len(clusters))
	for i, c := range clusters {
		issues := c.ListIssue
		if issues == nil {
			issues = []string{}
		}
		doc := c
		doc.ListIssue = issues
		actions[i] = pkgES.BulkAction{
			Op:              pkgES.BulkUpdate,
			ID:              c.UUID,
			RetryOnConflict: retryOnConflict,
			Body: map[string]any{
				"script": map[string]any{
					"lang":   "painless",
					"source": mergeScript,
					"params": map[string]any{
						"issues":        issues,
						"project_name":  c.ProjectName,
						"unified_issue": c.UnifiedIssue,
						"description":   c.Description,
					},
				},
				"upsert": doc,
			},
		}
	}

	res, err := r.client.Bulk(ctx, r.index, actions, true)
	if err != nil {
		r.l.Errorf(ctx, "topic.repository.elasticsearch.Upsert: Failed to bulk %d clusters: %v", len(clusters), err)
		return repository.UpsertSummary{}, err
	}

	sum := repository.UpsertSummary{
		Upserted: res.Succeeded,
		Created:  res.Created,
		Updated:  res.Updated,
		Failed:   len(res.Failed),
	}
	for _, f := range res.Failed {
		sum.Errors = append(sum.Errors, fmt.Sprintf("%s: %s: %s", f.ID, f.Type, f.Reason))
	}
	observability.TopicUpserts.WithLabelValues("created").Add(float64(res.Created))
	observability.TopicUpserts.WithLabelValues("updated").Add(float64(res.Updated))
	observability.TopicUpserts.WithLabelValues("failed").Add(float64(sum.Failed))
	if sum.Failed > 0 {
		r.l.Warnf(ctx, "topic.repository.elasticsearch.Upsert: %d of %d upserts failed", sum.Failed, len(clusters))
	}
	return sum, nil
}

// ensureIndex creates the cluster index with keyword mappings once per process.
func (r *implRepository) ensureIndex(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ensured {
		return nil
	}
	ok, err := r.client.IndexExists(ctx, r.index)
	if err != nil {
		r.l.Errorf(ctx, "topic.repository.elasticsearch.ensureIndex: Failed to check %s: %v", r.index, err)
		return err
	}
	if !ok {
		if err := r.client.CreateIndex(ctx, r.index, model.ClusterMapping); err != nil && !alreadyExists(err) {
			r.l.Errorf(ctx, "topic.repository.elasticsearch.ensureIndex: Failed to create %s: %v", r.index, err)
			return err
		}
		r.l.Infof(ctx, "topic.repository.elasticsearch.ensureIndex: created index %s", r.index)
	}
	r.ensured = true
	return nil
}

func alreadyExists(err error) bool {
	var re *pkgES.ResponseError
	return errors.As(err, &re) && re.Type == "resource_already_exists_exception"
}

func isMissingIndex(err error) bool {
	var re *pkgES.ResponseError
	return errors.As(err, &re) && re.Type == "index_not_found_exception"
}
