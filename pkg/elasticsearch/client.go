package elasticsearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/tidwall/gjson"
)

type clientImpl struct {
	es  *es.Client
	cfg Config
}

func newClient(cfg Config) (*clientImpl, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.VerifyCerts {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // VERIFY_CERTS=false
	}

	esCfg := es.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: transport,
	}
	if len(cfg.CACert) > 0 {
		esCfg.CACert = cfg.CACert
	}

	client, err := es.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}
	return &clientImpl{es: client, cfg: cfg}, nil
}

func (c *clientImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

func encode(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	if b, ok := body.([]byte); ok {
		return bytes.NewReader(b), nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to encode body: %w", err)
	}
	return bytes.NewReader(b), nil
}

// read drains res and converts error statuses into *ResponseError.
func read(res *esapi.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if res.IsError() {
		return b, &ResponseError{
			Status: res.StatusCode,
			Type:   gjson.GetBytes(b, "error.type").String(),
			Reason: gjson.GetBytes(b, "error.reason").String(),
		}
	}
	return b, nil
}

// Search runs a search over indices. Missing indices are ignored.
func (c *clientImpl) Search(ctx context.Context, indices []string, body any) ([]byte, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	r, err := encode(body)
	if err != nil {
		return nil, err
	}
	return read(c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(indices...),
		c.es.Search.WithBody(r),
		c.es.Search.WithIgnoreUnavailable(true),
		c.es.Search.WithAllowNoIndices(true),
		c.es.Search.WithTrackTotalHits(true),
	))
}

// Count returns the number of documents matching body.
func (c *clientImpl) Count(ctx context.Context, indices []string, body any) (int64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	r, err := encode(body)
	if err != nil {
		return 0, err
	}
	b, err := read(c.es.Count(
		c.es.Count.WithContext(ctx),
		c.es.Count.WithIndex(indices...),
		c.es.Count.WithBody(r),
		c.es.Count.WithIgnoreUnavailable(true),
		c.es.Count.WithAllowNoIndices(true),
	))
	if err != nil {
		return 0, err
	}
	return gjson.GetBytes(b, "count").Int(), nil
}

// Index writes a single document.
func (c *clientImpl) Index(ctx context.Context, index, id string, doc any, refresh bool) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	r, err := encode(doc)
	if err != nil {
		return err
	}
	opts := []func(*esapi.IndexRequest){c.es.Index.WithContext(ctx)}
	if id != "" {
		opts = append(opts, c.es.Index.WithDocumentID(id))
	}
	if refresh {
		opts = append(opts, c.es.Index.WithRefresh("wait_for"))
	}
	_, err = read(c.es.Index(index, r, opts...))
	return err
}

// Bulk sends actions against index. Item failures are collected, never returned as error.
func (c *clientImpl) Bulk(ctx context.Context, index string, actions []BulkAction, refresh bool) (BulkResult, error) {
	if len(actions) == 0 {
		return BulkResult{}, nil
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	buf, err := encodeBulk(actions)
	if err != nil {
		return BulkResult{}, err
	}

	opts := []func(*esapi.BulkRequest){c.es.Bulk.WithContext(ctx), c.es.Bulk.WithIndex(index)}
	if refresh {
		opts = append(opts, c.es.Bulk.WithRefresh("wait_for"))
	}
	b, err := read(c.es.Bulk(buf, opts...))
	if err != nil {
		return BulkResult{}, err
	}
	return parseBulk(b), nil
}

// encodeBulk renders actions as NDJSON: one action line, then one body line.
func encodeBulk(actions []BulkAction) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, a := range actions {
		line := map[string]any{"_id": a.ID}
		if a.Op == BulkUpdate && a.RetryOnConflict > 0 {
			line["retry_on_conflict"] = a.RetryOnConflict
		}
		if err := enc.Encode(map[string]any{string(a.Op): line}); err != nil {
			return nil, fmt.Errorf("elasticsearch: encode bulk meta: %w", err)
		}
		if err := enc.Encode(a.Body); err != nil {
			return nil, fmt.Errorf("elasticsearch: encode bulk body: %w", err)
		}
	}
	return &buf, nil
}

func parseBulk(b []byte) BulkResult {
	var out BulkResult
	gjson.GetBytes(b, "items").ForEach(func(_, item gjson.Result) bool {
		item.ForEach(func(_, v gjson.Result) bool {
			if e := v.Get("error"); e.Exists() {
				out.Failed = append(out.Failed, BulkItemError{
					ID:     v.Get("_id").String(),
					Status: int(v.Get("status").Int()),
					Type:   e.Get("type").String(),
					Reason: e.Get("reason").String(),
				})
				return false
			}
			out.Succeeded++
			switch strings.ToLower(v.Get("result").String()) {
			case "created":
				out.Created++
			case "updated", "noop":
				out.Updated++
			}
			return false
		})
		return true
	})
	return out
}

// IndexExists reports whether index exists.
func (c *clientImpl) IndexExists(ctx context.Context, index string) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.es.Indices.Exists([]string{index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &ResponseError{Status: res.StatusCode, Reason: "index exists check failed"}
	}
}

// CreateIndex creates index with the given settings/mappings body.
// An already-existing index is not an error.
func (c *clientImpl) CreateIndex(ctx context.Context, index string, body any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	r, err := encode(body)
	if err != nil {
		return err
	}
	_, err = read(c.es.Indices.Create(index, c.es.Indices.Create.WithContext(ctx), c.es.Indices.Create.WithBody(r)))
	if re, ok := err.(*ResponseError); ok && re.Type == "resource_already_exists_exception" {
		return nil
	}
	return err
}

// Ping checks the cluster is reachable.
func (c *clientImpl) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, err := read(c.es.Ping(c.es.Ping.WithContext(ctx)))
	return err
}
