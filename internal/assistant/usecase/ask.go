package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"analytics-srv/internal/assistant"
	"analytics-srv/internal/observability"
	"analytics-srv/internal/post"
	"analytics-srv/internal/query"

	"github.com/google/uuid"
)

// run carries one assistant request through its steps.
type run struct {
	uc     *implUseCase
	ctx    context.Context
	out    chan<- assistant.Event
	input  assistant.AskInput
	last   assistant.Step
	closed bool
}

func (uc *implUseCase) Ask(ctx context.Context, input assistant.AskInput) (<-chan assistant.Event, error) {
	input.Query = strings.TrimSpace(input.Query)
	if input.Query == "" {
		return nil, assistant.ErrQueryRequired
	}
	input.Keywords = cleanKeywords(input.Keywords, input.Query)

	out := make(chan assistant.Event, len(assistant.Progress))
	r := &run{uc: uc, ctx: ctx, out: out, input: input}
	go func() {
		defer close(out)
		r.execute()
		observability.AssistantRuns.WithLabelValues(string(r.last)).Inc()
	}()
	return out, nil
}

func (r *run) execute() {
	ctx := r.ctx
	uc := r.uc

	// 1. Init
	if !r.emit(assistant.StepInit, "Starting analysis", map[string]any{"session_id": uuid.NewString()}) {
		return
	}

	// 2. Analysis
	if !r.emit(assistant.StepAnalysis, "Analyzing question", map[string]any{"keywords": r.input.Keywords}) {
		return
	}

	// 3. Strategy
	reply, err := uc.gen.Generate(ctx, strategyPrompt(r.input.Query, r.input.Keywords, uc.now().In(uc.cfg.Location)))
	if err != nil {
		r.fail(fmt.Errorf("%w: %v", assistant.ErrGenerationFailed, err))
		return
	}
	strategy := parseStrategy(reply, r.input.Keywords)
	if !r.emit(assistant.StepStrategy, "Strategy selected", strategy) {
		return
	}

	if strategy.QueryType == assistant.QueryGeneralQuestion {
		r.answerDirectly(strategy)
		return
	}

	// 4. Query generation
	indices := query.Indices(strategy.Parameters.Channels, false)
	reply, err = uc.gen.Generate(ctx, queryPrompt(r.input.Query, strategy))
	if err != nil {
		r.fail(fmt.Errorf("%w: %v", assistant.ErrGenerationFailed, err))
		return
	}
	body, generated := parseQuery(reply, uc.cfg.MaxSize, uc.cfg.SampleHits)
	if !generated {
		uc.l.Warnf(ctx, "assistant.usecase.Ask: unusable query reply, falling back to match_all")
	}
	if !r.emit(assistant.StepQueryGeneration, "Query generated", map[string]any{"indices": indices, "query": body}) {
		return
	}

	// 5. Execution
	res, err := uc.search(ctx, indices, body)
	if err != nil && generated && errors.Is(err, post.ErrBadQuery) {
		uc.l.Warnf(ctx, "assistant.usecase.Ask: generated query rejected, retrying with match_all: %v", err)
		body = fallbackQuery(uc.cfg.SampleHits)
		res, err = uc.search(ctx, indices, body)
	}
	if err != nil {
		r.fail(err)
		return
	}
	if !r.emit(assistant.StepDataSearch, "Data retrieved", map[string]any{"total_hits": res.Total()}) {
		return
	}

	// 6. Processing
	processed := process(res, uc.cfg.SampleHits)
	if !r.emit(assistant.StepDataProcessing, "Data processed", map[string]any{
		"hits":         len(processed.Hits),
		"aggregations": len(processed.Aggregations),
	}) {
		return
	}

	// 7. Response generation
	if !r.emit(assistant.StepResponseGeneration, "Generating response", nil) {
		return
	}
	reply, err = uc.gen.Generate(ctx, responsePrompt(r.input.Query, strategy, processed, uc.cfg.MaxContext))
	if err != nil {
		r.fail(fmt.Errorf("%w: %v", assistant.ErrGenerationFailed, err))
		return
	}
	components, insights := parseResponse(reply)

	// 8. Completed
	r.complete(strategy, components, insights, processed.Total)
}

func (r *run) answerDirectly(strategy assistant.Strategy) {
	answer := strategy.Answer
	if answer == "" {
		reply, err := r.uc.gen.Generate(r.ctx, answerPrompt(r.input.Query))
		if err != nil {
			r.fail(fmt.Errorf("%w: %v", assistant.ErrGenerationFailed, err))
			return
		}
		answer = strings.TrimSpace(reply)
	}
	r.complete(strategy, []assistant.Component{textComponent(answer)}, []string{}, 0)
}

func (r *run) complete(strategy assistant.Strategy, components []assistant.Component, insights []string, total int64) {
	r.emit(assistant.StepCompleted, "Analysis completed", map[string]any{
		"final_response": assistant.FinalResponse{
			Components:  components,
			Insights:    insights,
			Query:       r.input.Query,
			QueryType:   strategy.QueryType,
			TotalHits:   total,
			DataSource:  assistant.DataSource,
			GeneratedAt: r.uc.now().In(r.uc.cfg.Location),
		},
	})
}

// emit sends one event. It returns false once the client is gone.
func (r *run) emit(step assistant.Step, msg string, data any) bool {
	if r.closed {
		return false
	}
	progress, ok := assistant.Progress[step]
	if !ok {
		progress = assistant.Progress[r.last]
	}
	ev := assistant.Event{Step: step, Message: msg, Progress: progress, Data: data}
	select {
	case r.out <- ev:
		r.last = step
		return true
	case <-r.ctx.Done():
		r.closed = true
		return false
	}
}

// fail emits the terminal error event. Progress stays at the last step reached.
func (r *run) fail(err error) {
	r.uc.l.Errorf(r.ctx, "assistant.usecase.Ask: step after %s failed: %v", r.last, err)

	code, msg := 300001, "Text generation failed"
	switch {
	case errors.Is(err, assistant.ErrStoreUnavailable):
		code, msg = 200001, "Document store unavailable"
	case errors.Is(err, post.ErrBadQuery):
		code, msg = 200002, "Query failed"
	}
	r.emit(assistant.StepError, msg, map[string]any{"error_code": code})
}

func (uc *implUseCase) search(ctx context.Context, indices []string, body map[string]any) (post.SearchOutput, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return post.SearchOutput{}, fmt.Errorf("%w: %v", post.ErrBadQuery, err)
	}
	res, err := uc.posts.Search(ctx, post.SearchInput{
		Operation: "AssistantSearch",
		Indices:   indices,
		Body:      json.RawMessage(raw),
	})
	if err != nil {
		if errors.Is(err, post.ErrBadQuery) {
			return post.SearchOutput{}, err
		}
		return post.SearchOutput{}, fmt.Errorf("%w: %v", assistant.ErrStoreUnavailable, err)
	}
	return res, nil
}
