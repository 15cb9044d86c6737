package usecase

import (
	"context"
	"fmt"

	"analytics-srv/internal/topic"
	"analytics-srv/internal/topic/repository"
	"analytics-srv/pkg/util"
)

func (uc *implUseCase) Absorb(ctx context.Context, input topic.AbsorbInput) (topic.AbsorbOutput, error) {
	if input.ProjectName == "" {
		return topic.AbsorbOutput{}, topic.ErrProjectRequired
	}

	existing, err := uc.repo.List(ctx, repository.ListOptions{ProjectName: input.ProjectName})
	if err != nil {
		uc.l.Errorf(ctx, "topic.usecase.Absorb: repo.List failed: %v", err)
		return topic.AbsorbOutput{}, wrapStore(err)
	}

	// Issues absorbed by an earlier job are skipped.
	owned := ownership(existing)
	var issues []string
	for _, i := range util.Dedupe(input.Issues) {
		if _, ok := owned[i]; !ok && i != "" {
			issues = append(issues, i)
		}
	}
	if len(issues) == 0 {
		return topic.AbsorbOutput{}, nil
	}

	names := append([]string{}, input.Suggestions...)
	for _, c := range existing {
		names = append(names, c.UnifiedIssue)
	}
	names = util.Dedupe(names)

	reply, err := uc.gen.Generate(ctx, assignPrompt(input.ProjectName, issues, names))
	if err != nil {
		uc.l.Warnf(ctx, "topic.usecase.Absorb: generate failed: %v", err)
		return topic.AbsorbOutput{}, fmt.Errorf("%w: %v", topic.ErrGenerationFailed, err)
	}
	groups, err := parseGroups(reply, issues)
	if err != nil {
		uc.l.Warnf(ctx, "topic.usecase.Absorb: %v", err)
		return topic.AbsorbOutput{}, err
	}

	docs := uc.plan(input.ProjectName, existing, groups)
	sum, err := uc.repo.Upsert(ctx, docs)
	if err != nil {
		return topic.AbsorbOutput{}, wrapStore(err)
	}

	out := topic.AbsorbOutput{Upserted: sum.Upserted, Failed: sum.Failed, Errors: sum.Errors}
	for _, d := range docs {
		out.Assigned += len(d.ListIssue)
	}
	return out, nil
}
