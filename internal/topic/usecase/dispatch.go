package usecase

import (
	"context"
	"time"

	"analytics-srv/internal/observability"
	"analytics-srv/internal/topic"
	"analytics-srv/pkg/log"
)

type inProcess struct {
	l       log.Logger
	uc      topic.UseCase
	timeout time.Duration
}

// NewInProcess runs absorption jobs on a detached goroutine. The job outlives
// the request that scheduled it.
func NewInProcess(l log.Logger, uc topic.UseCase, timeout time.Duration) topic.Dispatcher {
	return &inProcess{l: l, uc: uc, timeout: timeout}
}

func (d *inProcess) Dispatch(ctx context.Context, job topic.AbsorbInput) error {
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	go func() {
		defer cancel()
		out, err := d.uc.Absorb(bg, job)
		if err != nil {
			observability.TopicAbsorbJobs.WithLabelValues("failed").Inc()
			d.l.Warnf(bg, "topic.usecase.inProcess.Dispatch: absorb %s failed: %v", job.ProjectName, err)
			return
		}
		observability.TopicAbsorbJobs.WithLabelValues("done").Inc()
		d.l.Infof(bg, "topic.usecase.inProcess.Dispatch: absorbed %d issues of %s (upserted=%d failed=%d)",
			out.Assigned, job.ProjectName, out.Upserted, out.Failed)
	}()
	return nil
}
