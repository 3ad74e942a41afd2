package service

import (
	"context"
	"errors"
	"log/slog"

	"libraria/internal/platform/metrics"
	dErrors "libraria/pkg/domain-errors"
)

// compensation is the inverse of one completed step.
type compensation struct {
	step string
	undo func(ctx context.Context) error
}

// compensations records inverses as a workflow progresses. On failure they
// run newest first. A nil stack is ready to use.
type compensations struct {
	stack []compensation
}

func (c *compensations) push(step string, undo func(ctx context.Context) error) {
	c.stack = append(c.stack, compensation{step: step, undo: undo})
}

// unwind applies every recorded inverse in reverse order. If every inverse
// succeeds it returns cause unchanged. Otherwise the repositories may
// disagree, so cause and the failed inverses are joined under an
// invariant_violation code.
func (c *compensations) unwind(ctx context.Context, cause error, logger *slog.Logger, m *metrics.Metrics) error {
	errs := []error{cause}
	for i := len(c.stack) - 1; i >= 0; i-- {
		comp := c.stack[i]
		m.IncrementCompensation(comp.step)
		if err := comp.undo(context.WithoutCancel(ctx)); err != nil {
			logger.ErrorContext(ctx, "compensation failed",
				"step", comp.step,
				"error", err.Error(),
			)
			errs = append(errs, err)
			continue
		}
		logger.WarnContext(ctx, "compensation applied",
			"step", comp.step,
		)
	}
	c.stack = nil
	if len(errs) == 1 {
		return cause
	}
	return dErrors.Wrap(errors.Join(errs...), dErrors.CodeInvariantViolation, "lending rollback incomplete")
}
