// Package loader runs the single read behind a list page and turns its outcome
// into a typed result, so a failed load is never confused with an empty one.
package loader

import (
	"context"

	"givehaven/internal/metrics"

	"github.com/sirupsen/logrus"
)

type Result[T any] struct {
	// Records keeps backend order and is never nil.
	Records []T
	Err     error
}

func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// Empty is true for a successful load that returned nothing.
func (r Result[T]) Empty() bool {
	return r.Err == nil && len(r.Records) == 0
}

func (r Result[T]) Len() int {
	return len(r.Records)
}

// Load issues one fetch. A failure is logged and yields an empty record set;
// there is no retry.
func Load[T any](ctx context.Context, logger logrus.FieldLogger, name string, fetch func(context.Context) ([]T, error)) Result[T] {
	records, err := fetch(ctx)
	if err != nil {
		logger.WithError(err).WithField("list", name).Error("failed to load list")
		metrics.ListLoadsTotal.WithLabelValues(name, "error").Inc()
		return Result[T]{Records: []T{}, Err: err}
	}

	if records == nil {
		records = []T{}
	}

	metrics.ListLoadsTotal.WithLabelValues(name, "ok").Inc()
	return Result[T]{Records: records}
}
