package report

import (
	"context"
	"errors"
	"time"
)

type Writer interface {
	WriteOutcome(ctx context.Context, outcome Outcome) error
}

// Outcome holds the result of a single login attempt.
// Err is set when the request never got a response, in which case StatusCode and Body are empty.
type Outcome struct {
	Label      string
	RequestID  string
	Time       time.Time
	Elapsed    time.Duration
	StatusCode int
	Body       []byte
	Err        error
}

func (this *Outcome) Failed() bool {
	return this.Err != nil
}

type MultiWriter []Writer

func (this MultiWriter) WriteOutcome(ctx context.Context, outcome Outcome) error {

	var errs []error

	for _, writer := range this {
		if writer == nil {
			continue
		}
		if err := writer.WriteOutcome(ctx, outcome); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
