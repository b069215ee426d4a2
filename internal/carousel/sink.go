package carousel

import (
	"context"
	"io"
)

// Saver delivers a finished artifact to the user under filename.
type Saver interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) error
}

type SaverFunc func(ctx context.Context, filename, contentType string, r io.Reader) error

func (fn SaverFunc) Save(ctx context.Context, filename, contentType string, r io.Reader) error {
	return fn(ctx, filename, contentType, r)
}

// Notifier surfaces short user-visible messages.
type Notifier interface {
	Info(ctx context.Context, msg string)
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

type nopNotifier struct{}

func (nopNotifier) Info(context.Context, string)    {}
func (nopNotifier) Success(context.Context, string) {}
func (nopNotifier) Error(context.Context, string)   {}

func NopNotifier() Notifier { return nopNotifier{} }
