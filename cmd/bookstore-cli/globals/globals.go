package globals

import (
	"context"
	"errors"
	"io"

	"bookstore-client/internal/actions"
	"bookstore-client/internal/bookstore"
	"bookstore-client/internal/components/telemetry"
	"bookstore-client/internal/config"
	"bookstore-client/internal/session"
	"bookstore-client/internal/termui"
)

type keyType struct{}

var key keyType

type Value struct {
	Config   config.Config
	Client   *bookstore.Client
	Sessions session.Store
	Notifier *termui.Notifier
	Policy   actions.Policy
	Tel      telemetry.API
	Out      io.Writer
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key).(*Value)
}

// ErrReported is returned by commands whose failure was already shown to the user.
var ErrReported = errors.New("reported")

// Report surfaces `err` through the action policy, it returns ErrReported unless
// the request succeeded.
func Report(ctx context.Context, err error, msgs actions.Messages) error {
	outcome := Get(ctx).Policy.Report(err, msgs)
	if outcome != actions.Succeeded {
		return ErrReported
	}
	return nil
}
