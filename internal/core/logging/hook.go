package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextFields are the context values copied onto log events, in order.
var contextFields = []struct {
	name string
	get  func(context.Context) string
}{
	{"deck", GetDeck},
	{"route", GetRoute},
	{"slide", GetSlide},
}

// ContextHook adds the deck, route and slide carried by an event's context. Events
// logged without Ctx see context.Background and get nothing.
type ContextHook struct{}

// Run implements zerolog.Hook.
func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	for _, f := range contextFields {
		if v := f.get(ctx); v != "" {
			e.Str(f.name, v)
		}
	}
}
