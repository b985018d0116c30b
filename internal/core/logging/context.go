package logging

import "context"

type contextKey string

const (
	deckKey  contextKey = "deck"
	routeKey contextKey = "route"
	slideKey contextKey = "slide"
)

// WithDeck adds the path of the deck being presented to the context.
func WithDeck(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, deckKey, path)
}

// WithRoute adds the route path being resolved to the context.
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey, route)
}

// WithSlide adds the id of the slide a route resolved to.
func WithSlide(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, slideKey, id)
}

// GetDeck retrieves the deck path from the context.
func GetDeck(ctx context.Context) string { return value(ctx, deckKey) }

// GetRoute retrieves the route path from the context.
func GetRoute(ctx context.Context) string { return value(ctx, routeKey) }

// GetSlide retrieves the slide id from the context.
func GetSlide(ctx context.Context) string { return value(ctx, slideKey) }

// value returns the string stored under key, or "" when absent.
func value(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}
