// Package router is the in-process location keeper that navigation requests
// are handed to. A request becomes a Route that is queued and later picked
// up by whoever resolves routes into the navigation cursor; the router never
// touches slides or the view itself.
package router

import (
	"context"
	"errors"
	"maps"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/podium/internal/core/coords"
)

// Query param handling strategies.
const (
	QueryMerge    = "merge"
	QueryPreserve = "preserve"
	QueryReplace  = ""
)

// ErrClosed is returned by Next after Close.
var ErrClosed = errors.New("router closed")

// Request asks the router to move to a mode and coordinate path.
type Request struct {
	ModeSegment        string
	CoordinatePath     coords.Coordinate
	QueryParamHandling string
	Query              map[string]string
}

// Route is a resolved location: path segments, the positional coordinate
// params (c1..cN) taken from the segments after the mode, and query params.
type Route struct {
	Segments []string
	Params   map[string]string
	Query    map[string]string
}

// Mode returns the leading path segment.
func (r Route) Mode() string {
	if len(r.Segments) == 0 {
		return ""
	}
	return r.Segments[0]
}

// Path renders the route as "/mode/0/1?key=value".
func (r Route) Path() string {
	p := "/" + strings.Join(r.Segments, "/")
	if len(r.Query) == 0 {
		return p
	}

	q := url.Values{}
	for k, v := range r.Query {
		q.Set(k, v)
	}
	return p + "?" + q.Encode()
}

// NewRoute builds the route for a mode and coordinate path.
func NewRoute(mode string, c coords.Coordinate, query map[string]string) Route {
	segments := make([]string, 0, len(c)+1)
	segments = append(segments, mode)
	for _, v := range c {
		segments = append(segments, strconv.Itoa(v))
	}
	return routeFromSegments(segments, query)
}

// ParsePath reads a path such as "/presenter/1/0?notes=on". Segments after
// the first become params c1..cN verbatim; they are not validated here.
func ParsePath(raw string) (Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, err
	}

	var segments []string
	for _, s := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	var query map[string]string
	if values := u.Query(); len(values) > 0 {
		query = make(map[string]string, len(values))
		for k := range values {
			query[k] = values.Get(k)
		}
	}

	return routeFromSegments(segments, query), nil
}

func routeFromSegments(segments []string, query map[string]string) Route {
	params := make(map[string]string)
	if len(segments) > 1 {
		for i, s := range segments[1:] {
			params[coords.ParamName(i)] = s
		}
	}
	return Route{Segments: segments, Params: params, Query: query}
}

// Router queues route changes. Navigate never blocks; Next hands the queued
// routes out in order.
type Router struct {
	logger zerolog.Logger

	mu      sync.Mutex
	current Route
	pending []Route
	notify  chan struct{}
	closed  bool
	done    chan struct{}
}

// New creates a router positioned at an empty route.
func New(logger zerolog.Logger) *Router {
	return &Router{
		logger: logger,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Navigate turns req into a route, applies query handling against the
// current location and queues it. A second navigation while the first is
// still queued simply queues a second route.
func (r *Router) Navigate(req Request) Route {
	r.mu.Lock()
	query := mergeQuery(r.current.Query, req.Query, req.QueryParamHandling)
	route := NewRoute(req.ModeSegment, req.CoordinatePath, query)
	r.enqueueLocked(route)
	r.mu.Unlock()

	r.logger.Debug().Str("path", route.Path()).Msg("navigate")
	return route
}

// NavigateURL queues the route for a raw path.
func (r *Router) NavigateURL(raw string) (Route, error) {
	route, err := ParsePath(raw)
	if err != nil {
		return Route{}, err
	}

	r.mu.Lock()
	r.enqueueLocked(route)
	r.mu.Unlock()

	r.logger.Debug().Str("path", route.Path()).Msg("navigate url")
	return route, nil
}

func (r *Router) enqueueLocked(route Route) {
	if r.closed {
		return
	}
	r.current = route
	r.pending = append(r.pending, route)
	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// Current returns the location of the most recent navigation.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Pending returns the number of queued routes.
func (r *Router) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// TryNext pops the oldest queued route without waiting.
func (r *Router) TryNext() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) == 0 {
		return Route{}, false
	}
	route := r.pending[0]
	r.pending = r.pending[1:]
	return route, true
}

// Next waits for the next queued route.
func (r *Router) Next(ctx context.Context) (Route, error) {
	for {
		if route, ok := r.TryNext(); ok {
			return route, nil
		}

		select {
		case <-ctx.Done():
			return Route{}, ctx.Err()
		case <-r.done:
			return Route{}, ErrClosed
		case <-r.notify:
		}
	}
}

// Run hands every route to fn until ctx is cancelled or the router closes.
func (r *Router) Run(ctx context.Context, fn func(Route)) error {
	for {
		route, err := r.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}
		fn(route)
	}
}

// Close stops Next and drops queued routes.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.pending = nil
	close(r.done)
}

func mergeQuery(current, next map[string]string, handling string) map[string]string {
	var out map[string]string
	switch handling {
	case QueryMerge:
		out = maps.Clone(current)
		if out == nil && len(next) > 0 {
			out = make(map[string]string, len(next))
		}
		maps.Copy(out, next)
	case QueryPreserve:
		out = maps.Clone(current)
	default:
		out = maps.Clone(next)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
