// Package logging carries podium's zerolog conventions: loggers tagged with
// the subsystem that owns them, and deck and route values copied from the
// context of each event.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentKey is the field naming the subsystem that wrote an event.
const ComponentKey = "cmp"

// Component returns a child of the global logger tagged with name. The child
// copies the global writer and level, so call it after logging is set up.
func Component(name string) zerolog.Logger {
	return log.With().Str(ComponentKey, name).Logger()
}
