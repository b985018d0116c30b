package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger registers hooks that log topic activity at debug level
// and subscriber panics at error level.
func RegisterDebugLogger(logger zerolog.Logger, topics ...Hookable) {
	for _, topic := range topics {
		topic.OnPublish(func(event Event, _ any) {
			logger.Debug().Str("event", string(event)).Msg("event fired")
		})

		topic.OnSubscribe(func(event Event) {
			logger.Debug().Str("event", string(event)).Msg("subscriber added")
		})

		topic.OnPanic(func(event Event, _ any, recovered any) {
			logger.Error().
				Str("event", string(event)).
				Str("panic", fmt.Sprint(recovered)).
				Msg("subscriber panicked")
		})
	}
}
