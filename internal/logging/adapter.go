package logging

import "github.com/rs/zerolog"

// Adapter exposes a zerolog logger through domain.Logger.
type Adapter struct {
	l zerolog.Logger
}

// NewAdapter wraps l. Pass Logger() to log through the global logger.
func NewAdapter(l zerolog.Logger) *Adapter {
	return &Adapter{l: l}
}

// Component returns an adapter over the global logger tagged with a component name.
func Component(name string) *Adapter {
	return NewAdapter(With().Str("component", name).Logger())
}

func (a *Adapter) Debug(message string, kv ...any) {
	a.l.Debug().Fields(kv).Msg(message)
}

func (a *Adapter) Info(message string, kv ...any) {
	a.l.Info().Fields(kv).Msg(message)
}

func (a *Adapter) Error(message string, err error, kv ...any) {
	a.l.Error().Err(err).Fields(kv).Msg(message)
}
