package assist

import (
	"context"
	"time"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

// Source is the slice of the journal the collaborator may read.
type Source interface {
	Notes() []record.Note
	Tasks() []record.Task
}

// Assistant mediates one chat turn: compose the prompt, call the model,
// and fold preference updates back into local storage.
type Assistant struct {
	completer Completer
	source    Source
	kv        store.KV
	now       func() time.Time
}

// Option tweaks an Assistant.
type Option func(*Assistant)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// New wires an Assistant over the journal and the local store.
func New(completer Completer, source Source, kv store.KV, opts ...Option) *Assistant {
	a := &Assistant{
		completer: completer,
		source:    source,
		kv:        kv,
		now:       time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Chat runs one exchange. A failed call returns the fallback text along
// with the error; local data is never touched on failure.
func (a *Assistant) Chat(ctx context.Context, message string) (string, error) {
	prefs := LoadPreferences(a.kv)
	prompt := BuildPrompt(message, a.source.Notes(), a.source.Tasks(), prefs, record.DayOf(a.now()))

	reply, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return Fallback, err
	}

	env, ok := parseEnvelope(reply)
	if !ok {
		return reply, nil
	}
	for k, v := range env.Preferences {
		prefs[k] = v
	}
	// Remembering is best effort, the confirmation still shows.
	_ = SavePreferences(a.kv, prefs)
	if env.Message != "" {
		return env.Message, nil
	}
	return "Noted, I'll keep that in mind.", nil
}
