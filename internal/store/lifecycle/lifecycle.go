// Package lifecycle tracks the loading and error state shared by every
// feature store, and fences responses so only the latest call per action
// updates the cache.
package lifecycle

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/validator"
)

// Ticket identifies one issued call of an action.
type Ticket struct {
	key string
	seq uint64
}

type Tracker struct {
	mu       sync.Mutex
	name     string
	seq      map[string]uint64
	inflight int
	errMsg   string
	fields   map[string]string
	texts    *i18n.Localizer
	logger   *slog.Logger
}

func New(name string, texts *i18n.Localizer, logger *slog.Logger) *Tracker {
	if texts == nil {
		texts = i18n.New("en")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		name:   name,
		seq:    make(map[string]uint64),
		texts:  texts,
		logger: logger.With("store", name),
	}
}

// Begin issues the newest ticket for key, sets loading and clears the error.
func (t *Tracker) Begin(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq[key]++
	t.inflight++
	t.errMsg = ""
	t.fields = nil
	return Ticket{key: key, seq: t.seq[key]}
}

// current reports whether tk is still the latest ticket for its action.
// Callers hold t.mu.
func (t *Tracker) current(tk Ticket) bool {
	return t.seq[tk.key] == tk.seq
}

// Commit ends a successful call. apply runs only when tk is still current,
// and the return value reports whether it ran.
func (t *Tracker) Commit(tk Ticket, apply func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.done()
	if !t.current(tk) {
		t.logger.Debug("discarding stale response", "action", tk.key, "seq", tk.seq)
		return false
	}
	if apply != nil {
		apply()
	}
	return true
}

// Fail ends a failed call. The error becomes the server message when err
// carries one, the localized fallback otherwise. Validation errors also fill
// the field errors. A superseded call leaves the state alone.
func (t *Tracker) Fail(tk Ticket, err error, fallback i18n.Key, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.done()
	if !t.current(tk) {
		t.logger.Debug("discarding stale failure", "action", tk.key, "seq", tk.seq, "error", err)
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		t.fields = verrs.ToMap()
		t.errMsg = t.texts.Text(i18n.Validation)
		return
	}

	t.errMsg = apiclient.Message(err, t.texts.Text(fallback, args...))
	t.logger.Warn("store action failed", "action", tk.key, "error", err)
}

func (t *Tracker) done() {
	if t.inflight > 0 {
		t.inflight--
	}
}

func (t *Tracker) IsLoading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inflight > 0
}

func (t *Tracker) Error() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errMsg
}

// FieldErrors returns a copy of the per-field validation messages.
func (t *Tracker) FieldErrors() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(t.fields))
	for k, v := range t.fields {
		out[k] = v
	}
	return out
}

func (t *Tracker) ClearError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errMsg = ""
	t.fields = nil
}

// Text renders a localized message in the tracker's language.
func (t *Tracker) Text(key i18n.Key, args ...any) string {
	return t.texts.Text(key, args...)
}

func (t *Tracker) Logger() *slog.Logger {
	return t.logger
}
