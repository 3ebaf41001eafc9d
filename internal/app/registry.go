package app

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-console-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-console-go/internal/session"
)

// SessionEventName is the event published to Options.Events on session change.
const SessionEventName = "session"

// SessionEvent is the payload of a session event. It never carries the token.
type SessionEvent struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	UserID          string `json:"userId,omitempty"`
	CompanyID       string `json:"companyId,omitempty"`
}

func NewSessionEvent(st session.State) SessionEvent {
	ev := SessionEvent{IsAuthenticated: st.IsAuthenticated}
	if st.User != nil {
		ev.UserID = st.User.ID
	}
	if st.Company != nil {
		ev.CompanyID = st.Company.PublicID
	}
	return ev
}

type entry struct {
	instance *Instance
	lastSeen time.Time
}

// Registry keeps one Instance per browser session id. Instances are created
// and rehydrated on first use, and dropped when their session logs out.
type Registry struct {
	mu        sync.Mutex
	instances map[string]*entry
	persister session.Persister
	opts      Options
	now       func() time.Time
}

func NewRegistry(persister session.Persister, opts Options) *Registry {
	return &Registry{
		instances: make(map[string]*entry),
		persister: persister,
		opts:      opts,
		now:       time.Now,
	}
}

// SessionKey is the persistence key of a browser session.
func SessionKey(sid string) string {
	return session.DefaultNamespace + ":" + sid
}

// Get returns the instance bound to sid.
func (r *Registry) Get(ctx context.Context, sid string) (*Instance, error) {
	r.mu.Lock()
	if e, ok := r.instances[sid]; ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		return e.instance, nil
	}
	r.mu.Unlock()

	inst, err := Start(ctx, r.persister, SessionKey(sid), r.opts)
	if err != nil {
		return nil, err
	}

	// Listeners go in before the instance is reachable, so a logout by a
	// concurrent request always evicts it.
	if hub := r.opts.Events; hub != nil {
		key := inst.Session.Key()
		inst.Session.Subscribe(func(st session.State) {
			hub.Publish(key, sse.Event{Event: SessionEventName, Data: NewSessionEvent(st)})
		})
	}
	inst.Session.Subscribe(func(st session.State) {
		if !st.IsAuthenticated {
			r.evict(sid, inst)
		}
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.instances[sid]; ok {
		// Another request for the same browser won the race
		e.lastSeen = r.now()
		return e.instance, nil
	}
	r.instances[sid] = &entry{instance: inst, lastSeen: r.now()}
	return inst, nil
}

func (r *Registry) evict(sid string, inst *Instance) {
	r.mu.Lock()
	if e, ok := r.instances[sid]; ok && e.instance == inst {
		delete(r.instances, sid)
	}
	r.mu.Unlock()
}

// Sweep drops instances unused for longer than idle and returns how many.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for sid, e := range r.instances {
		if e.lastSeen.Before(cutoff) {
			delete(r.instances, sid)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}
