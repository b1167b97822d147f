package roster

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"roster-app-go/models"
)

// Loader produces the records shown on the roster screen
type Loader interface {
	Load(ctx context.Context) ([]models.RosterRecord, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(ctx context.Context) ([]models.RosterRecord, error)

func (f LoaderFunc) Load(ctx context.Context) ([]models.RosterRecord, error) { return f(ctx) }

// Screen is the remote roster screen. Every Mount performs its own load.
type Screen struct {
	loader Loader
}

// NewScreen creates a Screen backed by loader
func NewScreen(loader Loader) *Screen {
	return &Screen{loader: loader}
}

// Mount is one mounted instance of the screen.
// Its lifetime ends on Unmount or when the parent context is done.
type Mount struct {
	ID string

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	state     State
	unmounted bool
	onChange  func(State)
}

// Mount starts a load whose request lives only as long as the mount.
// onChange, if set, is called with Loading before Mount returns and once more with the terminal state.
// It runs under the mount lock and must not call back into the Mount.
func (s *Screen) Mount(ctx context.Context, onChange func(State)) *Mount {
	mctx, cancel := context.WithCancel(ctx)
	m := &Mount{
		ID:       uuid.NewString(),
		ctx:      mctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		state:    Loading{},
		onChange: onChange,
	}
	if onChange != nil {
		onChange(m.state)
	}

	go func() {
		defer close(m.done)
		records, err := s.loader.Load(mctx)
		m.apply(Resolve(records, err))
	}()
	return m
}

// apply is a no-op once the mount has ended or a terminal state is set
func (m *Mount) apply(next State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unmounted || m.ctx.Err() != nil {
		log.Printf("Roster mount %s ended before load finished, discarding %s result", m.ID, next.Phase())
		return
	}
	if Terminal(m.state) {
		return
	}
	m.state = next
	if m.onChange != nil {
		m.onChange(next)
	}
}

// State returns the current view state
func (m *Mount) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Done is closed when the load goroutine has returned
func (m *Mount) Done() <-chan struct{} {
	return m.done
}

// Unmount cancels an in-flight request. No callback runs after Unmount returns.
func (m *Mount) Unmount() {
	m.mu.Lock()
	m.unmounted = true
	m.mu.Unlock()
	m.cancel()
}

// Render mounts for the lifetime of ctx and returns the state reached when the load
// finishes or ctx ends, whichever is first.
func (s *Screen) Render(ctx context.Context) State {
	m := s.Mount(ctx, nil)
	select {
	case <-m.Done():
	case <-ctx.Done():
	}
	state := m.State()
	m.Unmount()
	return state
}
