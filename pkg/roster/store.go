package roster

import (
	"sync"

	"github.com/google/uuid"
	"github.com/vladcenuse/roster/pkg/characters"
)

// Notification is a transient, dismissable user-facing message.
type Notification struct {
	ID   uuid.UUID
	Text string
}

// State is the full view state. Roster snapshots from the realtime channel
// replace Roster wholesale; the last write in the event loop wins.
type State struct {
	Roster   []characters.Character
	Selected *characters.Character
	Draft    characters.Character

	ShowAddForm bool
	Editing     bool

	Loading         bool
	LoadError       string
	ConnectionError string
	Generating      bool

	Notifications []Notification
}

// Store holds the view state behind an explicit get/set/subscribe surface.
// All mutations go through Set so subscribers always observe a consistent
// state.
type Store struct {
	mu          sync.RWMutex
	state       State
	subscribers map[int]func()
	nextSubID   int
}

// NewStore creates a store pre-filled with the add-form template draft.
func NewStore() *Store {
	return &Store{
		state: State{
			Draft: characters.Template(),
		},
		subscribers: make(map[int]func()),
	}
}

// Get returns a snapshot of the current state.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set applies a mutation and notifies subscribers. The mutation runs under
// the store lock and must not call back into the store.
func (s *Store) Set(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	subscribers := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

// Subscribe registers a callback invoked after every state change and
// returns a function that removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Notify appends a dismissable notification to the state.
func (s *Store) Notify(text string) {
	s.Set(func(st *State) {
		st.Notifications = append(st.Notifications, Notification{
			ID:   uuid.New(),
			Text: text,
		})
	})
}

// Dismiss removes the notification with the given ID, if present.
func (s *Store) Dismiss(id uuid.UUID) {
	s.Set(func(st *State) {
		for i, n := range st.Notifications {
			if n.ID == id {
				st.Notifications = append(st.Notifications[:i], st.Notifications[i+1:]...)
				return
			}
		}
	})
}
