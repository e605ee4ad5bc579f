package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladcenuse/roster/pkg/characters"
)

func TestStore_SetNotifiesSubscribers(t *testing.T) {
	store := NewStore()

	calls := 0
	unsubscribe := store.Subscribe(func() {
		calls++
	})

	store.Set(func(st *State) {
		st.Loading = true
	})
	assert.Equal(t, 1, calls)
	assert.True(t, store.Get().Loading)

	unsubscribe()
	store.Set(func(st *State) {
		st.Loading = false
	})
	assert.Equal(t, 1, calls, "unsubscribed callback should not fire")
}

func TestStore_InitialDraftIsTemplate(t *testing.T) {
	store := NewStore()
	assert.Equal(t, characters.Template(), store.Get().Draft)
}

func TestStore_Notifications(t *testing.T) {
	store := NewStore()

	store.Notify("first")
	store.Notify("second")

	state := store.Get()
	require.Len(t, state.Notifications, 2)
	assert.Equal(t, "first", state.Notifications[0].Text)
	assert.NotEqual(t, state.Notifications[0].ID, state.Notifications[1].ID)

	store.Dismiss(state.Notifications[0].ID)
	state = store.Get()
	require.Len(t, state.Notifications, 1)
	assert.Equal(t, "second", state.Notifications[0].Text)
}
