package network

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vladcenuse/roster/client/ui"
	"github.com/vladcenuse/roster/pkg/log"
	"github.com/vladcenuse/roster/pkg/messages"
	"github.com/vladcenuse/roster/pkg/queue"
	"github.com/vladcenuse/roster/pkg/roster"
)

// DefaultReconnectDelay is how long to wait before redialing after an
// abnormal closure.
const DefaultReconnectDelay = 5 * time.Second

// ConnectionState is the lifecycle state of the WebSocket connection.
type ConnectionState int

const (
	StateClosed ConnectionState = iota
	StateConnecting
	StateOpen
)

func (s ConnectionState) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateConnecting:
		return "Connecting"
	case StateOpen:
		return "Open"
	}
	return "Unknown"
}

// NetworkManager maintains the WebSocket connection to the server. Roster
// snapshots are enqueued for the game loop to apply; connection state
// changes are written to the store directly.
type NetworkManager struct {
	serverAddr     string
	messageQueue   queue.Queue
	store          *roster.Store
	reconnectDelay time.Duration

	mu             sync.Mutex
	state          ConnectionState
	conn           *websocket.Conn
	reconnectTimer *time.Timer
	stopped        bool
}

type NewNetworkManagerOptions struct {
	ServerAddr   string
	MessageQueue queue.Queue
	Store        *roster.Store
	// ReconnectDelay overrides DefaultReconnectDelay when non-zero.
	ReconnectDelay time.Duration
}

// NewNetworkManager creates a new network manager.
func NewNetworkManager(opts NewNetworkManagerOptions) *NetworkManager {
	reconnectDelay := opts.ReconnectDelay
	if reconnectDelay == 0 {
		reconnectDelay = DefaultReconnectDelay
	}

	return &NetworkManager{
		serverAddr:     opts.ServerAddr,
		messageQueue:   opts.MessageQueue,
		store:          opts.Store,
		reconnectDelay: reconnectDelay,
		state:          StateClosed,
	}
}

// Start establishes the connection and begins reading server messages.
func (m *NetworkManager) Start() error {
	m.mu.Lock()
	m.stopped = false
	m.mu.Unlock()
	return m.connect()
}

// Stop tears the connection down with a normal closure and suppresses any
// pending reconnect. The generation flag is forced off since the server
// loop can no longer reach us.
func (m *NetworkManager) Stop() error {
	m.mu.Lock()
	m.stopped = true
	if m.reconnectTimer != nil {
		m.reconnectTimer.Stop()
		m.reconnectTimer = nil
	}
	conn := m.conn
	m.conn = nil
	m.state = StateClosed
	m.mu.Unlock()

	m.store.Set(func(st *roster.State) {
		st.Generating = false
	})

	if conn == nil {
		log.Debug("Network manager already stopped")
		return nil
	}

	deadline := time.Now().Add(time.Second)
	closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, closeMessage, deadline); err != nil {
		log.Warn("Failed to send close message: %v", err)
	}
	if err := conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %v", err)
	}

	log.Info("Network manager stopped")
	return nil
}

// State returns the current connection state.
func (m *NetworkManager) State() ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsConnected reports whether the connection is open.
func (m *NetworkManager) IsConnected() bool {
	return m.State() == StateOpen
}

// StartGeneration asks the server to start its generation loop.
func (m *NetworkManager) StartGeneration() error {
	return m.sendAction(messages.ActionStartGeneration, true)
}

// StopGeneration asks the server to stop its generation loop.
func (m *NetworkManager) StopGeneration() error {
	return m.sendAction(messages.ActionStopGeneration, false)
}

func (m *NetworkManager) sendAction(action string, generating bool) error {
	m.mu.Lock()
	if m.state != StateOpen || m.conn == nil {
		m.mu.Unlock()
		return &ui.ActionableError{Message: "Not connected to the server"}
	}
	conn := m.conn
	m.mu.Unlock()

	b, err := messages.SerializeAction(action)
	if err != nil {
		return err
	}

	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("failed to write action message: %v", err)
	}

	m.store.Set(func(st *roster.State) {
		st.Generating = generating
	})

	return nil
}
