package network

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vladcenuse/roster/pkg/log"
	"github.com/vladcenuse/roster/pkg/messages"
	"github.com/vladcenuse/roster/pkg/roster"
)

func (m *NetworkManager) connect() error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil
	}
	if m.conn != nil {
		// a reconnect replaces any existing connection
		m.conn.Close()
		m.conn = nil
	}
	m.state = StateConnecting
	m.mu.Unlock()

	log.Info("Connecting to WebSocket server at %s", m.serverAddr)
	conn, _, err := websocket.DefaultDialer.Dial(m.serverAddr, nil)
	if err != nil {
		m.mu.Lock()
		m.state = StateClosed
		m.mu.Unlock()

		m.store.Set(func(st *roster.State) {
			st.ConnectionError = "Failed to connect to server"
			st.Generating = false
		})
		m.scheduleReconnect()
		return fmt.Errorf("failed to connect to server: %v", err)
	}

	m.mu.Lock()
	m.state = StateOpen
	m.conn = conn
	if m.reconnectTimer != nil {
		m.reconnectTimer.Stop()
		m.reconnectTimer = nil
	}
	m.mu.Unlock()

	// entering the open state clears any pending connection error
	m.store.Set(func(st *roster.State) {
		st.ConnectionError = ""
	})

	go m.readLoop(conn)

	return nil
}

func (m *NetworkManager) readLoop(conn *websocket.Conn) {
	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			m.handleClose(err)
			return
		}
		if err := m.handleMessage(b); err != nil {
			log.Error("Failed to handle server message: %v", err)
		}
	}
}

// handleMessage parses a server push. Malformed payloads are logged by the
// caller and dropped; messages without a roster field are ignored.
func (m *NetworkManager) handleMessage(b []byte) error {
	update, err := messages.DeserializeRosterUpdate(b)
	if err != nil {
		return fmt.Errorf("failed to deserialize server message: %v", err)
	}

	if update.Characters == nil {
		log.Trace("Ignoring server message without a roster")
		return nil
	}

	if err := m.messageQueue.Enqueue(update); err != nil {
		return fmt.Errorf("failed to enqueue roster update: %v", err)
	}

	return nil
}

func (m *NetworkManager) handleClose(err error) {
	m.mu.Lock()
	m.state = StateClosed
	m.conn = nil
	stopped := m.stopped
	m.mu.Unlock()

	// the server's generation loop is of no use to a closed connection
	m.store.Set(func(st *roster.State) {
		st.Generating = false
	})

	if stopped || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		log.Debug("WebSocket connection closed")
		return
	}

	log.Error("WebSocket connection lost: %v", err)
	m.store.Set(func(st *roster.State) {
		st.ConnectionError = "Connection to server lost"
	})
	m.scheduleReconnect()
}

func (m *NetworkManager) scheduleReconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	if m.reconnectTimer != nil {
		m.reconnectTimer.Stop()
	}

	log.Info("Reconnecting in %s", m.reconnectDelay)
	m.reconnectTimer = time.AfterFunc(m.reconnectDelay, func() {
		if err := m.connect(); err != nil {
			log.Error("Failed to reconnect: %v", err)
		}
	})
}
