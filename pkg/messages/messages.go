package messages

import (
	"encoding/json"
	"fmt"

	"github.com/vladcenuse/roster/pkg/characters"
)

// ServerRosterUpdate is pushed by the server whenever the roster changes.
// It carries the full roster; the client replaces its local copy wholesale.
// A nil Characters slice means the message carried no roster field.
type ServerRosterUpdate struct {
	Characters []characters.Character `json:"characters"`
}

// Generation control actions understood by the server.
const (
	ActionStartGeneration = "start_generation"
	ActionStopGeneration  = "stop_generation"
)

// ClientAction is sent to the server to control its generation loop.
type ClientAction struct {
	Action string `json:"action"`
}

// DeserializeRosterUpdate parses a server push message.
func DeserializeRosterUpdate(b []byte) (*ServerRosterUpdate, error) {
	update := &ServerRosterUpdate{}
	if err := json.Unmarshal(b, update); err != nil {
		return nil, fmt.Errorf("failed to deserialize roster update: %v", err)
	}
	return update, nil
}

// SerializeAction encodes a generation control message.
func SerializeAction(action string) ([]byte, error) {
	b, err := json.Marshal(&ClientAction{Action: action})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize action message: %v", err)
	}
	return b, nil
}
