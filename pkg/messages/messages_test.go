package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeserializeRosterUpdate(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantErr   bool
		wantNil   bool
		wantCount int
	}{
		{
			name:      "full roster",
			payload:   `{"characters": [{"id": 1, "name": "Eldric the Wise", "hp": 250, "damage": 120, "speed": 45, "armor": 40, "imageUrl": "/src/assets/chisu.png"}]}`,
			wantCount: 1,
		},
		{
			name:      "empty roster still replaces",
			payload:   `{"characters": []}`,
			wantCount: 0,
		},
		{
			name:    "no roster field",
			payload: `{"status": "ok"}`,
			wantNil: true,
		},
		{
			name:    "malformed payload",
			payload: `{"characters": [`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, err := DeserializeRosterUpdate([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, update.Characters)
				return
			}
			require.NotNil(t, update.Characters)
			assert.Len(t, update.Characters, tt.wantCount)
		})
	}
}

func TestSerializeAction(t *testing.T) {
	b, err := SerializeAction(ActionStartGeneration)
	require.NoError(t, err)
	assert.JSONEq(t, `{"action": "start_generation"}`, string(b))

	b, err = SerializeAction(ActionStopGeneration)
	require.NoError(t, err)
	assert.JSONEq(t, `{"action": "stop_generation"}`, string(b))
}
