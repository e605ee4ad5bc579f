package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladcenuse/roster/pkg/characters"
)

var fixtureRoster = []characters.Character{
	{ID: 1, Name: "Eldric the Wise", HP: 250, Damage: 120, Speed: 45, Armor: 40, ImageURL: "/src/assets/chisu.png"},
	{ID: 2, Name: "Thora Ironshield", HP: 400, Damage: 95, Speed: 55, Armor: 120, ImageURL: "/src/assets/chisu.png"},
	{ID: 3, Name: "Sylvanas Swiftshadow", HP: 350, Damage: 140, Speed: 95, Armor: 65, ImageURL: "/src/assets/chisu.png"},
}

// newTestServer runs an in-memory version of the character endpoint.
func newTestServer(t *testing.T) (*httptest.Server, *[]characters.Character) {
	roster := make([]characters.Character, len(fixtureRoster))
	copy(roster, fixtureRoster)
	nextID := 4

	mux := http.NewServeMux()
	mux.HandleFunc("/characters", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(roster); err != nil {
				t.Errorf("failed to encode roster: %v", err)
			}
		case http.MethodPost:
			c := characters.Character{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
			c.ID = nextID
			nextID++
			roster = append(roster, c)
			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(c))
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/characters/", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/characters/"))
		require.NoError(t, err)
		idx := -1
		for i, c := range roster {
			if c.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			http.Error(w, "Character not found", http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodPut:
			c := characters.Character{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
			c.ID = id
			roster[idx] = c
			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(c))
		case http.MethodDelete:
			roster = append(roster[:idx], roster[idx+1:]...)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &roster
}

func TestClient_ListCharacters(t *testing.T) {
	server, _ := newTestServer(t)
	client := NewClient(server.URL)

	got, err := client.ListCharacters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixtureRoster, got)
}

func TestClient_CreateCharacter(t *testing.T) {
	server, roster := newTestServer(t)
	client := NewClient(server.URL)

	draft := characters.Character{Name: "Brave walker", HP: 300, Damage: 80, Speed: 60, Armor: 50, ImageURL: characters.DefaultImageURL}
	created, err := client.CreateCharacter(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, draft.Name, created.Name)
	assert.Len(t, *roster, 4)
}

func TestClient_UpdateCharacter(t *testing.T) {
	server, roster := newTestServer(t)
	client := NewClient(server.URL)

	edited := fixtureRoster[1]
	edited.Name = "Thora Stormshield"
	edited.Armor = 150

	updated, err := client.UpdateCharacter(context.Background(), edited)
	require.NoError(t, err)
	assert.Equal(t, edited, *updated)

	// other entries and ordering are untouched
	assert.Equal(t, fixtureRoster[0], (*roster)[0])
	assert.Equal(t, edited, (*roster)[1])
	assert.Equal(t, fixtureRoster[2], (*roster)[2])
}

func TestClient_DeleteCharacter(t *testing.T) {
	server, roster := newTestServer(t)
	client := NewClient(server.URL)

	require.NoError(t, client.DeleteCharacter(context.Background(), 2))
	require.Len(t, *roster, 2)
	assert.Equal(t, 1, (*roster)[0].ID)
	assert.Equal(t, 3, (*roster)[1].ID)
}

func TestClient_RequestFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL)
	ctx := context.Background()

	_, err := client.ListCharacters(ctx)
	requestFailed := &ErrRequestFailed{}
	require.ErrorAs(t, err, &requestFailed)
	assert.Contains(t, requestFailed.Status, "500")
	assert.Contains(t, err.Error(), "500 Internal Server Error")

	_, err = client.CreateCharacter(ctx, characters.Template())
	assert.ErrorAs(t, err, &requestFailed)

	_, err = client.UpdateCharacter(ctx, characters.Character{ID: 1})
	assert.ErrorAs(t, err, &requestFailed)

	err = client.DeleteCharacter(ctx, 1)
	assert.ErrorAs(t, err, &requestFailed)
}

func TestClient_CreateSendsPlaceholderID(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"id": 9, "name": "x", "hp": 1, "damage": 1, "speed": 1, "armor": 0, "imageUrl": ""}`)
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL)

	created, err := client.CreateCharacter(context.Background(), characters.Character{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
	// the draft carries an explicit placeholder id for the server to overwrite
	assert.Equal(t, float64(0), gotBody["id"])
}
