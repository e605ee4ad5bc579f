package game

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/vladcenuse/roster/client/network"
	"github.com/vladcenuse/roster/client/scenes"
	"github.com/vladcenuse/roster/pkg/log"
	"github.com/vladcenuse/roster/pkg/messages"
	"github.com/vladcenuse/roster/pkg/queue"
	"github.com/vladcenuse/roster/pkg/roster"
	"github.com/vladcenuse/roster/pkg/stats"
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// store holds the view state.
	store *roster.Store
	// actions dispatches user-triggered transitions.
	actions *roster.Actions
	// networkManager is the network manager.
	networkManager *network.NetworkManager
	// messageQueue carries roster snapshots from the network manager.
	messageQueue queue.Queue
	// mode is the current game mode.
	mode GameMode
	// scene is the current scene.
	scene scenes.Scene
}

type GameMode int

const (
	GameModeRoster GameMode = iota
	GameModeError
)

func (m GameMode) String() string {
	switch m {
	case GameModeRoster:
		return "Roster"
	case GameModeError:
		return "Error"
	}
	return "Unknown"
}

type NewGameOptions struct {
	Debug          bool
	Store          *roster.Store
	Actions        *roster.Actions
	NetworkManager *network.NetworkManager
	MessageQueue   queue.Queue
	Summarizer     *stats.Summarizer
}

func NewGame(opts NewGameOptions) (*Game, error) {
	g := &Game{
		debug:          opts.Debug,
		store:          opts.Store,
		actions:        opts.Actions,
		networkManager: opts.NetworkManager,
		messageQueue:   opts.MessageQueue,
	}

	rosterScene, err := scenes.NewRosterScene(scenes.RosterSceneOpts{
		Store:      opts.Store,
		Actions:    opts.Actions,
		Channel:    opts.NetworkManager,
		Summarizer: opts.Summarizer,
	})
	if err != nil {
		if err := g.loadError("Failed to load UI"); err != nil {
			return nil, fmt.Errorf("failed to load error scene: %v", err)
		}
		return g, nil
	}
	if err := g.SetScene(rosterScene); err != nil {
		return nil, fmt.Errorf("failed to set roster scene: %v", err)
	}
	g.mode = GameModeRoster

	return g, nil
}

// Start kicks off the initial roster load and opens the realtime channel.
// Both report failures through the store, so the UI stays responsive while
// they run.
func (g *Game) Start() {
	go func() {
		g.actions.Load(context.Background())
		if err := g.networkManager.Start(); err != nil {
			log.Error("Failed to start network manager: %v", err)
		}
	}()
}

func (g *Game) SetScene(scene scenes.Scene) error {
	if g.scene != nil {
		if err := g.scene.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy previous scene: %v", err)
		}
	}

	g.scene = scene
	if err := g.scene.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene: %v", err)
	}

	return nil
}

func (g *Game) loadError(msg string) error {
	errorScene, err := scenes.NewErrorScene(msg)
	if err != nil {
		return fmt.Errorf("failed to create error scene: %v", err)
	}
	if err := g.SetScene(errorScene); err != nil {
		return fmt.Errorf("failed to set error scene: %v", err)
	}
	g.mode = GameModeError
	return nil
}

func (g *Game) Update() error {
	g.applyServerMessages()

	if err := g.scene.Update(); err != nil {
		return fmt.Errorf("failed to update scene: %v", err)
	}

	return nil
}

// applyServerMessages drains the realtime queue. Each snapshot replaces the
// roster wholesale; when several are pending, the last one wins.
func (g *Game) applyServerMessages() {
	for _, item := range g.messageQueue.ReadAllMessages() {
		update, ok := item.(*messages.ServerRosterUpdate)
		if !ok {
			log.Error("Unexpected message type in queue: %T", item)
			continue
		}
		g.store.Set(func(st *roster.State) {
			st.Roster = update.Characters
		})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   Connection: %s", g.networkManager.State()))
}

const (
	DefaultScreenWidth  = 1280
	DefaultScreenHeight = 720
)

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return DefaultScreenWidth, DefaultScreenHeight
}
