package roster

import (
	"context"

	"github.com/vladcenuse/roster/pkg/characters"
	"github.com/vladcenuse/roster/pkg/log"
)

// BulkGenerateCount is the number of characters created by a bulk generate.
const BulkGenerateCount = 100

// API is the subset of the character endpoint the actions need.
type API interface {
	ListCharacters(ctx context.Context) ([]characters.Character, error)
	CreateCharacter(ctx context.Context, draft characters.Character) (*characters.Character, error)
	UpdateCharacter(ctx context.Context, character characters.Character) (*characters.Character, error)
	DeleteCharacter(ctx context.Context, id int) error
}

// FormInput carries raw form field values. Numeric fields are parsed and
// clamped here so the widgets stay dumb.
type FormInput struct {
	Name   string
	HP     string
	Damage string
	Speed  string
	Armor  string
}

// Actions implements every user-triggered state transition against the
// store and the API client.
type Actions struct {
	store *Store
	api   API
	gen   *characters.Generator
}

// NewActions creates the action controller.
func NewActions(store *Store, apiClient API, gen *characters.Generator) *Actions {
	return &Actions{
		store: store,
		api:   apiClient,
		gen:   gen,
	}
}

// Load fetches the full roster. On failure a generic load error is set; the
// loading flag is always cleared afterwards.
func (a *Actions) Load(ctx context.Context) {
	a.store.Set(func(st *State) {
		st.Loading = true
		st.LoadError = ""
	})

	roster, err := a.api.ListCharacters(ctx)

	a.store.Set(func(st *State) {
		st.Loading = false
		if err != nil {
			st.LoadError = "Failed to load characters"
			return
		}
		st.Roster = roster
	})
	if err != nil {
		log.Error("Failed to load characters: %v", err)
	}
}

// Select marks a character as selected and closes the add form and edit
// mode.
func (a *Actions) Select(character characters.Character) {
	a.store.Set(func(st *State) {
		selected := character
		st.Selected = &selected
		st.ShowAddForm = false
		st.Editing = false
	})
}

// ToggleAddForm flips the add-form visibility and clears any selection.
func (a *Actions) ToggleAddForm() {
	a.store.Set(func(st *State) {
		st.ShowAddForm = !st.ShowAddForm
		st.Selected = nil
		st.Editing = false
	})
}

// SubmitAdd validates and clamps the form input, creates the character, and
// appends the server's copy to the roster. On failure the draft is kept so
// the user can retry.
func (a *Actions) SubmitAdd(ctx context.Context, input FormInput) error {
	if input.Name == "" {
		return &ErrValidationFailed{Message: "Name is required"}
	}

	draft := draftFromInput(input)
	a.store.Set(func(st *State) {
		st.Draft = draft
	})

	created, err := a.api.CreateCharacter(ctx, draft)
	if err != nil {
		log.Error("Failed to create character: %v", err)
		a.store.Notify("Failed to create character")
		return err
	}

	a.store.Set(func(st *State) {
		st.Roster = append(st.Roster, *created)
		st.ShowAddForm = false
		st.Draft = characters.Template()
	})

	return nil
}

// StartEdit enters edit mode for the selected character.
func (a *Actions) StartEdit() {
	a.store.Set(func(st *State) {
		if st.Selected == nil {
			return
		}
		st.Editing = true
	})
}

// CancelEdit leaves edit mode without saving.
func (a *Actions) CancelEdit() {
	a.store.Set(func(st *State) {
		st.Editing = false
	})
}

// SaveEdit updates the selected character with the clamped form input and
// replaces the matching roster entry in place. Edit mode is exited whether
// or not the request succeeds.
func (a *Actions) SaveEdit(ctx context.Context, input FormInput) error {
	state := a.store.Get()
	if state.Selected == nil {
		return &ErrValidationFailed{Message: "No character selected"}
	}
	if input.Name == "" {
		return &ErrValidationFailed{Message: "Name is required"}
	}

	edited := draftFromInput(input)
	edited.ID = state.Selected.ID
	if state.Selected.ImageURL != "" {
		edited.ImageURL = state.Selected.ImageURL
	}

	updated, err := a.api.UpdateCharacter(ctx, edited)

	a.store.Set(func(st *State) {
		st.Editing = false
		if err != nil {
			return
		}
		for i, c := range st.Roster {
			if c.ID == updated.ID {
				st.Roster[i] = *updated
				break
			}
		}
		selected := *updated
		st.Selected = &selected
	})

	if err != nil {
		log.Error("Failed to update character: %v", err)
		a.store.Notify("Failed to update character")
		return err
	}

	return nil
}

// Delete removes a character. On success exactly the matching entry leaves
// the roster, and the selection is cleared if it pointed at it.
func (a *Actions) Delete(ctx context.Context, id int) error {
	if err := a.api.DeleteCharacter(ctx, id); err != nil {
		log.Error("Failed to delete character: %v", err)
		a.store.Notify("Failed to delete character")
		return err
	}

	a.store.Set(func(st *State) {
		for i, c := range st.Roster {
			if c.ID == id {
				st.Roster = append(st.Roster[:i], st.Roster[i+1:]...)
				break
			}
		}
		if st.Selected != nil && st.Selected.ID == id {
			st.Selected = nil
			st.Editing = false
		}
	})

	return nil
}

// BulkGenerate creates BulkGenerateCount random characters one at a time,
// appending each as it returns. The first failure aborts the remaining
// iterations; characters created before it stay.
func (a *Actions) BulkGenerate(ctx context.Context) error {
	for i := 0; i < BulkGenerateCount; i++ {
		created, err := a.api.CreateCharacter(ctx, a.gen.Generate())
		if err != nil {
			log.Error("Bulk generation stopped after %d characters: %v", i, err)
			a.store.Notify("Bulk generation failed")
			return err
		}
		a.store.Set(func(st *State) {
			st.Roster = append(st.Roster, *created)
		})
	}
	return nil
}

func draftFromInput(input FormInput) characters.Character {
	return characters.Character{
		Name:     input.Name,
		HP:       characters.ClampStat(input.HP, characters.DefaultHP, characters.MinHP),
		Damage:   characters.ClampStat(input.Damage, characters.DefaultDamage, characters.MinDamage),
		Speed:    characters.ClampStat(input.Speed, characters.DefaultSpeed, characters.MinSpeed),
		Armor:    characters.ClampStat(input.Armor, characters.DefaultArmor, characters.MinArmor),
		ImageURL: characters.DefaultImageURL,
	}
}
