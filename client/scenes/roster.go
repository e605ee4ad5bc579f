package scenes

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"sync"

	"github.com/ebitenui/ebitenui"
	eimage "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/vladcenuse/roster/client/fonts"
	"github.com/vladcenuse/roster/client/objects"
	"github.com/vladcenuse/roster/client/ui"
	"github.com/vladcenuse/roster/pkg/characters"
	"github.com/vladcenuse/roster/pkg/log"
	"github.com/vladcenuse/roster/pkg/roster"
	"github.com/vladcenuse/roster/pkg/stats"
)

// GenerationChannel is the realtime channel surface the scene needs.
type GenerationChannel interface {
	StartGeneration() error
	StopGeneration() error
	IsConnected() bool
}

// RosterScene renders the character list, detail panel, add/edit forms, and
// the stat chart, and dispatches user actions. The UI is rebuilt whenever
// the store changes.
type RosterScene struct {
	*BaseScene

	ui         *ebitenui.UI
	store      *roster.Store
	actions    *roster.Actions
	channel    GenerationChannel
	summarizer *stats.Summarizer
	chart      *objects.PieChartObject

	unsubscribe func()
	dirtyMu     sync.Mutex
	dirty       bool

	addForm  formFields
	editForm formFields

	prevShowAddForm bool
	prevEditing     bool
	prevSelectedID  int

	isDeletingCharacter bool
	deletingCharacterID int
	formErr             string
}

type formFields struct {
	name, hp, damage, speed, armor string
}

func formFieldsFromCharacter(c characters.Character) formFields {
	return formFields{
		name:   c.Name,
		hp:     strconv.Itoa(c.HP),
		damage: strconv.Itoa(c.Damage),
		speed:  strconv.Itoa(c.Speed),
		armor:  strconv.Itoa(c.Armor),
	}
}

func (f formFields) input() roster.FormInput {
	return roster.FormInput{
		Name:   f.name,
		HP:     f.hp,
		Damage: f.damage,
		Speed:  f.speed,
		Armor:  f.armor,
	}
}

type RosterSceneOpts struct {
	Store      *roster.Store
	Actions    *roster.Actions
	Channel    GenerationChannel
	Summarizer *stats.Summarizer
}

var _ Scene = &RosterScene{}

func NewRosterScene(opts RosterSceneOpts) (Scene, error) {
	root := objects.NewBaseObject("roster-root")
	chart := objects.NewPieChartObject("roster-chart", 1080, 560, 110)
	root.AddChild(chart)

	return &RosterScene{
		BaseScene:  NewBaseScene(root),
		store:      opts.Store,
		actions:    opts.Actions,
		channel:    opts.Channel,
		summarizer: opts.Summarizer,
		chart:      chart,
	}, nil
}

func (s *RosterScene) Init() error {
	s.unsubscribe = s.store.Subscribe(func() {
		s.markDirty()
	})
	s.refresh()
	return s.BaseScene.Init()
}

func (s *RosterScene) Destroy() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	return s.BaseScene.Destroy()
}

func (s *RosterScene) Update() error {
	if s.consumeDirty() {
		s.refresh()
	}
	s.ui.Update()
	return s.BaseScene.Update()
}

func (s *RosterScene) Draw(screen *ebiten.Image) {
	s.ui.Draw(screen)
	s.BaseScene.Draw(screen)
}

// markDirty may be called from any goroutine; the rebuild happens on the
// next Update.
func (s *RosterScene) markDirty() {
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()
	s.dirty = true
}

func (s *RosterScene) consumeDirty() bool {
	s.dirtyMu.Lock()
	defer s.dirtyMu.Unlock()
	dirty := s.dirty
	s.dirty = false
	return dirty
}

func (s *RosterScene) refresh() {
	state := s.store.Get()

	// seed form fields when a form opens
	if state.ShowAddForm && !s.prevShowAddForm {
		s.addForm = formFieldsFromCharacter(state.Draft)
	}
	if state.Editing && state.Selected != nil && (!s.prevEditing || s.prevSelectedID != state.Selected.ID) {
		s.editForm = formFieldsFromCharacter(*state.Selected)
	}
	s.prevShowAddForm = state.ShowAddForm
	s.prevEditing = state.Editing
	if state.Selected != nil {
		s.prevSelectedID = state.Selected.ID
	}

	s.chart.SetBreakdown(s.summarizer.Summarize(state.Roster))
	s.renderUI(state)
}

var (
	neutralButtonImage = &widget.ButtonImage{
		Idle:    eimage.NewNineSliceColor(color.NRGBA{R: 170, G: 170, B: 180, A: 255}),
		Hover:   eimage.NewNineSliceColor(color.NRGBA{R: 135, G: 135, B: 150, A: 255}),
		Pressed: eimage.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 120, A: 255}),
	}
	positiveButtonImage = &widget.ButtonImage{
		Idle:    eimage.NewNineSliceColor(color.NRGBA{R: 80, G: 170, B: 80, A: 255}),
		Hover:   eimage.NewNineSliceColor(color.NRGBA{R: 65, G: 135, B: 65, A: 255}),
		Pressed: eimage.NewNineSliceColor(color.NRGBA{R: 50, G: 100, B: 50, A: 255}),
	}
	negativeButtonImage = &widget.ButtonImage{
		Idle:    eimage.NewNineSliceColor(color.NRGBA{R: 170, G: 80, B: 80, A: 255}),
		Hover:   eimage.NewNineSliceColor(color.NRGBA{R: 135, G: 65, B: 65, A: 255}),
		Pressed: eimage.NewNineSliceColor(color.NRGBA{R: 100, G: 50, B: 50, A: 255}),
	}

	buttonTextColor = &widget.ButtonTextColor{
		Idle:     color.NRGBA{R: 254, G: 255, B: 255, A: 255},
		Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
	}
	errorTextColor  = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	okTextColor     = color.NRGBA{R: 80, G: 170, B: 80, A: 255}
	normalTextColor = color.NRGBA{R: 254, G: 255, B: 255, A: 255}
)

func (s *RosterScene) newButton(label string, img *widget.ButtonImage, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionStart,
			}),
		),
		widget.ButtonOpts.Image(img),
		widget.ButtonOpts.Text(label, fonts.TTFSmallFont, buttonTextColor),
		widget.ButtonOpts.TextPadding(widget.Insets{
			Left:   15,
			Right:  15,
			Top:    5,
			Bottom: 5,
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (s *RosterScene) newTextInput(placeholder, value string, onChange func(string)) *widget.TextInput {
	input := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionStart,
				Stretch:  true,
			}),
		),
		widget.TextInputOpts.MobileInputMode("text"),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     eimage.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
			Disabled: eimage.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
		}),
		widget.TextInputOpts.Face(fonts.TTFSmallFont),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          normalTextColor,
			Disabled:      color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			Caret:         normalTextColor,
			DisabledCaret: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		}),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(5)),
		widget.TextInputOpts.CaretOpts(
			widget.CaretOpts.Size(fonts.TTFSmallFont, 2),
		),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			onChange(args.InputText)
		}),
	)
	input.SetText(value)
	return input
}

func newText(label string, face bool, clr color.Color) *widget.Text {
	fontFace := fonts.TTFSmallFont
	if face {
		fontFace = fonts.TTFNormalFont
	}
	return widget.NewText(
		widget.TextOpts.Text(label, fontFace, clr),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionStart,
			}),
		),
	)
}

func (s *RosterScene) renderUI(state roster.State) {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:    20,
				Left:   30,
				Right:  30,
				Bottom: 20,
			}))),
	)

	rootContainer.AddChild(s.headerRow(state))

	if state.Loading {
		rootContainer.AddChild(newText("Loading characters...", false, normalTextColor))
	}
	if state.LoadError != "" {
		rootContainer.AddChild(newText(state.LoadError, false, errorTextColor))
	}
	if state.ConnectionError != "" {
		rootContainer.AddChild(newText(state.ConnectionError, false, errorTextColor))
	}

	if state.ShowAddForm {
		rootContainer.AddChild(s.addFormContainer())
	}

	rootContainer.AddChild(s.listContainer(state))

	if state.Selected != nil {
		if state.Editing {
			rootContainer.AddChild(s.editFormContainer())
		} else {
			rootContainer.AddChild(s.detailContainer(*state.Selected))
		}
	}

	for _, n := range state.Notifications {
		rootContainer.AddChild(s.notificationRow(n))
	}

	if s.formErr != "" {
		rootContainer.AddChild(newText(s.formErr, false, errorTextColor))
		s.formErr = ""
	}

	ebitenUI := &ebitenui.UI{
		Container: rootContainer,
	}

	if s.isDeletingCharacter {
		s.addDeleteConfirmation(ebitenUI, state)
	}

	s.ui = ebitenUI
}

func (s *RosterScene) headerRow(state roster.State) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(15),
		)),
	)

	addLabel := "Add Character"
	if state.ShowAddForm {
		addLabel = "Close Form"
	}
	row.AddChild(s.newButton(addLabel, neutralButtonImage, func() {
		s.actions.ToggleAddForm()
	}))

	row.AddChild(s.newButton(fmt.Sprintf("Generate %d", roster.BulkGenerateCount), neutralButtonImage, func() {
		go func() {
			if err := s.actions.BulkGenerate(context.Background()); err != nil {
				log.Error("Failed to bulk generate characters: %v", err)
			}
		}()
	}))

	if state.Generating {
		row.AddChild(s.newButton("Stop Auto-Generation", negativeButtonImage, func() {
			s.sendGenerationCommand(s.channel.StopGeneration)
		}))
	} else {
		row.AddChild(s.newButton("Start Auto-Generation", positiveButtonImage, func() {
			s.sendGenerationCommand(s.channel.StartGeneration)
		}))
	}

	if s.channel.IsConnected() {
		row.AddChild(newText("Connected", false, okTextColor))
	} else {
		row.AddChild(newText("Not connected", false, errorTextColor))
	}

	row.AddChild(newText(fmt.Sprintf("%d characters", len(state.Roster)), false, normalTextColor))

	return row
}

func (s *RosterScene) sendGenerationCommand(send func() error) {
	if err := send(); err != nil {
		log.Error("Failed to send generation command: %v", err)
		if actionableErr, ok := err.(*ui.ActionableError); ok {
			s.formErr = actionableErr.Message
		} else {
			s.formErr = "Not connected to the server"
		}
		s.markDirty()
	}
}

func (s *RosterScene) listContainer(state roster.State) *widget.Container {
	list := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)

	// the roster can grow into the thousands with auto-generation on;
	// only a screenful of entries is rendered
	const maxVisible = 12
	visible := state.Roster
	if len(visible) > maxVisible {
		visible = visible[len(visible)-maxVisible:]
	}

	for _, character := range visible {
		character := character
		label := fmt.Sprintf("#%d %s", character.ID, character.Name)
		img := neutralButtonImage
		if state.Selected != nil && state.Selected.ID == character.ID {
			img = positiveButtonImage
		}
		list.AddChild(s.newButton(label, img, func() {
			s.actions.Select(character)
		}))
	}

	return list
}

func (s *RosterScene) detailContainer(selected characters.Character) *widget.Container {
	detail := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	detail.AddChild(newText(selected.Name, true, normalTextColor))
	detail.AddChild(newText(fmt.Sprintf("HP %d   Damage %d   Speed %d   Armor %d", selected.HP, selected.Damage, selected.Speed, selected.Armor), false, normalTextColor))

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(15),
		)),
	)
	buttons.AddChild(s.newButton("Edit", neutralButtonImage, func() {
		s.actions.StartEdit()
	}))
	buttons.AddChild(s.newButton("Delete", negativeButtonImage, func() {
		s.isDeletingCharacter = true
		s.deletingCharacterID = selected.ID
		s.markDirty()
	}))
	detail.AddChild(buttons)

	return detail
}

func (s *RosterScene) addFormContainer() *widget.Container {
	return s.formContainer("Create", &s.addForm, func(input roster.FormInput) {
		go func() {
			if err := s.actions.SubmitAdd(context.Background(), input); err != nil {
				log.Error("Failed to create character: %v", err)
			}
		}()
	})
}

func (s *RosterScene) editFormContainer() *widget.Container {
	form := s.formContainer("Save", &s.editForm, func(input roster.FormInput) {
		go func() {
			if err := s.actions.SaveEdit(context.Background(), input); err != nil {
				log.Error("Failed to save character: %v", err)
			}
		}()
	})
	form.AddChild(s.newButton("Cancel", neutralButtonImage, func() {
		s.actions.CancelEdit()
	}))
	return form
}

func (s *RosterScene) formContainer(submitLabel string, fields *formFields, submit func(input roster.FormInput)) *widget.Container {
	form := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	form.AddChild(s.newTextInput("Name", fields.name, func(v string) { fields.name = v }))
	form.AddChild(s.newTextInput("HP", fields.hp, func(v string) { fields.hp = v }))
	form.AddChild(s.newTextInput("Damage", fields.damage, func(v string) { fields.damage = v }))
	form.AddChild(s.newTextInput("Speed", fields.speed, func(v string) { fields.speed = v }))
	form.AddChild(s.newTextInput("Armor", fields.armor, func(v string) { fields.armor = v }))

	form.AddChild(s.newButton(submitLabel, positiveButtonImage, func() {
		if fields.name == "" {
			s.formErr = "Name is required"
			s.markDirty()
			return
		}
		submit(fields.input())
	}))

	return form
}

func (s *RosterScene) notificationRow(n roster.Notification) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
		)),
	)
	row.AddChild(newText(n.Text, false, errorTextColor))
	row.AddChild(s.newButton("Dismiss", neutralButtonImage, func() {
		s.store.Dismiss(n.ID)
	}))
	return row
}

func (s *RosterScene) addDeleteConfirmation(ebitenUI *ebitenui.UI, state roster.State) {
	windowContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(eimage.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	confirmContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(20),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:    36,
				Left:   24,
				Right:  24,
				Bottom: 72,
			}),
		)),
	)

	confirmContainer.AddChild(widget.NewText(
		widget.TextOpts.Text("Are you sure?", fonts.TTFNormalFont, normalTextColor),
	))

	deletingID := s.deletingCharacterID
	confirmContainer.AddChild(s.newButton("Yes", negativeButtonImage, func() {
		s.isDeletingCharacter = false
		go func() {
			if err := s.actions.Delete(context.Background(), deletingID); err != nil {
				log.Error("Failed to delete character: %v", err)
			}
		}()
		s.markDirty()
	}))

	confirmContainer.AddChild(s.newButton("No", neutralButtonImage, func() {
		s.isDeletingCharacter = false
		s.markDirty()
	}))

	windowContainer.AddChild(confirmContainer)

	deletingName := ""
	for _, character := range state.Roster {
		if character.ID == s.deletingCharacterID {
			deletingName = character.Name
			break
		}
	}

	titleContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(eimage.NewNineSliceColor(color.NRGBA{R: 150, G: 150, B: 150, A: 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	titleContainer.AddChild(widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("Delete %s", deletingName), fonts.TTFNormalFont, normalTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	))

	window := widget.NewWindow(
		widget.WindowOpts.Contents(windowContainer),
		widget.WindowOpts.TitleBar(titleContainer, 48),
		widget.WindowOpts.Modal(),
		widget.WindowOpts.CloseMode(widget.CLICK_OUT),
		widget.WindowOpts.ClosedHandler(func(args *widget.WindowClosedEventArgs) {
			s.isDeletingCharacter = false
			s.markDirty()
		}),
	)

	x, y := window.Contents.PreferredSize()
	r := image.Rect(0, 0, x, y)
	r = r.Add(image.Point{X: 300, Y: 200})
	window.SetLocation(r)
	ebitenUI.AddWindow(window)
}
