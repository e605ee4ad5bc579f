package objects

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GameObject is the highest level interface for scene graph types.
type GameObject interface {
	Lifecycle

	GetID() string
	GetChildren() []GameObject
	AddChild(child GameObject)
	RemoveChild(id string)
}

// BaseObject provides identity and child management for scene graph nodes.
type BaseObject struct {
	id       string
	children []GameObject
}

func NewBaseObject(id string) *BaseObject {
	return &BaseObject{
		id: id,
	}
}

func (o *BaseObject) GetID() string {
	return o.id
}

func (o *BaseObject) GetChildren() []GameObject {
	return o.children
}

func (o *BaseObject) AddChild(child GameObject) {
	o.children = append(o.children, child)
}

func (o *BaseObject) RemoveChild(id string) {
	for i, child := range o.children {
		if child.GetID() == id {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

func (o *BaseObject) Init() error {
	return nil
}

func (o *BaseObject) Destroy() error {
	return nil
}

func (o *BaseObject) Update() error {
	return nil
}

func (o *BaseObject) Draw(screen *ebiten.Image) {
}

// InitTree initializes an object and all of its children depth-first.
func InitTree(o GameObject) error {
	if err := o.Init(); err != nil {
		return err
	}
	for _, child := range o.GetChildren() {
		if err := InitTree(child); err != nil {
			return err
		}
	}
	return nil
}

// DestroyTree destroys children before their parents.
func DestroyTree(o GameObject) error {
	for _, child := range o.GetChildren() {
		if err := DestroyTree(child); err != nil {
			return err
		}
	}
	return o.Destroy()
}

// UpdateTree updates an object and all of its children depth-first.
func UpdateTree(o GameObject) error {
	if err := o.Update(); err != nil {
		return err
	}
	for _, child := range o.GetChildren() {
		if err := UpdateTree(child); err != nil {
			return err
		}
	}
	return nil
}

// DrawTree draws an object and all of its children depth-first.
func DrawTree(o GameObject, screen *ebiten.Image) {
	o.Draw(screen)
	for _, child := range o.GetChildren() {
		DrawTree(child, screen)
	}
}
