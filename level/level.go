// Package level holds the settlement's static catalogs: the interactive
// objects the player can inspect (barrels, doors, windows, clinics, houses)
// and the non-interactive prevention geometry. Catalogs are immutable once
// loaded; scene nodes keep pointers into them and must not modify them.
package level

import (
	"errors"
	"fmt"

	"github.com/phanxgames/moka"
)

// Interactive object type tags as they appear in level data.
const (
	TypeBarrel = "Barrel"
	TypeDoor   = "Door"
	TypeWindow = "Window"
	TypeClinic = "Clinic"
	TypeHouse  = "House"
)

// Object group names.
const (
	InteractiveGroupName = "Interactive"
	PreventionGroupName  = "Prevention"
)

var (
	// ErrMissingField reports a required attribute absent from level data.
	ErrMissingField = errors.New("missing required field")
	// ErrDuplicateName reports two interactive objects sharing a name.
	ErrDuplicateName = errors.New("duplicate object name")
	// ErrUnknownAttachment reports an attachedTo that names no object.
	ErrUnknownAttachment = errors.New("attached to unknown object")
	// ErrInvalidGeometry reports a non-positive size.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrMissingGroup reports a level without a required object group.
	ErrMissingGroup = errors.New("missing object group")
)

// InteractiveObject is one selectable entity of the settlement.
type InteractiveObject struct {
	Name       string
	Type       string
	AttachedTo string
	X, Y       int
	Width      int
	Height     int
}

// Rect returns the object's rectangle in world pixels.
func (o *InteractiveObject) Rect() moka.Rect {
	return moka.Rect{X: float64(o.X), Y: float64(o.Y), Width: float64(o.Width), Height: float64(o.Height)}
}

// InteractiveGroup is the catalog of interactive objects. Width and Height
// are the group's extent in tiles.
type InteractiveGroup struct {
	Name    string
	Width   int
	Height  int
	objects []InteractiveObject
}

// Objects returns the catalog entries in load order. The returned slice MUST
// NOT be mutated by the caller.
func (g *InteractiveGroup) Objects() []InteractiveObject {
	return g.objects
}

// Len returns the number of interactive objects.
func (g *InteractiveGroup) Len() int {
	return len(g.objects)
}

// At returns a read-only pointer to the i-th object.
func (g *InteractiveGroup) At(i int) *InteractiveObject {
	return &g.objects[i]
}

// Find returns the object with the given name.
func (g *InteractiveGroup) Find(name string) (*InteractiveObject, bool) {
	for i := range g.objects {
		if g.objects[i].Name == name {
			return &g.objects[i], true
		}
	}
	return nil, false
}

// AttachedRects returns the rectangles of every object attached to the
// object named owner, in catalog order.
func (g *InteractiveGroup) AttachedRects(owner string) []moka.Rect {
	var rects []moka.Rect
	for i := range g.objects {
		if g.objects[i].AttachedTo == owner {
			rects = append(rects, g.objects[i].Rect())
		}
	}
	return rects
}

// CountType returns how many objects carry the given type tag.
func (g *InteractiveGroup) CountType(typ string) int {
	n := 0
	for i := range g.objects {
		if g.objects[i].Type == typ {
			n++
		}
	}
	return n
}

// PreventionObject is decorative, non-interactive geometry.
type PreventionObject struct {
	Name   string
	Type   string
	X, Y   int
	Width  int
	Height int
}

// Rect returns the object's rectangle in world pixels.
func (o *PreventionObject) Rect() moka.Rect {
	return moka.Rect{X: float64(o.X), Y: float64(o.Y), Width: float64(o.Width), Height: float64(o.Height)}
}

// PreventionGroup is the catalog of prevention geometry.
type PreventionGroup struct {
	Name    string
	Width   int
	Height  int
	objects []PreventionObject
}

// Objects returns the prevention entries in load order. The returned slice
// MUST NOT be mutated by the caller.
func (g *PreventionGroup) Objects() []PreventionObject {
	return g.objects
}

// Level is a loaded settlement: map dimensions plus both catalogs.
type Level struct {
	// Map size in tiles and tile size in pixels.
	Width, Height         int
	TileWidth, TileHeight int

	Interactive InteractiveGroup
	Prevention  PreventionGroup
}

// New assembles a Level from already-parsed parts and validates it.
func New(width, height, tileWidth, tileHeight int, interactive []InteractiveObject, prevention []PreventionObject) (*Level, error) {
	l := &Level{
		Width:      width,
		Height:     height,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Interactive: InteractiveGroup{
			Name:    InteractiveGroupName,
			Width:   width,
			Height:  height,
			objects: append([]InteractiveObject(nil), interactive...),
		},
		Prevention: PreventionGroup{
			Name:    PreventionGroupName,
			Width:   width,
			Height:  height,
			objects: append([]PreventionObject(nil), prevention...),
		},
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Bounds returns the world rectangle in pixels.
func (l *Level) Bounds() moka.Rect {
	return moka.Rect{
		Width:  float64(l.Width * l.TileWidth),
		Height: float64(l.Height * l.TileHeight),
	}
}

// Validate checks the structural rules every level must satisfy.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 || l.TileWidth <= 0 || l.TileHeight <= 0 {
		return fmt.Errorf("level: map %dx%d tiles of %dx%d: %w",
			l.Width, l.Height, l.TileWidth, l.TileHeight, ErrInvalidGeometry)
	}

	seen := make(map[string]struct{}, len(l.Interactive.objects))
	for i := range l.Interactive.objects {
		o := &l.Interactive.objects[i]
		if o.Name == "" {
			return fmt.Errorf("level: interactive object %d: name: %w", i, ErrMissingField)
		}
		if o.Type == "" {
			return fmt.Errorf("level: interactive object %q: type: %w", o.Name, ErrMissingField)
		}
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("level: interactive object %q: size %dx%d: %w", o.Name, o.Width, o.Height, ErrInvalidGeometry)
		}
		if _, dup := seen[o.Name]; dup {
			return fmt.Errorf("level: interactive object %q: %w", o.Name, ErrDuplicateName)
		}
		seen[o.Name] = struct{}{}
	}
	for i := range l.Interactive.objects {
		o := &l.Interactive.objects[i]
		if o.AttachedTo == "" {
			continue
		}
		if _, ok := seen[o.AttachedTo]; !ok || o.AttachedTo == o.Name {
			return fmt.Errorf("level: interactive object %q attached to %q: %w", o.Name, o.AttachedTo, ErrUnknownAttachment)
		}
	}

	for i := range l.Prevention.objects {
		o := &l.Prevention.objects[i]
		if o.Name == "" {
			return fmt.Errorf("level: prevention object %d: name: %w", i, ErrMissingField)
		}
		if o.Type == "" {
			return fmt.Errorf("level: prevention object %q: type: %w", o.Name, ErrMissingField)
		}
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("level: prevention object %q: size %dx%d: %w", o.Name, o.Width, o.Height, ErrInvalidGeometry)
		}
	}
	return nil
}
