package world

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=./mocks/services_mock.go -package=mocks . SoundPlayer,Localizer

import (
	"log/slog"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/moka"
)

// Texture names requested from a TextureSource.
const (
	TextureGround         = "map/ground"
	TextureHouses         = "map/houses"
	TextureRoofs          = "map/roofs"
	TexturePixel          = "pixel"
	TextureBarrel         = "barrel"
	TextureBarrelCovered  = "barrel-covered"
	TextureDoor           = "door"
	TextureDoorClosed     = "door-closed"
	TextureWindow         = "window"
	TextureWindowScreened = "window-screened"
	TextureWindowClosed   = "window-closed"
	TextureClinic         = "clinic"
	TextureHouseShade     = "house-shade"
	TextureMosquito       = "mosquito"
	TextureHero           = "hero"
)

// PreventionTexture returns the texture name for a prevention object type.
func PreventionTexture(typ string) string {
	return "prevention/" + typ
}

// SoundButton is played when an object or a panel element is clicked.
const SoundButton = "button"

// TextureSource supplies images by name. A nil image means "draw nothing".
type TextureSource interface {
	Texture(name string) *ebiten.Image
}

// SoundPlayer plays sounds by identifier.
type SoundPlayer interface {
	Play(id string)
}

// Localizer resolves a message id to display text. *locale.Catalog
// satisfies it.
type Localizer interface {
	String(id string) string
}

// Controls reports the player's requested movement. Each component is in
// [-1, 1].
type Controls interface {
	Direction() (dx, dy float64)
}

// EventSink receives one event per mosquito transition.
type EventSink interface {
	PublishTransition(e TransitionEvent)
}

// Services bundles the collaborators a World consumes. Every field is
// optional; nil fields fall back to inert implementations. Without a Font,
// panels draw their elements but no labels.
type Services struct {
	Textures TextureSource
	Font     *moka.Font
	Sounds   SoundPlayer
	Strings  Localizer
	Controls Controls
	Events   EventSink
	Rand     *rand.Rand
	Logger   *slog.Logger
}

type nopTextures struct{}

func (nopTextures) Texture(string) *ebiten.Image { return nil }

type nopSounds struct{}

func (nopSounds) Play(string) {}

type idStrings struct{}

func (idStrings) String(id string) string { return id }

type stillControls struct{}

func (stillControls) Direction() (float64, float64) { return 0, 0 }

type nopEvents struct{}

func (nopEvents) PublishTransition(TransitionEvent) {}

func (s Services) withDefaults() Services {
	if s.Textures == nil {
		s.Textures = nopTextures{}
	}
	if s.Sounds == nil {
		s.Sounds = nopSounds{}
	}
	if s.Strings == nil {
		s.Strings = idStrings{}
	}
	if s.Controls == nil {
		s.Controls = stillControls{}
	}
	if s.Events == nil {
		s.Events = nopEvents{}
	}
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	return s
}
