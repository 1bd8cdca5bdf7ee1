package main

import (
	"encoding/binary"
	"fmt"
	"image/color"
	_ "image/png"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"

	"github.com/phanxgames/moka"
	"github.com/phanxgames/moka/config"
	"github.com/phanxgames/moka/world"
)

const sampleRate = 44100

// textures serves flat-coloured placeholder images, one per texture name.
type textures struct {
	images map[string]*ebiten.Image
}

func newTextures() *textures {
	palette := map[string]color.Color{
		world.TexturePixel:                       colornames.White,
		world.TextureGround:                      colornames.Darkolivegreen,
		world.TextureBarrel:                      colornames.Steelblue,
		world.TextureBarrelCovered:               colornames.Slategray,
		world.TextureDoor:                        colornames.Saddlebrown,
		world.TextureDoorClosed:                  colornames.Maroon,
		world.TextureWindow:                      colornames.Lightskyblue,
		world.TextureWindowScreened:              colornames.Lightgray,
		world.TextureWindowClosed:                colornames.Dimgray,
		world.TextureClinic:                      colornames.Whitesmoke,
		world.TextureHouseShade:                  colornames.White,
		world.TextureMosquito:                    colornames.Black,
		world.TextureHero:                        colornames.Orange,
		world.PreventionTexture("StandingWater"): colornames.Teal,
		world.PreventionTexture("Tire"):          colornames.Darkslategray,
	}
	t := &textures{images: make(map[string]*ebiten.Image, len(palette))}
	for name, c := range palette {
		img := ebiten.NewImage(1, 1)
		img.Fill(c)
		t.images[name] = img
	}
	return t
}

func (t *textures) Texture(name string) *ebiten.Image {
	return t.images[name]
}

// atlasTextures serves atlas regions and falls back to the placeholders for
// names the atlas lacks.
type atlasTextures struct {
	atlas    *moka.Atlas
	fallback *textures
}

func (t atlasTextures) Texture(name string) *ebiten.Image {
	if _, ok := t.atlas.Region(name); ok {
		if img := t.atlas.Texture(name); img != nil {
			return img
		}
	}
	return t.fallback.Texture(name)
}

func loadTextures(cfg config.Atlas) (world.TextureSource, error) {
	placeholders := newTextures()
	if cfg.Data == "" {
		return placeholders, nil
	}
	data, err := os.ReadFile(cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	pages := make([]*ebiten.Image, 0, len(cfg.Pages))
	for _, path := range cfg.Pages {
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("atlas page %s: %w", path, err)
		}
		pages = append(pages, img)
	}
	atlas, err := moka.LoadAtlas(data, pages)
	if err != nil {
		return nil, err
	}
	return atlasTextures{atlas: atlas, fallback: placeholders}, nil
}

// sounds plays a generated click for every sound id.
type sounds struct {
	player *audio.Player
}

func newSounds() *sounds {
	ctx := audio.NewContext(sampleRate)
	return &sounds{player: ctx.NewPlayerFromBytes(beep(880, 0.06))}
}

func (s *sounds) Play(string) {
	if err := s.player.Rewind(); err != nil {
		return
	}
	s.player.Play()
}

// beep returns a short sine tone as 16-bit little-endian stereo PCM.
func beep(freq, seconds float64) []byte {
	n := int(sampleRate * seconds)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/sampleRate) * fade * 0.3 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// keyboard reports arrow key and WASD movement.
type keyboard struct{}

func (keyboard) Direction() (dx, dy float64) {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy++
	}
	return dx, dy
}
