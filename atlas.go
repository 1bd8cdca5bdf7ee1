package moka

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrAtlasFormat reports atlas JSON that is neither the TexturePacker hash
// nor array format.
var ErrAtlasFormat = errors.New("atlas JSON has neither \"frames\" nor \"textures\" key")

// Region describes a named sub-rectangle within an atlas page.
type Region struct {
	Page          int
	X, Y          int
	Width, Height int
	Rotated       bool
}

// Rect returns the region's pixel rectangle within its page.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Atlas holds one or more atlas page images and a map of named regions. It
// serves textures by name, so it can back the settlement's texture source.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages   []*ebiten.Image
	regions map[string]Region
	subs    map[string]*ebiten.Image
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("moka: parse atlas: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]Region),
		subs:    make(map[string]*ebiten.Image),
	}

	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("moka: parse atlas textures: %w", err)
		}
		for i, tex := range textures {
			for name, f := range tex.Frames {
				atlas.regions[name] = f.region(i)
			}
		}
	case probe.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("moka: parse atlas frames: %w", err)
		}
		for name, f := range frames {
			atlas.regions[name] = f.region(0)
		}
	default:
		return nil, fmt.Errorf("moka: %w", ErrAtlasFormat)
	}
	return atlas, nil
}

// Region returns the named region.
func (a *Atlas) Region(name string) (Region, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Names returns every region name in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for name := range a.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Texture returns the named region as a sub-image of its page, or nil when
// the region or its page is missing. Rotated regions are returned as stored.
func (a *Atlas) Texture(name string) *ebiten.Image {
	if img, ok := a.subs[name]; ok {
		return img
	}
	r, ok := a.regions[name]
	if !ok {
		if globalDebug {
			debugLogger.Warn("moka: atlas region not found", "name", name)
		}
		return nil
	}
	if r.Page >= len(a.Pages) || a.Pages[r.Page] == nil {
		debugLogger.Warn("moka: atlas page missing", "name", name, "page", r.Page)
		return nil
	}
	img := a.Pages[r.Page].SubImage(r.Rect()).(*ebiten.Image)
	a.subs[name] = img
	return img
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

func (f jsonFrame) region(page int) Region {
	return Region{
		Page:    page,
		X:       f.Frame.X,
		Y:       f.Frame.Y,
		Width:   f.Frame.W,
		Height:  f.Frame.H,
		Rotated: f.Rotated,
	}
}
