// Package world builds the settlement scene from a level and drives the
// mosquito simulation over it.
//
// A World owns one moka.Scene whose root holds a fixed set of layer
// containers (see Layer). Build populates the layers once; afterwards the
// host only calls Update, Draw and HandleEvent each frame and Dispose at
// teardown.
package world

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/moka"

	"github.com/phanxgames/moka/config"
	"github.com/phanxgames/moka/level"
)

// Options configures New.
type Options struct {
	Level      *level.Level
	Simulation config.Simulation
	// ViewWidth and ViewHeight size the camera in pixels.
	ViewWidth  float64
	ViewHeight float64
	Services   Services
}

// World is a built settlement.
type World struct {
	level  *level.Level
	cfg    config.Simulation
	svc    Services
	logger *slog.Logger
	run    uuid.UUID

	scene     *moka.Scene
	layers    layerSlots
	camera    *moka.Camera
	hero      moka.Handle
	adjacency *Adjacency
	sim       *Simulation
	darkness  *Darkness

	houses     []*House
	mosquitoes []*Mosquito
	panels     map[string]*Panel
	selected   *Interactive
	daylight   Daylight
	chat       string
	disposed   bool
}

// New builds a world. The returned error reports level data the world
// cannot run on, such as a door that belongs to no house.
func New(opts Options) (*World, error) {
	if opts.Level == nil {
		return nil, fmt.Errorf("world: nil level")
	}
	svc := opts.Services.withDefaults()
	run := uuid.New()
	w := &World{
		level:    opts.Level,
		cfg:      opts.Simulation,
		svc:      svc,
		logger:   svc.Logger.With("run", run.String()),
		run:      run,
		scene:    moka.NewScene(),
		camera:   moka.NewCamera(opts.ViewWidth, opts.ViewHeight),
		panels:   make(map[string]*Panel, len(panelOrder)),
		daylight: Daylight{hours: opts.Simulation.DaylightHours, total: opts.Simulation.DaylightHours},
	}
	w.scene.SetLogger(w.logger)
	w.camera.SetBounds(opts.Level.Bounds())

	if err := w.build(); err != nil {
		w.scene.Dispose()
		return nil, err
	}
	w.chat = svc.Strings.String("greeting")
	w.followHero()
	return w, nil
}

// build populates the layers. The order of the steps matters: the
// adjacency index is derived from the selection layers, so it is built only
// after every interactive object is attached.
func (w *World) build() error {
	root := w.scene.Root()
	for l := Layer(0); l < layerCount; l++ {
		n := moka.NewContainer(l.String())
		root.AddChild(n)
		w.layers.assign(l, n)
	}

	bounds := w.level.Bounds()
	pixel := w.svc.Textures.Texture(TexturePixel)

	buildBackground(w.layers.node(LayerBackground), w.level, w.svc.Textures)
	w.darkness = newDarkness(bounds, w.svc.Textures)
	w.layers.node(LayerSky).AddChild(w.darkness.node)

	if err := w.buildInteractive(pixel); err != nil {
		return err
	}
	w.buildMosquitoes(bounds)

	ui := w.layers.node(LayerUI)
	for _, typ := range panelOrder {
		p := newPanel(typ, pixel, w.svc.Font)
		w.panels[typ] = p
		ui.AddChild(p.node)
	}

	hero := newHero(bounds, w.cfg.HeroSpeed, w.svc)
	w.layers.node(LayerCamera).AddChild(hero.node)
	w.hero = hero.node.Handle()

	adj, err := BuildAdjacency(
		w.layers.node(LayerDoorSelection),
		w.layers.node(LayerWindowSelection),
		w.layers.node(LayerHouseSelection),
	)
	if err != nil {
		return err
	}
	w.adjacency = adj
	w.sim = newSimulation(w.cfg.EvaluationInterval, float64(w.level.TileHeight), &w.layers, adj, w.svc.Events, w.logger, w.run)

	w.logger.Info("world built",
		"doors", adj.Doors(), "windows", adj.Windows(), "houses", len(w.houses),
		"mosquitoes", len(w.mosquitoes), "prevention", len(w.level.Prevention.Objects()))
	return nil
}

func (w *World) buildInteractive(pixel *ebiten.Image) error {
	update := w.layers.node(LayerUpdate)
	objs := &w.level.Interactive
	for i := 0; i < objs.Len(); i++ {
		obj := objs.At(i)
		spec, known := panelSpecs[obj.Type]
		if !known {
			w.logger.Warn("skipping interactive object of unknown type", "name", obj.Name, "type", obj.Type)
			continue
		}

		var attached []moka.Rect
		if obj.Type == level.TypeClinic || obj.Type == level.TypeHouse {
			attached = objs.AttachedRects(obj.Name)
		}
		var (
			kind  selectable
			layer Layer
			house *House
		)
		switch obj.Type {
		case level.TypeBarrel:
			kind, layer = &Barrel{}, LayerSelection
		case level.TypeDoor:
			kind, layer = &Door{}, LayerDoorSelection
		case level.TypeWindow:
			kind, layer = &Window{}, LayerWindowSelection
		case level.TypeClinic:
			kind, layer = &Clinic{}, LayerSelection
		case level.TypeHouse:
			house = &House{}
			kind, layer = house, LayerHouseSelection
			w.houses = append(w.houses, house)
		default:
			return fmt.Errorf("world: object %q: no handler for type %q", obj.Name, obj.Type)
		}
		base := kind.interactive()
		base.init(obj, attached, len(spec.options), pixel)
		base.node.UserData = kind

		update.AddChild(newUpdateNode(obj, base, house, w.svc.Textures))
		w.layers.node(layer).AddChild(base.node)
	}
	return nil
}

func (w *World) buildMosquitoes(bounds moka.Rect) {
	spawns := spawnPositions(&w.level.Interactive, float64(w.level.TileWidth), float64(w.level.TileHeight))
	layer := w.layers.node(LayerMosquitoes)
	houses := w.layers[LayerHouseSelection]
	for i := 0; i < w.cfg.Population; i++ {
		spawn := spawns[w.svc.Rand.IntN(len(spawns))]
		m := newMosquito(i, spawn, w.cfg.MosquitoSize, w.cfg.MosquitoSpeed, bounds, houses, w.svc)
		layer.AddChild(m.node)
		w.mosquitoes = append(w.mosquitoes, m)
	}
}

// spawnPositions returns the top-left corner of every tile of the group.
func spawnPositions(g *level.InteractiveGroup, tileW, tileH float64) []moka.Vec2 {
	spawns := make([]moka.Vec2, 0, g.Width*g.Height)
	for col := 0; col < g.Width; col++ {
		for row := 0; row < g.Height; row++ {
			spawns = append(spawns, moka.Vec2{X: float64(col) * tileW, Y: float64(row) * tileH})
		}
	}
	return spawns
}

// Update advances one frame: the scene update pass, the camera, then the
// gated simulation step.
func (w *World) Update(dt float64) {
	w.mustAlive("Update")
	w.scene.Update(dt)
	w.followHero()
	w.camera.Update(dt)
	w.sim.Advance(dt)
}

// Draw renders the scene through the camera.
func (w *World) Draw(target moka.DrawTarget) {
	w.mustAlive("Draw")
	w.scene.Draw(target, w.camera.ViewMatrix())
}

// HandleEvent reacts to a host signal.
func (w *World) HandleEvent(e Event) {
	w.mustAlive("HandleEvent")
	switch e.Type {
	case EventFullscreen, EventWindowed:
		w.camera.SetSize(e.Width, e.Height)
		w.followHero()
	case EventBeginSimulation:
		w.sim.Begin()
		w.darkness.fall()
		w.chat = w.svc.Strings.String("beginSimulation")
	case EventSelect:
		w.selectAt(e.X, e.Y)
	case EventOption:
		w.applyOption(e.Index)
	case EventUndo:
		w.undoOption(e.Index)
	default:
		w.logger.Warn("unhandled event", "type", e.Type.String())
	}
}

// Dispose tears the scene down. Every handle into it, including the layer
// slots, the adjacency index and the hero, becomes stale.
func (w *World) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true
	w.selected = nil
	w.scene.Dispose()
	w.logger.Info("world disposed")
}

func (w *World) mustAlive(op string) {
	if w.disposed {
		panic("world: " + op + " on disposed world")
	}
}

func (w *World) followHero() {
	if n, ok := w.hero.Node(); ok {
		c := n.BoundingRect().Center()
		w.camera.Follow(c.X, c.Y)
	}
}

// selectAt routes a click. A click on the open panel activates the element
// under it; otherwise the object under the cursor becomes the selection.
func (w *World) selectAt(x, y float64) {
	if w.selected != nil {
		p := w.panels[w.selected.Object.Type]
		if i, ok := p.elementAt(x, y); ok {
			if w.selected.applied[i] {
				w.undoOption(i)
			} else {
				w.applyOption(i)
			}
			return
		}
	}

	var hit *Interactive
	for _, l := range []Layer{LayerDoorSelection, LayerWindowSelection, LayerSelection, LayerHouseSelection} {
		for _, n := range w.layers.node(l).Children() {
			if in := interactiveOf(n); in.Hit(x, y) {
				hit = in
				break
			}
		}
		if hit != nil {
			break
		}
	}
	if hit == w.selected {
		return
	}
	if w.selected != nil {
		w.selected.selected = false
		w.panels[w.selected.Object.Type].hide()
	}
	w.selected = hit
	if hit == nil {
		return
	}
	hit.selected = true
	w.panels[hit.Object.Type].show(hit)
	w.svc.Sounds.Play(SoundButton)
	w.chat = w.svc.Strings.String("inspect" + hit.Object.Type)
}

func (w *World) applyOption(i int) {
	in := w.selected
	if in == nil || i < 0 || i >= len(in.applied) || in.applied[i] {
		return
	}
	if !w.daylight.spend() {
		w.chat = w.svc.Strings.String("daylightUI")
		return
	}
	in.applied[i] = true
	w.svc.Sounds.Play(SoundButton)
	w.logger.Debug("prevention applied", "object", in.Object.Name, "option", w.panels[in.Object.Type].spec.options[i].Label)
}

func (w *World) undoOption(i int) {
	in := w.selected
	if in == nil || i < 0 || i >= len(in.applied) || !in.applied[i] {
		return
	}
	in.applied[i] = false
	w.daylight.refund()
	w.svc.Sounds.Play(SoundButton)
	w.logger.Debug("prevention undone", "object", in.Object.Name, "option", w.panels[in.Object.Type].spec.options[i].Label)
}

// Layer returns the container of layer l.
func (w *World) Layer(l Layer) *moka.Node { return w.layers.node(l) }

// LayerHandle returns the non-owning handle held in slot l.
func (w *World) LayerHandle(l Layer) moka.Handle { return w.layers[l] }

// Scene returns the underlying scene.
func (w *World) Scene() *moka.Scene { return w.scene }

// Camera returns the world camera.
func (w *World) Camera() *moka.Camera { return w.camera }

// Hero returns the player's avatar, or false after teardown.
func (w *World) Hero() (*Hero, bool) {
	n, ok := w.hero.Node()
	if !ok {
		return nil, false
	}
	return n.UserData.(*Hero), true
}

// HeroHandle returns the non-owning reference to the hero node.
func (w *World) HeroHandle() moka.Handle { return w.hero }

// Adjacency returns the door/window to house index.
func (w *World) Adjacency() *Adjacency { return w.adjacency }

// Simulation returns the simulation driver.
func (w *World) Simulation() *Simulation { return w.sim }

// Houses returns every house in catalog order.
func (w *World) Houses() []*House { return w.houses }

// Mosquitoes returns the population in spawn order.
func (w *World) Mosquitoes() []*Mosquito { return w.mosquitoes }

// Panel returns the UI panel of an interactive type.
func (w *World) Panel(typ string) (*Panel, bool) {
	p, ok := w.panels[typ]
	return p, ok
}

// Selected returns the selected object, or nil.
func (w *World) Selected() *Interactive { return w.selected }

// Darkness returns the night overlay.
func (w *World) Darkness() *Darkness { return w.darkness }

// Daylight returns the daylight clock.
func (w *World) Daylight() *Daylight { return &w.daylight }

// ChatText returns the message currently shown to the player.
func (w *World) ChatText() string { return w.chat }

// RunID identifies this world in logs and transition events.
func (w *World) RunID() uuid.UUID { return w.run }

// Stats returns the tracker snapshot.
func (w *World) Stats() Stats {
	indoor := 0
	for _, m := range w.mosquitoes {
		if m.indoor {
			indoor++
		}
	}
	return Stats{
		Mosquitoes: len(w.mosquitoes),
		Residents:  w.cfg.Residents,
		Indoor:     indoor,
		Outdoor:    len(w.mosquitoes) - indoor,
		Daylight:   w.daylight.hours,
		Passes:     w.sim.passes,
	}
}
