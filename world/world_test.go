package world_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/moka"

	"github.com/phanxgames/moka/config"
	"github.com/phanxgames/moka/level"
	"github.com/phanxgames/moka/world"
)

// testObjects is a settlement with two houses, three doors and two windows.
// house-a's anchor is clear of its door and window.
func testObjects() []level.InteractiveObject {
	return []level.InteractiveObject{
		{Name: "house-a", Type: level.TypeHouse, X: 0, Y: 0, Width: 256, Height: 256},
		{Name: "door-a", Type: level.TypeDoor, AttachedTo: "house-a", X: 64, Y: 192, Width: 64, Height: 64},
		{Name: "window-a", Type: level.TypeWindow, AttachedTo: "house-a", X: 192, Y: 0, Width: 64, Height: 64},
		{Name: "house-b", Type: level.TypeHouse, X: 512, Y: 0, Width: 256, Height: 256},
		{Name: "door-b1", Type: level.TypeDoor, AttachedTo: "house-b", X: 576, Y: 192, Width: 64, Height: 64},
		{Name: "door-b2", Type: level.TypeDoor, AttachedTo: "house-b", X: 512, Y: 64, Width: 64, Height: 64},
		{Name: "window-b", Type: level.TypeWindow, AttachedTo: "house-b", X: 704, Y: 0, Width: 64, Height: 64},
		{Name: "barrel", Type: level.TypeBarrel, X: 1024, Y: 512, Width: 64, Height: 64},
		{Name: "clinic", Type: level.TypeClinic, X: 1024, Y: 0, Width: 192, Height: 128},
	}
}

func testLevel(t *testing.T, objs []level.InteractiveObject) *level.Level {
	t.Helper()
	prevention := []level.PreventionObject{{Name: "puddle", Type: "StandingWater", X: 320, Y: 640, Width: 64, Height: 64}}
	l, err := level.New(20, 15, 64, 64, objs, prevention)
	if err != nil {
		t.Fatalf("level.New: %v", err)
	}
	return l
}

func testSimulation(population int) config.Simulation {
	return config.Simulation{
		Population:         population,
		Residents:          30,
		EvaluationInterval: 1,
		MosquitoSize:       16,
		HeroSpeed:          240,
		DaylightHours:      12,
	}
}

type recordingSink struct {
	events []world.TransitionEvent
}

func (r *recordingSink) PublishTransition(e world.TransitionEvent) {
	r.events = append(r.events, e)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorld(t *testing.T, sim config.Simulation, svc world.Services) *world.World {
	t.Helper()
	if svc.Logger == nil {
		svc.Logger = quietLogger()
	}
	if svc.Rand == nil {
		svc.Rand = rand.New(rand.NewPCG(1, 2))
	}
	w, err := world.New(world.Options{
		Level:      testLevel(t, testObjects()),
		Simulation: sim,
		ViewWidth:  640,
		ViewHeight: 480,
		Services:   svc,
	})
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	t.Cleanup(w.Dispose)
	return w
}

func findChild(t *testing.T, layer *moka.Node, name string) *moka.Node {
	t.Helper()
	for _, n := range layer.Children() {
		if n.Name == name {
			return n
		}
	}
	t.Fatalf("%s has no child %q", layer.Name, name)
	return nil
}

func houseNamed(t *testing.T, w *world.World, name string) *world.House {
	t.Helper()
	for _, h := range w.Houses() {
		if h.Object.Name == name {
			return h
		}
	}
	t.Fatalf("no house %q", name)
	return nil
}

func assertPairing(t *testing.T, w *world.World) {
	t.Helper()
	sum := 0
	for _, h := range w.Houses() {
		sum += h.Indoor()
	}
	if got := w.Stats().Indoor; sum != got {
		t.Fatalf("sum of house counters = %d, indoor mosquitoes = %d", sum, got)
	}
}

// --- Build ---

func TestLayerOrder(t *testing.T) {
	w := newTestWorld(t, testSimulation(0), world.Services{})
	want := []string{
		"Background", "Sky", "Selection", "DoorSelection", "WindowSelection",
		"HouseSelection", "Update", "Mosquitoes", "UI", "Camera",
	}
	root := w.Scene().Root()
	if root.NumChildren() != len(want) {
		t.Fatalf("root children = %d, want %d", root.NumChildren(), len(want))
	}
	for i, name := range want {
		if got := root.ChildAt(i).Name; got != name {
			t.Errorf("layer %d = %q, want %q", i, got, name)
		}
		if w.Layer(world.Layer(i)) != root.ChildAt(i) {
			t.Errorf("slot %d does not reference root child %d", i, i)
		}
	}
}

func TestBuildPopulatesLayers(t *testing.T) {
	w := newTestWorld(t, testSimulation(25), world.Services{})

	tests := []struct {
		layer world.Layer
		want  int
	}{
		{world.LayerBackground, 3 + 1}, // map layers + prevention
		{world.LayerSky, 1},
		{world.LayerSelection, 2},
		{world.LayerDoorSelection, 3},
		{world.LayerWindowSelection, 2},
		{world.LayerHouseSelection, 2},
		{world.LayerUpdate, 9},
		{world.LayerMosquitoes, 25},
		{world.LayerUI, 5},
		{world.LayerCamera, 1},
	}
	for _, tt := range tests {
		t.Run(tt.layer.String(), func(t *testing.T) {
			if got := w.Layer(tt.layer).NumChildren(); got != tt.want {
				t.Errorf("children = %d, want %d", got, tt.want)
			}
		})
	}

	if got := len(w.Mosquitoes()); got != 25 {
		t.Errorf("Mosquitoes = %d, want 25", got)
	}
	for _, m := range w.Mosquitoes() {
		p := m.Node().Position()
		if math.Mod(p.X, 64) != 0 || math.Mod(p.Y, 64) != 0 {
			t.Errorf("mosquito %d spawned off-grid at %v", m.Index, p)
		}
		if m.Indoor() {
			t.Errorf("mosquito %d starts indoor", m.Index)
		}
	}
}

func TestHeroStartsAtCentre(t *testing.T) {
	w := newTestWorld(t, testSimulation(0), world.Services{})
	hero, ok := w.Hero()
	if !ok {
		t.Fatal("hero missing")
	}
	if got := hero.Center(); got != (moka.Vec2{X: 640, Y: 480}) {
		t.Errorf("hero centre = %v, want (640, 480)", got)
	}
	if w.Camera().X != 640 || w.Camera().Y != 480 {
		t.Errorf("camera = (%v, %v), want (640, 480)", w.Camera().X, w.Camera().Y)
	}
}

type rightward struct{}

func (rightward) Direction() (float64, float64) { return 1, 0 }

func TestHeroMovesAndStaysInBounds(t *testing.T) {
	w := newTestWorld(t, testSimulation(0), world.Services{Controls: rightward{}})
	hero, _ := w.Hero()
	w.Update(0.5)
	if got := hero.Node().X; got != 640-24+120 {
		t.Errorf("hero X = %v, want %v", got, 640-24+120)
	}
	for i := 0; i < 100; i++ {
		w.Update(0.5)
	}
	if got, want := hero.Node().X, 1280.0-48; got != want {
		t.Errorf("hero X = %v, want clamped %v", got, want)
	}
}

func TestUnknownTypeLoggedAndSkipped(t *testing.T) {
	var buf bytes.Buffer
	objs := append(testObjects(), level.InteractiveObject{Name: "well", Type: "Well", X: 896, Y: 640, Width: 64, Height: 64})
	w, err := world.New(world.Options{
		Level:      testLevel(t, objs),
		Simulation: testSimulation(0),
		Services:   world.Services{Logger: slog.New(slog.NewTextHandler(&buf, nil))},
	})
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	defer w.Dispose()

	if got := w.Layer(world.LayerUpdate).NumChildren(); got != 9 {
		t.Errorf("update nodes = %d, want 9", got)
	}
	out := buf.String()
	if !strings.Contains(out, "unknown type") || !strings.Contains(out, "name=well") {
		t.Errorf("expected skip warning, log was:\n%s", out)
	}
	if !strings.Contains(out, "run="+w.RunID().String()) {
		t.Error("log records should carry the run id")
	}
}

func TestNewRejectsUnattachedDoor(t *testing.T) {
	objs := append(testObjects(), level.InteractiveObject{Name: "stray-door", Type: level.TypeDoor, X: 1152, Y: 832, Width: 64, Height: 64})
	_, err := world.New(world.Options{
		Level:      testLevel(t, objs),
		Simulation: testSimulation(0),
		Services:   world.Services{Logger: quietLogger()},
	})
	if !errors.Is(err, world.ErrUnattached) {
		t.Fatalf("err = %v, want ErrUnattached", err)
	}
	if !strings.Contains(err.Error(), "stray-door") {
		t.Errorf("error %q should name the door", err)
	}
}

func TestNewRequiresLevel(t *testing.T) {
	if _, err := world.New(world.Options{}); err == nil {
		t.Error("expected error for nil level")
	}
}

// --- Adjacency ---

func TestAdjacencyTotality(t *testing.T) {
	w := newTestWorld(t, testSimulation(0), world.Services{})
	adj := w.Adjacency()
	if adj.Doors() != 3 {
		t.Errorf("Doors = %d, want 3", adj.Doors())
	}
	if adj.Windows() != 2 {
		t.Errorf("Windows = %d, want 2", adj.Windows())
	}

	for _, n := range w.Layer(world.LayerDoorSelection).Children() {
		d := n.UserData.(*world.Door)
		h, ok := adj.HouseForDoor(d)
		if !ok {
			t.Errorf("door %s unmapped", d.Object.Name)
			continue
		}
		if h.Object.Name != d.Object.AttachedTo {
			t.Errorf("door %s -> %s, want %s", d.Object.Name, h.Object.Name, d.Object.AttachedTo)
		}
	}
	for _, n := range w.Layer(world.LayerWindowSelection).Children() {
		win := n.UserData.(*world.Window)
		h, ok := adj.HouseForWindow(win)
		if !ok {
			t.Errorf("window %s unmapped", win.Object.Name)
			continue
		}
		if h.Object.Name != win.Object.AttachedTo {
			t.Errorf("window %s -> %s, want %s", win.Object.Name, h.Object.Name, win.Object.AttachedTo)
		}
	}
}

func TestAdjacencyDefaultLevel(t *testing.T) {
	lvl, err := level.Default()
	if err != nil {
		t.Fatal(err)
	}
	w, err := world.New(world.Options{
		Level:      lvl,
		Simulation: testSimulation(0),
		Services:   world.Services{Logger: quietLogger()},
	})
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	defer w.Dispose()
	if w.Adjacency().Doors() != lvl.Interactive.CountType(level.TypeDoor) {
		t.Errorf("Doors = %d", w.Adjacency().Doors())
	}
	if w.Adjacency().Windows() != lvl.Interactive.CountType(level.TypeWindow) {
		t.Errorf("Windows = %d", w.Adjacency().Windows())
	}
}

func TestBuildAdjacencyPanicsOnForeignNode(t *testing.T) {
	doors := moka.NewContainer("doors")
	bogus := moka.NewRectNode("bogus", moka.Rect{Width: 10, Height: 10})
	bogus.UserData = "not a door"
	doors.AddChild(bogus)

	houses := moka.NewContainer("houses")
	houses.AddChild(moka.NewRectNode("house", moka.Rect{Width: 100, Height: 100}))

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for a non-door in the door layer")
		}
	}()
	world.BuildAdjacency(doors, moka.NewContainer("windows"), houses)
}

// --- Simulation ---

func TestTransitionThroughDoor(t *testing.T) {
	sink := &recordingSink{}
	w := newTestWorld(t, testSimulation(1), world.Services{Events: sink})
	sim := w.Simulation()
	sim.Begin()

	m := w.Mosquitoes()[0]
	house := houseNamed(t, w, "house-a")

	m.Node().SetPosition(72, 200) // on door-a
	if n := sim.Evaluate(); n != 1 {
		t.Fatalf("transitions = %d, want 1", n)
	}
	if !m.Indoor() || house.Indoor() != 1 {
		t.Fatalf("after entering: indoor=%v counter=%d", m.Indoor(), house.Indoor())
	}
	if got := m.Bounds().Center(); got != house.Anchor() {
		t.Errorf("mosquito centre = %v, want anchor %v", got, house.Anchor())
	}
	assertPairing(t, w)

	m.Node().SetPosition(72, 200)
	if n := sim.Evaluate(); n != 1 {
		t.Fatalf("transitions = %d, want 1", n)
	}
	if m.Indoor() || house.Indoor() != 0 {
		t.Fatalf("after leaving: indoor=%v counter=%d", m.Indoor(), house.Indoor())
	}
	if got := m.Node().Position(); got != (moka.Vec2{X: 64, Y: 256}) {
		t.Errorf("exit position = %v, want one tile below the door (64, 256)", got)
	}
	assertPairing(t, w)

	// The exit touches the door's bottom edge; that is not a crossing.
	if n := sim.Evaluate(); n != 0 {
		t.Fatalf("transitions at the exit = %d, want 0", n)
	}
	if m.Indoor() || house.Indoor() != 0 {
		t.Fatalf("after staying at the exit: indoor=%v counter=%d", m.Indoor(), house.Indoor())
	}

	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	first := sink.events[0]
	if first.House != "house-a" || first.Via != "door-a" || !first.Indoor || first.Run != w.RunID() {
		t.Errorf("first event = %+v", first)
	}
	if sink.events[1].Indoor {
		t.Error("second event should leave the house")
	}
}

func TestTransitionThroughWindow(t *testing.T) {
	w := newTestWorld(t, testSimulation(1), world.Services{})
	sim := w.Simulation()
	sim.Begin()

	m := w.Mosquitoes()[0]
	house := houseNamed(t, w, "house-b")

	m.Node().SetPosition(720, 20) // on window-b
	sim.Evaluate()
	if !m.Indoor() || house.Indoor() != 1 {
		t.Fatalf("after entering: indoor=%v counter=%d", m.Indoor(), house.Indoor())
	}

	m.Node().SetPosition(720, 20)
	sim.Evaluate()
	if m.Indoor() || house.Indoor() != 0 {
		t.Fatalf("after leaving: indoor=%v counter=%d", m.Indoor(), house.Indoor())
	}
	if got := m.Node().Position(); got != (moka.Vec2{X: 704, Y: -64}) {
		t.Errorf("exit position = %v, want one tile above the window (704, -64)", got)
	}
	if n := sim.Evaluate(); n != 0 || m.Indoor() {
		t.Errorf("transitions at the exit = %d (indoor=%v), want 0", n, m.Indoor())
	}
}

func TestHouseShadeFollowsIndoorCount(t *testing.T) {
	w := newTestWorld(t, testSimulation(1), world.Services{})
	sim := w.Simulation()
	sim.Begin()

	var shade *moka.Node
	for _, n := range w.Layer(world.LayerUpdate).Children() {
		if n.Name == "house-a/update" {
			shade = n
		}
	}
	if shade == nil {
		t.Fatal("house-a has no update node")
	}

	w.Mosquitoes()[0].Node().SetPosition(72, 200) // on door-a
	sim.Evaluate()

	w.Update(0.1)
	if a := shade.Color.A; a <= 0 || a >= 0.025 {
		t.Errorf("alpha after 0.1s = %v, want between 0 and 0.025", a)
	}
	for i := 0; i < 3; i++ {
		w.Update(0.1)
	}
	if a := shade.Color.A; math.Abs(a-0.025) > 0.001 {
		t.Errorf("alpha = %v, want ~0.025 for one mosquito", a)
	}
}

func TestPairingInvariantUnderMotion(t *testing.T) {
	sim := testSimulation(60)
	sim.MosquitoSpeed = 200
	w := newTestWorld(t, sim, world.Services{})
	w.HandleEvent(world.Event{Type: world.EventBeginSimulation})

	for frame := 0; frame < 900; frame++ {
		w.Update(1.0 / 60)
		assertPairing(t, w)
	}
	if got := w.Simulation().Passes(); got != 14 && got != 15 {
		t.Errorf("passes = %d, want about 15", got)
	}
}

func TestTimingGate(t *testing.T) {
	w := newTestWorld(t, testSimulation(0), world.Services{})
	sim := w.Simulation()
	sim.Begin()

	ran := 0
	for _, dt := range []float64{0.4, 0.4, 0.4} {
		if sim.Advance(dt) {
			ran++
		}
	}
	if ran != 1 || sim.Passes() != 1 {
		t.Fatalf("passes = %d (ran %d), want 1", sim.Passes(), ran)
	}
	if got := sim.Elapsed(); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("residual = %v, want 0.2", got)
	}
}

func TestAdvanceRunsAtMostOnePassPerFrame(t *testing.T) {
	w := newTestWorld(t, testSimulation(0), world.Services{})
	sim := w.Simulation()
	sim.Begin()

	sim.Advance(2.5)
	if sim.Passes() != 1 {
		t.Fatalf("passes = %d, want 1", sim.Passes())
	}
	if got := sim.Elapsed(); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("residual = %v, want 1.5", got)
	}
	sim.Advance(0)
	if sim.Passes() != 2 {
		t.Errorf("passes = %d, want 2", sim.Passes())
	}
}

func TestPreLatchInert(t *testing.T) {
	sink := &recordingSink{}
	w := newTestWorld(t, testSimulation(1), world.Services{Events: sink})
	sim := w.Simulation()
	m := w.Mosquitoes()[0]
	m.Node().SetPosition(72, 200) // on door-a

	for i := 0; i < 50; i++ {
		w.Update(0.25)
	}
	if n := sim.Evaluate(); n != 0 {
		t.Errorf("Evaluate before begin = %d transitions", n)
	}
	if sim.Begun() || sim.Passes() != 0 || m.Indoor() || len(sink.events) != 0 {
		t.Fatalf("state changed before begin: begun=%v passes=%d indoor=%v events=%d",
			sim.Begun(), sim.Passes(), m.Indoor(), len(sink.events))
	}
	if got := sim.Elapsed(); math.Abs(got-12.5) > 1e-9 {
		t.Errorf("accumulator = %v, want 12.5", got)
	}

	w.HandleEvent(world.Event{Type: world.EventBeginSimulation})
	w.Update(0)
	if !m.Indoor() {
		t.Error("first frame after begin should evaluate")
	}
	w.HandleEvent(world.Event{Type: world.EventBeginSimulation})
	if !sim.Begun() {
		t.Error("latch must stay set")
	}
}

// --- Events ---

func TestResizeEvents(t *testing.T) {
	w := newTestWorld(t, testSimulation(0), world.Services{})
	for _, typ := range []world.EventType{world.EventFullscreen, world.EventWindowed} {
		w.HandleEvent(world.Event{Type: typ, Width: 1024, Height: 768})
		c := w.Camera()
		if c.Width != 1024 || c.Height != 768 {
			t.Errorf("%s: camera %vx%v, want 1024x768", typ, c.Width, c.Height)
		}
		if c.X != 640 || c.Y != 480 {
			t.Errorf("%s: camera at (%v, %v), want centred on hero", typ, c.X, c.Y)
		}
	}
	if w.Simulation().Begun() {
		t.Error("resize must not affect the simulation")
	}
}

func TestBeginSimulationDarkens(t *testing.T) {
	w := newTestWorld(t, testSimulation(0), world.Services{})
	if w.Darkness().Alpha() != 0 {
		t.Fatalf("darkness alpha = %v before begin", w.Darkness().Alpha())
	}
	w.HandleEvent(world.Event{Type: world.EventBeginSimulation})
	for i := 0; i < 10; i++ {
		w.Update(0.5)
	}
	if got := w.Darkness().Alpha(); math.Abs(got-0.45) > 1e-6 {
		t.Errorf("darkness alpha = %v, want 0.45", got)
	}
	if w.ChatText() != "beginSimulation" {
		t.Errorf("chat = %q", w.ChatText())
	}
}

// --- Teardown ---

func TestDisposeInvalidatesReferences(t *testing.T) {
	w, err := world.New(world.Options{
		Level:      testLevel(t, testObjects()),
		Simulation: testSimulation(5),
		Services:   world.Services{Logger: quietLogger()},
	})
	if err != nil {
		t.Fatal(err)
	}
	door := w.Layer(world.LayerDoorSelection).ChildAt(0).UserData.(*world.Door)
	window := w.Layer(world.LayerWindowSelection).ChildAt(0).UserData.(*world.Window)

	w.Dispose()

	for l := world.LayerBackground; l <= world.LayerCamera; l++ {
		if w.LayerHandle(l).Valid() {
			t.Errorf("layer %s handle still valid", l)
		}
	}
	if w.HeroHandle().Valid() {
		t.Error("hero handle still valid")
	}
	if _, ok := w.Hero(); ok {
		t.Error("Hero resolved after dispose")
	}
	if _, ok := w.Adjacency().HouseForDoor(door); ok {
		t.Error("adjacency resolved a door after dispose")
	}
	if _, ok := w.Adjacency().HouseForWindow(window); ok {
		t.Error("adjacency resolved a window after dispose")
	}
	if !w.Scene().Root().IsDisposed() {
		t.Error("root not disposed")
	}

	w.Dispose() // second call is a no-op

	defer func() {
		if r := recover(); r == nil {
			t.Error("Update after Dispose should panic")
		}
	}()
	w.Update(0.016)
}

// --- Draw ---

type recordingTarget struct {
	draws int
}

func (r *recordingTarget) DrawImage(*ebiten.Image, *ebiten.DrawImageOptions) { r.draws++ }

func TestDrawWithoutTexturesSubmitsNothing(t *testing.T) {
	w := newTestWorld(t, testSimulation(3), world.Services{})
	target := &recordingTarget{}
	w.Draw(target)
	if target.draws != 0 {
		t.Errorf("draws = %d, want 0 with no textures", target.draws)
	}
}

func TestStats(t *testing.T) {
	w := newTestWorld(t, testSimulation(7), world.Services{})
	s := w.Stats()
	if s.Mosquitoes != 7 || s.Residents != 30 || s.Indoor != 0 || s.Outdoor != 7 || s.Daylight != 12 {
		t.Errorf("Stats = %+v", s)
	}
}
