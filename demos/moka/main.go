// moka runs the mosquito settlement in a window. Arrow keys or WASD walk,
// clicks inspect objects and apply prevention options, Enter begins the
// night, F toggles fullscreen and P saves a screenshot. Editing the level or
// config file on disk rebuilds the world; -script replays an event script.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"golang.org/x/image/colornames"

	"github.com/phanxgames/moka"
	"github.com/phanxgames/moka/config"
	"github.com/phanxgames/moka/ecs"
	"github.com/phanxgames/moka/level"
	"github.com/phanxgames/moka/locale"
	"github.com/phanxgames/moka/world"
)

type game struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger

	world    *world.World
	ecs      donburi.World
	tallies  *ecs.DonburiSink
	textures world.TextureSource
	sounds   *sounds
	strings  *locale.Catalog
	font     *moka.Font
	watch    *watcher
	script   *world.Script
	shots    *screenshots

	width, height int
	crossings     int
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	scriptPath := flag.String("script", "", "path to a YAML or JSON event script to replay")
	flag.Parse()

	g := &game{configPath: *configPath}
	g.shots = &screenshots{dir: "screenshots"}
	g.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := g.loadConfig(); err != nil {
		log.Fatal(err)
	}
	if g.cfg.Debug {
		g.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	g.shots.logger = g.logger

	strs, err := locale.Load("en")
	if err != nil {
		log.Fatal(err)
	}
	g.strings = strs
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		if g.script, err = world.LoadScript(data); err != nil {
			log.Fatal(err)
		}
		g.script.Screenshot = g.shots.capture
	}
	tex, err := loadTextures(g.cfg.Atlas)
	if err != nil {
		log.Fatal(err)
	}
	g.textures = tex
	if g.font, err = moka.LoadFont(fonts.MPlus1pRegular_ttf, 12); err != nil {
		log.Fatal(err)
	}
	g.sounds = newSounds()
	g.ecs = donburi.NewWorld()
	g.tallies = ecs.NewDonburiSink(g.ecs)
	ecs.TransitionEventType.Subscribe(g.ecs, func(_ donburi.World, _ world.TransitionEvent) {
		g.crossings++
	})

	g.width, g.height = g.cfg.Window.Width, g.cfg.Window.Height
	if err := g.rebuild(); err != nil {
		log.Fatal(err)
	}
	defer g.shutdown()

	if dirs := g.watchedDirs(); len(dirs) > 0 {
		w, err := newWatcher(dirs...)
		if err != nil {
			g.logger.Warn("hot reload disabled", "err", err)
		} else {
			g.watch = w
			defer w.Close()
		}
	}

	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func (g *game) loadConfig() error {
	if g.configPath == "" {
		g.cfg = config.Default()
		return nil
	}
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

func (g *game) loadLevel() (*level.Level, error) {
	if g.cfg.Level == "" {
		return level.Default()
	}
	return level.Load(g.cfg.Level)
}

func (g *game) watchedDirs() []string {
	seen := map[string]bool{}
	var dirs []string
	for _, p := range []string{g.configPath, g.cfg.Level} {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// rebuild tears the current world down and builds a fresh one from the
// current config and level.
func (g *game) rebuild() error {
	lvl, err := g.loadLevel()
	if err != nil {
		return err
	}
	w, err := world.New(world.Options{
		Level:      lvl,
		Simulation: g.cfg.Simulation,
		ViewWidth:  float64(g.width),
		ViewHeight: float64(g.height),
		Services: world.Services{
			Textures: g.textures,
			Font:     g.font,
			Sounds:   g.sounds,
			Strings:  g.strings,
			Controls: keyboard{},
			Events:   g.tallies,
			Rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
			Logger:   g.logger,
		},
	})
	if err != nil {
		return err
	}
	w.Scene().SetDebugMode(g.cfg.Debug)
	if g.world != nil {
		g.world.Dispose()
	}
	g.world = w
	g.tallies.Reset()
	g.crossings = 0
	return nil
}

// shutdown disposes whichever world is current, including one swapped in
// by a hot reload.
func (g *game) shutdown() {
	if g.world != nil {
		g.world.Dispose()
	}
}

func (g *game) reload(path string) {
	if err := g.loadConfig(); err != nil {
		g.logger.Error("reload config", "path", path, "err", err)
		return
	}
	if err := g.rebuild(); err != nil {
		g.logger.Error("reload level", "path", path, "err", err)
		return
	}
	g.logger.Info("reloaded", "path", path)
}

func (g *game) Update() error {
	if g.watch != nil {
		select {
		case path := <-g.watch.Events:
			g.reload(path)
		case err := <-g.watch.Errors:
			g.logger.Warn("watch", "err", err)
		default:
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.shots.capture("manual")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.world.HandleEvent(world.Event{Type: world.EventBeginSimulation})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		full := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(full)
		typ := world.EventWindowed
		if full {
			typ = world.EventFullscreen
		}
		g.world.HandleEvent(world.Event{Type: typ, Width: float64(g.width), Height: float64(g.height)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		sx, sy := ebiten.CursorPosition()
		x, y := g.world.Camera().ScreenToWorld(float64(sx), float64(sy))
		g.world.HandleEvent(world.Event{Type: world.EventSelect, X: x, Y: y})
	}

	if g.script != nil {
		g.script.Step(g.world)
	}
	g.world.Update(1 / float64(ebiten.TPS()))
	events.ProcessAllEvents(g.ecs)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.world.Draw(screen)

	s := g.world.Stats()
	status := fmt.Sprintf("%s\n\nmosquitoes %d (indoor %d)  residents %d\ndaylight %.0fh  passes %d  crossings %d",
		g.world.ChatText(), s.Mosquitoes, s.Indoor, s.Residents, s.Daylight, s.Passes, g.crossings)
	if g.cfg.Debug {
		status += fmt.Sprintf("\nFPS %.1f  TPS %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	ebitenutil.DebugPrint(screen, status)
	g.shots.flush(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.world.HandleEvent(world.Event{Type: world.EventWindowed, Width: float64(g.width), Height: float64(g.height)})
	}
	return g.width, g.height
}
