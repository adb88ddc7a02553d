package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spritewalk/ecs"
	"github.com/plus3/spritewalk/sprite"
	"go.uber.org/zap"
)

// Overlay is a debug layer drawn over the scene, such as the imgui
// inspector. Update runs once per tick before the game systems.
type Overlay interface {
	Update(dt float64)
	WantsKeyboard() bool
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// Options configure a Game.
type Options struct {
	Width, Height int
	TPS           int

	Player   PlayerOptions
	Sheet    *sprite.Sheet
	Keys     KeySource
	Bindings Bindings
	HUD      bool

	Log *zap.SugaredLogger
}

// Game runs the scene as an ebiten.Game. Update and draw systems share one
// storage but run on separate schedulers.
type Game struct {
	width, height int
	dt            float64

	storage *ecs.Storage
	update  *ecs.Scheduler
	draw    *ecs.Scheduler
	render  *RenderSystem
	overlay Overlay

	ui      *ecs.Singleton[UIState]
	capture *ecs.Singleton[InputCapture]
	player  *ecs.EntityRef
	log     *zap.SugaredLogger
}

// New builds the storage, spawns the player and registers the systems.
func New(opts Options) *Game {
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	if opts.Keys == nil {
		opts.Keys = EbitenKeys{}
	}
	if opts.Bindings.Walk == nil {
		opts.Bindings = DefaultBindings()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}

	storage := ecs.NewStorage(NewRegistry())
	ecs.NewSingleton[Clock](storage)
	ecs.NewSingleton[ActionQueue](storage)
	capture := ecs.NewSingleton[InputCapture](storage)
	ui := ecs.NewSingleton[UIState](storage, UIState{HUD: opts.HUD})

	id := SpawnPlayer(storage, opts.Player, opts.Sheet, 0)

	update := ecs.NewScheduler(storage)
	update.Register(&ClockSystem{})
	update.Register(&InputSystem{Keys: opts.Keys, Bindings: opts.Bindings})
	update.Register(&PlayerSystem{Log: opts.Log})
	update.Register(&TweenSystem{})

	render := &RenderSystem{}
	draw := ecs.NewScheduler(storage)
	draw.Register(render)

	opts.Log.Infow("game ready",
		"width", opts.Width, "height", opts.Height, "tps", opts.TPS,
		"player", id)

	return &Game{
		width:   opts.Width,
		height:  opts.Height,
		dt:      1 / float64(opts.TPS),
		storage: storage,
		update:  update,
		draw:    draw,
		render:  render,
		ui:      ui,
		capture: capture,
		player:  storage.CreateEntityRef(id),
		log:     opts.Log,
	}
}

// SetOverlay attaches a debug overlay, shown while the overlay toggle is on.
func (g *Game) SetOverlay(o Overlay) {
	g.overlay = o
}

// Storage exposes the entity storage.
func (g *Game) Storage() *ecs.Storage { return g.storage }

// Scheduler is the scheduler of the per-tick systems.
func (g *Game) Scheduler() *ecs.Scheduler { return g.update }

// Player is a reference to the player entity.
func (g *Game) Player() *ecs.EntityRef { return g.player }

// UI is the current toggle state.
func (g *Game) UI() UIState { return *g.ui.Get() }

func (g *Game) overlayShown() bool {
	return g.overlay != nil && g.ui.Get().Overlay
}

// Tick advances the game by one fixed step. It is Update without quitting.
func (g *Game) Tick() {
	capture := g.capture.Get()
	capture.Keyboard = false
	if g.overlayShown() {
		g.overlay.Update(g.dt)
		capture.Keyboard = g.overlay.WantsKeyboard()
	}
	g.update.Once(g.dt)
}

func (g *Game) Update() error {
	g.Tick()
	if g.ui.Get().Quit {
		g.log.Info("quit requested")
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Screen = screen
	g.draw.Once(g.dt)
	if g.overlayShown() {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(g.width, g.height)
	}
	return g.width, g.height
}
