package game_test

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spritewalk/ecs"
	"github.com/plus3/spritewalk/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOverlay struct {
	updates  int
	keyboard bool
}

func (o *fakeOverlay) Update(float64)           { o.updates++ }
func (o *fakeOverlay) WantsKeyboard() bool      { return o.keyboard }
func (o *fakeOverlay) Draw(*ebiten.Image)       {}
func (o *fakeOverlay) Layout(width, height int) {}

func newTestGame(t *testing.T, keys *fakeKeys) *game.Game {
	t.Helper()
	return game.New(game.Options{
		Width:  800,
		Height: 600,
		TPS:    64,
		Player: game.DefaultPlayerOptions(),
		Keys:   keys,
	})
}

func tick(g *game.Game, keys *fakeKeys, n int) {
	for range n {
		g.Tick()
		keys.next()
	}
}

func playerOf(t *testing.T, g *game.Game) (*game.Position, *game.Size, *game.Player) {
	t.Helper()
	id, ok := g.Storage().ResolveEntityRef(g.Player())
	require.True(t, ok)
	return ecs.ReadComponent[game.Position](g.Storage(), id),
		ecs.ReadComponent[game.Size](g.Storage(), id),
		ecs.ReadComponent[game.Player](g.Storage(), id)
}

func TestClockSystemKeepsFraction(t *testing.T) {
	storage := ecs.NewStorage(game.NewRegistry())
	clock := ecs.NewSingleton[game.Clock](storage)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.ClockSystem{})

	scheduler.Once(1.0 / 64)
	assert.Equal(t, uint32(15), clock.Get().Ticks)

	for range 7 {
		scheduler.Once(1.0 / 64)
	}
	assert.Equal(t, uint32(125), clock.Get().Ticks)
}

func TestGameWalksWhileHeld(t *testing.T) {
	keys := newFakeKeys()
	g := newTestGame(t, keys)

	keys.press(ebiten.KeyArrowRight)
	tick(g, keys, 3)

	pos, _, player := playerOf(t, g)
	assert.Equal(t, 6, pos.X)
	assert.Equal(t, 0, pos.Y)
	assert.Equal(t, game.Walk(game.Right), player.State)

	keys.release(ebiten.KeyArrowRight)
	tick(g, keys, 1)
	assert.Equal(t, 6, pos.X)
	assert.Equal(t, game.Stop(game.Right), player.State)
	assert.Equal(t, game.Right, player.Facing)
}

func TestGameAnimatesWhileWalking(t *testing.T) {
	keys := newFakeKeys()
	g := newTestGame(t, keys)

	id, ok := g.Storage().ResolveEntityRef(g.Player())
	require.True(t, ok)
	anim := ecs.ReadComponent[game.Animation](g.Storage(), id)

	keys.press(ebiten.KeyArrowUp)
	// 12 ticks of 15.625ms reach 187ms, the 13th reaches 203ms.
	tick(g, keys, 12)
	assert.Equal(t, 0, anim.Step)
	tick(g, keys, 1)
	assert.Equal(t, 1, anim.Step)
}

func TestGameScaleTween(t *testing.T) {
	keys := newFakeKeys()
	g := newTestGame(t, keys)

	id, ok := g.Storage().ResolveEntityRef(g.Player())
	require.True(t, ok)
	display := ecs.ReadComponent[game.DisplaySize](g.Storage(), id)

	keys.tap(ebiten.KeyKPAdd)
	tick(g, keys, 1)

	_, size, _ := playerOf(t, g)
	assert.Equal(t, game.Size{Width: 37, Height: 37}, *size)
	assert.True(t, display.Tweening())
	assert.Greater(t, display.Width, float32(32))
	assert.Less(t, display.Width, float32(37))

	tick(g, keys, 10)
	assert.False(t, display.Tweening())
	assert.Equal(t, float32(37), display.Width)
	assert.Equal(t, float32(37), display.Height)
}

func TestGameQuit(t *testing.T) {
	keys := newFakeKeys()
	g := newTestGame(t, keys)

	assert.NoError(t, g.Update())
	keys.next()

	keys.tap(ebiten.KeyEscape)
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
}

func TestGameToggles(t *testing.T) {
	keys := newFakeKeys()
	g := newTestGame(t, keys)
	assert.False(t, g.UI().HUD)

	keys.tap(ebiten.KeyF3)
	tick(g, keys, 1)
	assert.True(t, g.UI().HUD)

	keys.tap(ebiten.KeyF3)
	tick(g, keys, 1)
	assert.False(t, g.UI().HUD)
}

func TestOverlayCapturesKeyboard(t *testing.T) {
	keys := newFakeKeys()
	g := newTestGame(t, keys)
	overlay := &fakeOverlay{keyboard: true}
	g.SetOverlay(overlay)

	tick(g, keys, 1)
	assert.Zero(t, overlay.updates, "hidden overlay is not updated")

	keys.tap(ebiten.KeyF1)
	tick(g, keys, 1)
	require.True(t, g.UI().Overlay)

	keys.press(ebiten.KeyArrowDown)
	tick(g, keys, 2)
	assert.Equal(t, 2, overlay.updates)

	pos, _, _ := playerOf(t, g)
	assert.Equal(t, 0, pos.Y, "captured keys do not reach the player")

	overlay.keyboard = false
	tick(g, keys, 1)
	assert.Equal(t, 2, pos.Y)
}

func TestSchedulerStatsCoverSystems(t *testing.T) {
	keys := newFakeKeys()
	g := newTestGame(t, keys)
	tick(g, keys, 2)

	stats := g.Scheduler().Stats()
	require.Equal(t, 4, stats.SystemCount)
	names := make([]string, 0, len(stats.Systems))
	for _, s := range stats.Systems {
		names = append(names, s.Name)
		assert.Equal(t, int64(2), s.ExecutionCount)
	}
	assert.Equal(t, []string{"ClockSystem", "InputSystem", "PlayerSystem", "TweenSystem"}, names)
}
