// Package game wraps a level's world into something the platform can drive:
// fixed ticks, pause, the death flash, the completion banner and rendering.
// Like the world it contains no Bubble Tea.
package game

import (
	"github.com/vovakirdan/magmahydro/internal/config"
	"github.com/vovakirdan/magmahydro/internal/core"
	"github.com/vovakirdan/magmahydro/internal/level"
	"github.com/vovakirdan/magmahydro/internal/multiplayer"
	"github.com/vovakirdan/magmahydro/internal/world"
)

// Game is one run of one level.
type Game struct {
	lvl   *level.Level
	cfg   config.GameConfig
	world *world.World
	rt    core.RuntimeConfig

	elapsed   int // unpaused ticks since the run started
	flash     int // ticks left before dead players respawn
	banner    int // ticks left of the completion banner
	completed bool
	gameOver  bool
	paused    bool

	view viewport
}

var _ multiplayer.OnlineGame = (*Game)(nil)

// New creates a game for a level. The level must have passed
// level.Validate.
func New(lvl *level.Level, cfg config.GameConfig) (*Game, error) {
	w, err := world.New(lvl, cfg)
	if err != nil {
		return nil, err
	}
	g := &Game{lvl: lvl, cfg: cfg, world: w, rt: core.DefaultConfig()}
	g.layout()
	return g, nil
}

// ID returns the level id, used for records.
func (g *Game) ID() string { return g.lvl.ID }

// Title returns the level name.
func (g *Game) Title() string { return g.lvl.Name }

// Level returns the level being played.
func (g *Game) Level() *level.Level { return g.lvl }

// World exposes the simulation, mainly for tests and the online client.
func (g *Game) World() *world.World { return g.world }

// Reset restarts the level with both characters on their spawns.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rt = cfg
	g.restart()
	g.layout()
}

// Resize updates the screen size without touching the run.
func (g *Game) Resize(w, h int) {
	g.rt.ScreenW = w
	g.rt.ScreenH = h
	g.layout()
}

// ReplaceLevel swaps in a reloaded version of the level and restarts.
// On error the current level keeps running.
func (g *Game) ReplaceLevel(lvl *level.Level) error {
	w, err := world.New(lvl, g.cfg)
	if err != nil {
		return err
	}
	g.lvl = lvl
	g.world = w
	g.restart()
	g.layout()
	return nil
}

func (g *Game) restart() {
	g.world.Reset()
	g.world.Tick = 0
	g.world.Deaths = 0
	g.elapsed = 0
	g.flash = 0
	g.banner = 0
	g.completed = false
	g.gameOver = false
	g.paused = false
}

// Step advances the run by one tick. Pause and Restart are read from
// either player.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Any(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}
	if in.Any(core.ActionPause) && !g.completed {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch {
	case g.completed:
		g.banner--
		if g.banner <= 0 {
			g.gameOver = true
		}
		return core.StepResult{State: g.State()}

	case g.flash > 0:
		g.elapsed++
		g.flash--
		if g.flash == 0 {
			g.world.Reset()
		}
		return core.StepResult{State: g.State()}
	}

	g.elapsed++
	report := g.world.Step(in)

	var res core.StepResult
	if len(report.Died) > 0 {
		res.Died = true
		g.flash = g.cfg.Play.DeathFlashTicks
		if g.flash <= 0 {
			g.world.Reset()
		}
	}
	if report.Completed && !res.Died {
		g.completed = true
		g.banner = g.cfg.Play.CompleteBannerTicks
		if g.banner <= 0 {
			g.gameOver = true
		}
		res.JustCompleted = true
	}

	res.State = g.State()
	return res
}

// StepMulti is Step under the name the online match uses.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	return g.Step(in)
}

// State returns the current run state.
func (g *Game) State() core.GameState {
	return core.GameState{
		LevelID:   g.lvl.ID,
		Ticks:     g.elapsed,
		Deaths:    g.world.Deaths,
		Completed: g.completed,
		GameOver:  g.gameOver,
		Paused:    g.paused,
	}
}

// IsGameOver reports whether the run has ended.
func (g *Game) IsGameOver() bool { return g.gameOver }

// Result summarizes the run for the online match.
func (g *Game) Result() multiplayer.RunResult {
	return multiplayer.RunResult{
		Completed: g.completed,
		Ticks:     g.elapsed,
		Deaths:    g.world.Deaths,
	}
}

// Abandon ends the run without completing it.
func (g *Game) Abandon() {
	g.gameOver = true
}

// Flashing reports whether a death is being shown.
func (g *Game) Flashing() bool { return g.flash > 0 }
