// Package stackletter is the stacking game as seen by the platform: it owns
// a session for the selected letter, turns input frames into intents and
// draws the board into a screen buffer.
package stackletter

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stack-the-letter/internal/core"
	"github.com/vovakirdan/stack-the-letter/internal/engine"
	"github.com/vovakirdan/stack-the-letter/internal/letters"
	"github.com/vovakirdan/stack-the-letter/internal/registry"
	"github.com/vovakirdan/stack-the-letter/internal/replay"
	"github.com/vovakirdan/stack-the-letter/internal/session"
)

// FlashTicks is how long a cleared cell stays highlighted.
const FlashTicks = 8

// Game implements registry.Game for one mode.
type Game struct {
	mode     string
	title    string
	letterID string // overrides the package selection when set
	runtime  core.RuntimeConfig

	setup   Setup
	rec     *replay.Recorder
	err     error // setup failure, shown instead of the board
	started bool

	tickCount int
	now       time.Duration
	flash     map[engine.Coord]int
	saved     bool // replay written for the current ending
}

// New creates a stackletter mode game.
func New() *Game {
	return &Game{mode: ModeStackLetter, title: "Stack the Letter"}
}

// NewTale creates a talestack mode game.
func NewTale() *Game {
	return &Game{mode: ModeTaleStack, title: "Tale Stack"}
}

// ID returns the mode ID.
func (g *Game) ID() string {
	return g.mode
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the selected letter and configuration and builds an idle
// session. A failure is kept and rendered.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.tickCount = 0
	g.now = 0
	g.flash = make(map[engine.Coord]int)
	g.started = false
	g.saved = false
	g.rec = nil

	opts := CurrentOptions()
	if g.letterID != "" {
		opts.LetterID = g.letterID
	}
	g.setup, g.err = LoadSetup(g.mode, opts)
	if g.err != nil {
		log.Error("stackletter: setup failed", "mode", g.mode, "err", g.err)
		return
	}

	header := replay.Header{LetterID: g.setup.Letter.ID, Mode: g.mode}
	g.rec, g.err = replay.NewRecorder(header, g.setup.Config, g.setup.Letter.Blocks)
	if g.err != nil {
		log.Error("stackletter: session failed", "mode", g.mode, "err", g.err)
	}
}

// SelectLetter picks the letter for this game only, leaving the package
// selection alone. It takes effect on the next Reset.
func (g *Game) SelectLetter(id string) {
	g.letterID = id
}

// Err returns the setup error, if any.
func (g *Game) Err() error {
	return g.err
}

// Letter returns the letter being played.
func (g *Game) Letter() letters.Letter {
	return g.setup.Letter
}

// Session returns the underlying session, or nil after a setup failure.
func (g *Game) Session() *session.Session {
	if g.rec == nil {
		return nil
	}
	return g.rec.Session
}

// Step advances the simulated clock by one tick and feeds the held keys to
// the session.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.rec == nil {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.now = time.Duration(g.tickCount) * time.Second / time.Duration(g.runtime.TickRate)

	if in.Has(core.ActionStop) {
		g.rec.Stop()
	}
	if in.Has(core.ActionStart) && g.rec.Status() != engine.StatusRunning {
		g.rec.Start(g.now)
		g.started = true
		g.saved = false
		clear(g.flash)
	}

	res := g.rec.Tick(intentOf(in), g.now)
	g.decayFlash()
	for _, ch := range res.Changed {
		if ch.Value == engine.Empty {
			g.flash[ch.Coord] = FlashTicks
		} else {
			delete(g.flash, ch.Coord)
		}
	}

	if res.Status.Terminal() && !g.saved {
		g.saved = true
		g.writeReplay()
	}

	return core.StepResult{State: g.State()}
}

func intentOf(in core.InputFrame) session.Intent {
	return session.Intent{
		Left:       in.Has(core.ActionLeft),
		Right:      in.Has(core.ActionRight),
		Accelerate: in.Has(core.ActionAccelerate),
	}
}

func (g *Game) decayFlash() {
	for c, n := range g.flash {
		if n <= 1 {
			delete(g.flash, c)
			continue
		}
		g.flash[c] = n - 1
	}
}

func (g *Game) writeReplay() {
	if recordPath == "" {
		return
	}
	if err := replay.Write(recordPath, g.rec.Replay()); err != nil {
		log.Warn("stackletter: could not write replay", "path", recordPath, "err", err)
		return
	}
	log.Info("stackletter: replay written", "path", recordPath)
}

// State returns the platform view of the session.
func (g *Game) State() core.GameState {
	if g.rec == nil {
		return core.GameState{GameOver: true}
	}
	status := g.rec.Status()
	return core.GameState{
		Score:    g.rec.Stats().Score(),
		GameOver: status.Terminal(),
		Won:      status == engine.StatusYouWon,
		Paused:   status == engine.StatusIdle,
	}
}

// Summary reports the session for result storage.
func (g *Game) Summary() registry.Summary {
	if g.rec == nil {
		return registry.Summary{Mode: g.mode}
	}
	st := g.rec.Stats()
	status := g.rec.Status()
	return registry.Summary{
		LetterID:     g.setup.Letter.ID,
		Mode:         g.mode,
		Started:      g.started,
		Won:          status == engine.StatusYouWon,
		Lost:         status == engine.StatusGameOver,
		BlocksPlaced: st.BlocksPlaced,
		CellsRemoved: st.CellsRemoved,
		Moves:        st.Moves,
		Elapsed:      st.Elapsed,
		Score:        st.Score(),
	}
}

func init() {
	registry.Register(ModeStackLetter, func() registry.Game { return New() })
	registry.Register(ModeTaleStack, func() registry.Game { return NewTale() })
}
