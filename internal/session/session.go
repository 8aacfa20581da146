// Package session drives one game of stacking: it owns the session state,
// turns held keys and elapsed time into engine moves, and advances the block
// stream when a block has fully locked in.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/stack-the-letter/internal/config"
	"github.com/vovakirdan/stack-the-letter/internal/engine"
)

var (
	ErrBadDimensions = errors.New("session: bad board dimensions")
	ErrEmptyStream   = errors.New("session: empty block stream")
	ErrBlockHeight   = errors.New("session: block height mismatch")
	ErrBlockTooWide  = errors.New("session: block wider than board")
)

// Intent is the input held during one tick.
type Intent struct {
	Left       bool
	Right      bool
	Accelerate bool
}

// Lateral returns -1, 0 or 1. Holding both sides cancels out.
func (in Intent) Lateral() int {
	switch {
	case in.Left && !in.Right:
		return -1
	case in.Right && !in.Left:
		return 1
	default:
		return 0
	}
}

// Stats are the running counters of a session.
type Stats struct {
	BlocksPlaced  int
	CellsRemoved  int
	CascadeRounds int
	Moves         int
	Elapsed       time.Duration
}

// Score condenses the stats into a single number for the scoreboard.
func (s Stats) Score() int {
	return s.BlocksPlaced*10 + s.CellsRemoved
}

// TickResult describes what a tick did.
type TickResult struct {
	Moved     bool
	Direction engine.Direction
	Status    engine.Status
	Changed   []engine.CellChange
	Advanced  bool                 // a new block entered the board
	Cascade   engine.CascadeReport // set when a block was placed
}

// Session is a single game over one block stream.
type Session struct {
	cfg        config.GameConfig
	blocks     []engine.Block
	difficulty *config.DifficultyManager

	state     engine.State
	index     int // index of the falling block in blocks
	startedAt time.Duration
	lastDown  time.Duration
	lastSide  time.Duration
	stats     Stats
}

// New validates the configuration and the block stream and returns an idle
// session.
func New(cfg config.GameConfig, blocks []engine.Block) (*Session, error) {
	if cfg.Board.Columns <= 0 || cfg.Board.Rows <= 0 || cfg.Block.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d with block height %d",
			ErrBadDimensions, cfg.Board.Columns, cfg.Board.Rows, cfg.Block.Height)
	}
	if len(blocks) == 0 {
		return nil, ErrEmptyStream
	}
	for i, b := range blocks {
		if b.Height() != cfg.Block.Height {
			return nil, fmt.Errorf("%w: block %d has %d rows, want %d", ErrBlockHeight, i, b.Height(), cfg.Block.Height)
		}
		if b.Width() > cfg.Board.Columns {
			return nil, fmt.Errorf("%w: block %d is %d wide, board has %d columns", ErrBlockTooWide, i, b.Width(), cfg.Board.Columns)
		}
	}

	s := &Session{
		cfg:        cfg,
		blocks:     blocks,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	s.reset()
	return s, nil
}

func (s *Session) reset() {
	s.state = engine.State{
		Board:  engine.MakeBoard(s.cfg.Board.Columns, s.cfg.Board.Rows+s.cfg.Block.Height),
		Status: engine.StatusIdle,
	}
	s.spawn(0)
	s.stats = Stats{}
}

// spawn makes blocks[i] the falling block, centered at the top of the board.
func (s *Session) spawn(i int) {
	b := s.blocks[i]
	s.index = i
	s.state.Block = b
	s.state.Position = engine.Position{
		X: s.state.Board.Width()/2 - b.Width()/2,
		Y: 0,
	}
}

// Start begins a fresh game from the initial board and the first block.
// It does nothing while a game is running.
func (s *Session) Start(now time.Duration) {
	if s.state.Status == engine.StatusRunning {
		return
	}
	s.reset()
	s.state.Status = engine.StatusRunning
	s.startedAt = now
	s.lastDown = now
	s.lastSide = now
}

// Stop pauses play and returns to idle. The next Start begins a new game.
func (s *Session) Stop() {
	if s.state.Status == engine.StatusRunning {
		s.state.Status = engine.StatusIdle
	}
}

// FallInterval returns the current interval between down moves.
func (s *Session) FallInterval(accelerate bool) time.Duration {
	t := s.cfg.Timing
	if accelerate {
		return t.AcceleratedDownMove()
	}
	return s.difficulty.FallInterval(t.DownMove(), t.AcceleratedDownMove(), s.stats.BlocksPlaced, s.stats.Elapsed)
}

// Tick resolves at most one move at time now. A down move is due when the
// fall interval has passed; a sideways move when a side is held and the side
// interval has passed. When both are due the block moves diagonally.
func (s *Session) Tick(in Intent, now time.Duration) TickResult {
	if s.state.Status != engine.StatusRunning {
		return TickResult{Status: s.state.Status}
	}
	s.stats.Elapsed = now - s.startedAt

	lateral := in.Lateral()
	downDue := now-s.lastDown >= s.FallInterval(in.Accelerate)
	sideDue := lateral != 0 && now-s.lastSide >= s.cfg.Timing.SideMove()

	var dir engine.Direction
	switch {
	case downDue && sideDue && lateral < 0:
		dir = engine.DirDiagonalLeft
	case downDue && sideDue:
		dir = engine.DirDiagonalRight
	case downDue:
		dir = engine.DirDown
	case sideDue && lateral < 0:
		dir = engine.DirLeft
	case sideDue:
		dir = engine.DirRight
	default:
		return TickResult{Status: s.state.Status}
	}
	if downDue {
		s.lastDown = now
	}
	if sideDue {
		s.lastSide = now
	}

	res := engine.ResolveMove(dir, s.state)
	s.state = res.State
	s.stats.Moves++

	tr := TickResult{
		Moved:     true,
		Direction: dir,
		Changed:   res.Changed,
	}
	if res.Status == engine.StatusNextBlockPlease {
		tr.Cascade, tr.Advanced = s.advance()
		before := res.Board
		tr.Changed = append(tr.Changed, engine.Diff(before, s.state.Board)...)
	}
	tr.Status = s.state.Status
	return tr
}

// advance settles the board after a block has locked in and brings in the
// next block, or ends the game when the stream is exhausted.
func (s *Session) advance() (engine.CascadeReport, bool) {
	s.stats.BlocksPlaced++

	// With removal off the cascade only settles floating cells.
	var rep engine.CascadeReport
	s.state.Board, rep = engine.ResolveCascadeReport(s.state.Board, s.cfg.RemovalThreshold())
	s.stats.CellsRemoved += rep.Removed
	s.stats.CascadeRounds += rep.Rounds

	if s.index+1 >= len(s.blocks) {
		s.state.Status = engine.StatusYouWon
		return rep, false
	}
	s.spawn(s.index + 1)
	s.state.Status = engine.StatusRunning
	return rep, true
}

// Snapshot returns the current engine state. Callers must not modify it.
func (s *Session) Snapshot() engine.State {
	return s.state
}

// Status returns the current status.
func (s *Session) Status() engine.Status {
	return s.state.Status
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// BlockIndex returns the index of the falling block in the stream.
func (s *Session) BlockIndex() int {
	return s.index
}

// BlockCount returns the length of the block stream.
func (s *Session) BlockCount() int {
	return len(s.blocks)
}

// NextBlock returns the block after the falling one, if any.
func (s *Session) NextBlock() (engine.Block, bool) {
	if s.index+1 >= len(s.blocks) {
		return nil, false
	}
	return s.blocks[s.index+1], true
}

// Headroom returns the number of hidden rows at the top of the board.
func (s *Session) Headroom() int {
	return s.cfg.Block.Height
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.GameConfig {
	return s.cfg
}
