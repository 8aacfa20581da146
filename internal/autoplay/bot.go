// Package autoplay drives sessions without a human: a seeded bot picks a
// landing column for each block and steers toward it.
package autoplay

import (
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/stack-the-letter/internal/engine"
	"github.com/vovakirdan/stack-the-letter/internal/session"
)

// Bot chooses a target column for every new block and holds the keys that
// move the block there. With probability Noise it picks a random column
// instead of the deepest landing spot.
type Bot struct {
	Noise float64

	rng    *rand.Rand
	block  int
	target int
	aimed  bool
}

// New returns a bot whose choices are fully determined by seed.
func New(seed uint64) *Bot {
	return &Bot{
		Noise: 0.1,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next returns the intent to hold for the coming tick.
func (b *Bot) Next(s *session.Session) session.Intent {
	st := s.Snapshot()
	if st.Status != engine.StatusRunning || st.Block.IsEmpty() {
		return session.Intent{}
	}
	if !b.aimed || b.block != s.BlockIndex() {
		b.block = s.BlockIndex()
		b.target = b.pickColumn(st)
		b.aimed = true
	}
	switch {
	case st.Position.X < b.target:
		return session.Intent{Right: true}
	case st.Position.X > b.target:
		return session.Intent{Left: true}
	default:
		return session.Intent{Accelerate: true}
	}
}

// pickColumn returns the x at which the falling block would come to rest
// deepest, breaking ties at random.
func (b *Bot) pickColumn(st engine.State) int {
	maxX := st.Board.Width() - st.Block.Width()
	if maxX < 0 {
		return st.Position.X
	}
	if b.rng.Float64() < b.Noise {
		return b.rng.IntN(maxX + 1)
	}

	tops := surface(st)
	bottoms := profile(st.Block)

	best, bestY, ties := st.Position.X, -1<<31, 0
	for x := 0; x <= maxX; x++ {
		y := landing(tops, bottoms, x)
		switch {
		case y > bestY:
			best, bestY, ties = x, y, 1
		case y == bestY:
			ties++
			if b.rng.IntN(ties) == 0 {
				best = x
			}
		}
	}
	return best
}

// surface returns, per column, the row of the highest settled cell or the
// board height when the column is empty. Cells of the falling block are
// ignored.
func surface(st engine.State) []int {
	h, w := engine.Dimensions(st.Board)
	tops := make([]int, w)
	for c := 0; c < w; c++ {
		tops[c] = h
		for r := 0; r < h; r++ {
			if st.Board[r][c] == engine.Empty || ownedByBlock(st, r, c) {
				continue
			}
			tops[c] = r
			break
		}
	}
	return tops
}

func ownedByBlock(st engine.State, r, c int) bool {
	br, bc := r-st.Position.Y, c-st.Position.X
	v, ok := engine.At(st.Block, br, bc)
	return ok && v != engine.Empty
}

// profile returns the lowest active row of each block column, or -1 for an
// empty column.
func profile(block engine.Block) []int {
	out := make([]int, block.Width())
	for c := range out {
		out[c] = -1
		for r := block.Height() - 1; r >= 0; r-- {
			if block[r][c] != engine.Empty {
				out[c] = r
				break
			}
		}
	}
	return out
}

// landing returns the top row the block would occupy when dropped straight
// down at column x.
func landing(tops, bottoms []int, x int) int {
	y := 1 << 30
	for j, bot := range bottoms {
		if bot < 0 {
			continue
		}
		if v := tops[x+j] - 1 - bot; v < y {
			y = v
		}
	}
	return y
}

// Outcome is the end state of an unattended run.
type Outcome struct {
	Status engine.Status
	Stats  session.Stats
	Ticks  int
}

// Run starts s and ticks it every step with the bot's intents until the
// session ends or maxTicks is reached. A run cut short reports the running
// status.
func Run(s *session.Session, bot *Bot, step time.Duration, maxTicks int) Outcome {
	var now time.Duration
	s.Start(now)
	ticks := 0
	for ticks < maxTicks && !s.Status().Terminal() {
		now += step
		s.Tick(bot.Next(s), now)
		ticks++
	}
	return Outcome{Status: s.Status(), Stats: s.Stats(), Ticks: ticks}
}
