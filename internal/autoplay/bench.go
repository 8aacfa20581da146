package autoplay

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/stack-the-letter/internal/config"
	"github.com/vovakirdan/stack-the-letter/internal/engine"
	"github.com/vovakirdan/stack-the-letter/internal/session"
)

// BenchStep is the simulated time between bot ticks.
const BenchStep = time.Second / 60

// BenchMaxTicks cuts off a run that never ends.
const BenchMaxTicks = 500_000

// BenchOptions configure a batch of bot games.
type BenchOptions struct {
	Games    int
	Workers  int
	Seed     uint64 // game i plays with Seed+i
	Noise    float64
	Progress bool // draw a progress bar on stderr
}

// Report summarizes a batch of bot games.
type Report struct {
	Games      int
	Won        int
	Lost       int
	Unfinished int

	MeanBlocks, StdBlocks float64
	MeanCells, StdCells   float64
	MeanMoves             float64

	Used time.Duration
}

// WinRate returns the share of games won.
func (r Report) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Won) / float64(r.Games)
}

// Bench plays opts.Games sessions of one letter on opts.Workers goroutines.
// Results do not depend on the worker count.
func Bench(cfg config.GameConfig, blocks []engine.Block, opts BenchOptions) (Report, error) {
	if opts.Games < 1 || opts.Workers < 1 {
		return Report{}, errors.New("autoplay: games and workers must be positive")
	}
	// Fail early on a setup every game would reject.
	if _, err := session.New(cfg, blocks); err != nil {
		return Report{}, err
	}

	outcomes := make([]Outcome, opts.Games)
	jobs := make(chan int, 2048)

	wg := new(sync.WaitGroup)
	wg.Add(opts.Workers)
	bar := pb.StartNew(opts.Games)
	if !opts.Progress {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < opts.Workers; i++ {
		go play(wg, cfg, blocks, opts, jobs, outcomes, bar)
	}
	for i := 0; i < opts.Games; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	rep := summarize(outcomes)
	rep.Used = used
	return rep, nil
}

func play(wg *sync.WaitGroup, cfg config.GameConfig, blocks []engine.Block, opts BenchOptions,
	jobs chan int, outcomes []Outcome, bar *pb.ProgressBar) {
	defer wg.Done()
	for i := range jobs {
		s, _ := session.New(cfg, blocks) // validated by Bench
		bot := New(opts.Seed + uint64(i))
		bot.Noise = opts.Noise
		outcomes[i] = Run(s, bot, BenchStep, BenchMaxTicks)
		bar.Increment()
	}
}

func summarize(outcomes []Outcome) Report {
	rep := Report{Games: len(outcomes)}
	blocks := make([]float64, len(outcomes))
	cells := make([]float64, len(outcomes))
	moves := make([]float64, len(outcomes))
	for i, o := range outcomes {
		switch o.Status {
		case engine.StatusYouWon:
			rep.Won++
		case engine.StatusGameOver:
			rep.Lost++
		default:
			rep.Unfinished++
		}
		blocks[i] = float64(o.Stats.BlocksPlaced)
		cells[i] = float64(o.Stats.CellsRemoved)
		moves[i] = float64(o.Stats.Moves)
	}
	if len(outcomes) == 0 {
		return rep
	}
	rep.MeanBlocks = stat.Mean(blocks, nil)
	rep.MeanCells = stat.Mean(cells, nil)
	rep.MeanMoves = stat.Mean(moves, nil)
	if len(outcomes) > 1 {
		rep.StdBlocks = stat.StdDev(blocks, nil)
		rep.StdCells = stat.StdDev(cells, nil)
	}
	return rep
}
