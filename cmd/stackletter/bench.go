package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/stack-the-letter/internal/autoplay"
	"github.com/vovakirdan/stack-the-letter/internal/games/stackletter"
)

var (
	flagBenchGames      int
	flagBenchWorkers    int
	flagBenchLetter     string
	flagBenchMode       string
	flagBenchDifficulty string
	flagBenchNoise      float64
	flagBenchQuiet      bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure a letter with the autoplay bot",
	Long: `Play many unattended sessions of one letter and report how often the
bot finishes it. Every game is seeded from --seed, so a run is repeatable
whatever the worker count.

Examples:
  stackletter bench
  stackletter bench --letter thanks --games 2000 --workers 8
  stackletter bench --mode talestack --noise 0`,
	Run: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchGames, "games", 200, "Number of games to play")
	benchCmd.Flags().IntVar(&flagBenchWorkers, "workers", runtime.NumCPU(), "Concurrent workers")
	benchCmd.Flags().StringVar(&flagBenchLetter, "letter", stackletter.DefaultLetter, "Letter ID to play")
	benchCmd.Flags().StringVar(&flagBenchMode, "mode", stackletter.ModeStackLetter, "Game mode")
	benchCmd.Flags().StringVar(&flagBenchDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	benchCmd.Flags().Float64Var(&flagBenchNoise, "noise", 0.1, "Share of blocks the bot drops in a random column")
	benchCmd.Flags().BoolVar(&flagBenchQuiet, "quiet", false, "Hide the progress bar")
}

func runBench(_ *cobra.Command, _ []string) {
	setup, err := stackletter.LoadSetup(flagBenchMode, stackletter.Options{
		ConfigPath: flagConfig,
		Difficulty: flagBenchDifficulty,
		LettersDir: flagLettersDir,
		LetterID:   flagBenchLetter,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := message.NewPrinter(language.English)
	p.Printf("[MODE:%s] [LETTER:%s] [GAMES:%d] [WORKERS:%d]\n",
		setup.Mode, setup.Letter.ID, flagBenchGames, flagBenchWorkers)

	rep, err := autoplay.Bench(setup.Config, setup.Letter.Blocks, autoplay.BenchOptions{
		Games:    flagBenchGames,
		Workers:  flagBenchWorkers,
		Seed:     uint64(flagSeed),
		Noise:    flagBenchNoise,
		Progress: !flagBenchQuiet,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p.Printf("\n")
	p.Printf("  won         %d (%.1f%%)\n", rep.Won, rep.WinRate()*100)
	p.Printf("  lost        %d\n", rep.Lost)
	if rep.Unfinished > 0 {
		p.Printf("  unfinished  %d\n", rep.Unfinished)
	}
	p.Printf("  blocks      %.2f ± %.2f of %d\n", rep.MeanBlocks, rep.StdBlocks, len(setup.Letter.Blocks))
	p.Printf("  cleared     %.2f ± %.2f cells\n", rep.MeanCells, rep.StdCells)
	p.Printf("  moves       %.1f\n", rep.MeanMoves)
	p.Printf("  used        %v (%.0f games/s)\n", rep.Used.Round(time.Millisecond), float64(rep.Games)/max(rep.Used.Seconds(), 1e-9))
}
