package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/stack-the-letter/internal/games/stackletter"
	"github.com/vovakirdan/stack-the-letter/internal/registry"
	"github.com/vovakirdan/stack-the-letter/internal/storage"
)

var (
	flagResultsLetter string
	flagResultsLimit  int
	flagResultsClear  bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [mode]",
	Short: "Show stored results",
	Long: `Display the best results of a mode and per-letter statistics.
The mode defaults to stackletter.

Examples:
  stackletter results
  stackletter results talestack --letter thanks
  stackletter results --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().StringVar(&flagResultsLetter, "letter", "", "Only show results for this letter")
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of results to show")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete all results of the mode")
}

func runResults(_ *cobra.Command, args []string) {
	mode := stackletter.ModeStackLetter
	if len(args) > 0 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'stackletter list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagResultsClear {
		if err := store.ClearResults(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			return
		}
		fmt.Printf("Results for %s cleared.\n", mode)
		return
	}

	results, err := store.TopResults(mode, flagResultsLetter, flagResultsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}

	p := message.NewPrinter(language.English)
	p.Printf("Results - %s\n\n", mode)

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'stackletter play %s' to record the first one!\n", mode)
		return
	}

	p.Printf("  %-4s  %-10s  %-6s  %8s  %6s  %7s  %6s  %s\n",
		"Rank", "Letter", "Result", "Score", "Blocks", "Cleared", "Time", "Date")
	for i, r := range results {
		p.Printf("  %-4d  %-10s  %-6s  %8d  %6d  %7d  %6s  %s\n",
			i+1, r.LetterID, r.Outcome, r.Score, r.BlocksPlaced, r.CellsRemoved,
			formatDuration(r.Duration.Seconds()), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(mode)
	if err != nil || len(stats) == 0 {
		return
	}
	fmt.Println()
	p.Printf("  %-10s  %6s  %6s  %8s  %8s  %s\n", "Letter", "Played", "Won", "Best", "Average", "Fewest moves")
	for _, ls := range stats {
		fewest := "-"
		if best, err := store.BestWin(mode, ls.LetterID); err == nil && best != nil {
			fewest = p.Sprintf("%d", best.Moves)
		}
		p.Printf("  %-10s  %6d  %5.0f%%  %8d  %8.1f  %s\n",
			ls.LetterID, ls.Played, ls.WinRate()*100, ls.HighScore, ls.AvgScore, fewest)
	}
}

func formatDuration(sec float64) string {
	s := int(sec)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
