package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stack-the-letter/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Verify a recorded session",
	Long: `Play back a replay written with 'play --record' and check that it
ends with the recorded status and board.

Examples:
  stackletter replay ./hello.replay`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	r, err := replay.Read(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Letter:    %s\n", r.Header.LetterID)
	fmt.Printf("Mode:      %s\n", r.Header.Mode)
	fmt.Printf("Recorded:  %s\n", r.Header.RecordedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Frames:    %d\n", len(r.Frames))

	got, err := replay.Verify(r)
	switch {
	case errors.Is(err, replay.ErrMismatch):
		fmt.Printf("Outcome:   %s (recorded %s)\n", got.Status, r.Outcome.Status)
		fmt.Fprintln(os.Stderr, "Replay does not reproduce the recorded session.")
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Outcome:   %s\n", got.Status)
	fmt.Printf("Blocks:    %d\n", got.Stats.BlocksPlaced)
	fmt.Printf("Cleared:   %d\n", got.Stats.CellsRemoved)
	fmt.Printf("Moves:     %d\n", got.Stats.Moves)
	fmt.Printf("Score:     %d\n", got.Stats.Score())
	fmt.Println("Verified.")
}
