package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stack-the-letter/internal/core"
	"github.com/vovakirdan/stack-the-letter/internal/games/stackletter"
	"github.com/vovakirdan/stack-the-letter/internal/platform/tui"
	"github.com/vovakirdan/stack-the-letter/internal/registry"
	"github.com/vovakirdan/stack-the-letter/internal/storage"
)

var (
	flagLetter     string
	flagDifficulty string
	flagRecord     string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a letter",
	Long: `Start playing a letter. The mode defaults to stackletter.

Controls:
  Left/A/H     - Move left
  Right/D/L    - Move right
  Down/S/J     - Drop faster
  Enter        - Start (or restart)
  Esc          - Stop
  B            - Leave (when stopped or finished)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fall speed starts at the lowest level, speeds up as blocks land
  normal - Starts at 30% of the speed-up
  hard   - Starts at 70% of the speed-up
  fixed  - No speed-up, stays at the config's initial level

Examples:
  stackletter play
  stackletter play talestack --letter thanks
  stackletter play --difficulty hard --record ./hello.replay`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLetter, "letter", stackletter.DefaultLetter, "Letter ID to play")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the session to this file")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := stackletter.ModeStackLetter
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'stackletter list' to see available modes.")
		os.Exit(1)
	}

	stackletter.SetDifficultyPreset(flagDifficulty)
	stackletter.SetLetter(flagLetter)
	stackletter.SetRecordPath(flagRecord)

	// Fail before the alt screen takes over the terminal.
	if _, err := stackletter.LoadSetup(gameID, stackletter.CurrentOptions()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
