package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stack-the-letter/internal/games/stackletter"
	"github.com/vovakirdan/stack-the-letter/internal/letters"
	"github.com/vovakirdan/stack-the-letter/internal/platform/tui"
	"github.com/vovakirdan/stack-the-letter/internal/registry"
	"github.com/vovakirdan/stack-the-letter/internal/storage"
)

var flagMenuDifficulty string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and a letter from a menu",
	Long: `Start in interactive menu mode.

Left/Right switch the mode, Up/Down pick the letter and Enter plays it.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k     - Choose letter
  Left/Right/h/l  - Choose mode
  Enter/Space     - Play
  Tab             - Results
  Q               - Quit

Examples:
  stackletter menu
  stackletter menu --fps 30
  stackletter menu --letters ./my-letters`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	catalog, err := letters.NewLoader(flagLettersDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading letters: %v\n", err)
		os.Exit(1)
	}
	stackletter.SetDifficultyPreset(flagMenuDifficulty)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg, catalog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size changes made while the menu was open
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}
		stackletter.SetLetter(menuResult.LetterID)

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
