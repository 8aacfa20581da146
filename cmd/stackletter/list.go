package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stack-the-letter/internal/letters"
	"github.com/vovakirdan/stack-the-letter/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes",
	Long:  `Shows every registered game mode.`,
	Run:   runList,
}

var lettersCmd = &cobra.Command{
	Use:   "letters",
	Short: "List playable letters",
	Long: `Shows the built-in letters and those found in the --letters directory.
A file in the directory replaces a built-in letter with the same ID.`,
	Run: runLetters,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'stackletter play <id>' to play.")
}

func runLetters(_ *cobra.Command, _ []string) {
	catalog, err := letters.NewLoader(flagLettersDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading letters: %v\n", err)
		os.Exit(1)
	}
	if len(catalog) == 0 {
		fmt.Println("No letters available.")
		return
	}

	maxIDLen := 2
	for _, l := range catalog {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-24s  %6s  %5s  %s\n", maxIDLen, "ID", "Title", "Blocks", "Cells", "Source")
	fmt.Printf("  %-*s  %-24s  %6s  %5s  %s\n", maxIDLen, "--", "-----", "------", "-----", "------")
	for _, l := range catalog {
		source := "built-in"
		if l.FilePath != "" {
			source = l.FilePath
		}
		fmt.Printf("  %-*s  %-24s  %6d  %5d  %s\n", maxIDLen, l.ID, l.Title, len(l.Blocks), l.CellCount(), source)
	}
}
