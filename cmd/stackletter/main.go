// stackletter is a falling-block puzzle for the terminal: blocks carved from
// a letter drop onto a board, and the letter is read once every block is in.
//
// Usage:
//
//	stackletter list             - List game modes
//	stackletter letters          - List playable letters
//	stackletter play [mode]      - Play a letter
//	stackletter menu             - Pick mode and letter interactively
//	stackletter serve            - Start SSH server for remote play
//	stackletter results          - Show stored results
//	stackletter bench            - Measure letters with the autoplay bot
//	stackletter replay <file>    - Verify a recorded session
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed
//	--db <path>         - Set database path (default: ~/.stackletter/results.db)
//	--config <path>     - Game config YAML
//	--letters <dir>     - Extra letters directory
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stack-the-letter/internal/games/stackletter"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLettersDir string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stackletter",
	Short: "Stack the Letter - read a letter one falling block at a time",
	Long: `Stack the Letter cuts a short letter into blocks and drops them onto
the board one at a time. Steer each block into place; in stackletter mode
same-colored regions over the threshold vanish after every landing. Place
every block to read the letter.

Available commands:
  list     - Show game modes
  letters  - Show playable letters
  play     - Play a letter directly
  menu     - Interactive mode and letter picker
  serve    - Start SSH server for remote play
  results  - View stored results
  bench    - Run the autoplay bot over a letter
  replay   - Verify a recorded session

Examples:
  stackletter play --letter thanks
  stackletter play talestack --difficulty hard
  stackletter menu
  stackletter serve --ssh :2222
  stackletter bench --games 500 --workers 8`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		log.SetReportTimestamp(true)
		log.SetPrefix("stackletter")

		stackletter.SetConfigPath(flagConfig)
		stackletter.SetLettersDir(flagLettersDir)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stackletter/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLettersDir, "letters", "", "Directory with extra letter files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(lettersCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(replayCmd)
}
