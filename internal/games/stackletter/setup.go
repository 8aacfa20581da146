package stackletter

import (
	"fmt"

	"github.com/vovakirdan/stack-the-letter/internal/config"
	"github.com/vovakirdan/stack-the-letter/internal/letters"
)

// Mode IDs.
const (
	ModeStackLetter = "stackletter" // regions over the threshold vanish after each block
	ModeTaleStack   = "talestack"   // blocks only pile up
)

// DefaultLetter is played when no letter is selected.
const DefaultLetter = "hello"

// Selection made by the CLI before the game is created.
var (
	configPath       string
	difficultyPreset string
	lettersDir       string
	letterID         = DefaultLetter
	recordPath       string
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLettersDir sets the directory searched for letter files.
func SetLettersDir(dir string) {
	lettersDir = dir
}

// SetLetter selects the letter to play. An empty ID selects DefaultLetter.
func SetLetter(id string) {
	if id == "" {
		id = DefaultLetter
	}
	letterID = id
}

// SelectedLetter returns the currently selected letter ID.
func SelectedLetter() string {
	return letterID
}

// SetRecordPath makes every session write a replay to path when it ends.
// An empty path disables recording.
func SetRecordPath(path string) {
	recordPath = path
}

// Setup is everything a session of one mode needs.
type Setup struct {
	Mode   string
	Config config.GameConfig
	Letter letters.Letter
}

// Options select the files a Setup is loaded from.
type Options struct {
	ConfigPath string
	Difficulty string
	LettersDir string
	LetterID   string
}

// CurrentOptions returns the options set through the package setters.
func CurrentOptions() Options {
	return Options{
		ConfigPath: configPath,
		Difficulty: difficultyPreset,
		LettersDir: lettersDir,
		LetterID:   letterID,
	}
}

// LoadSetup loads the configuration and the letter for a mode. The letter's
// block height overrides the configured one, and talestack turns region
// removal off.
func LoadSetup(mode string, opts Options) (Setup, error) {
	if mode != ModeStackLetter && mode != ModeTaleStack {
		return Setup{}, fmt.Errorf("stackletter: unknown mode %q", mode)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return Setup{}, fmt.Errorf("stackletter: loading config: %w", err)
	}
	preset, err := config.ParsePreset(opts.Difficulty)
	if err != nil {
		return Setup{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if mode == ModeTaleStack {
		cfg.Cascade.Enabled = false
	}

	id := opts.LetterID
	if id == "" {
		id = DefaultLetter
	}
	letter, err := letters.NewLoader(opts.LettersDir).LoadByID(id)
	if err != nil {
		return Setup{}, fmt.Errorf("stackletter: %w", err)
	}
	cfg.Block.Height = letter.BlockHeight
	if err := letter.Fits(cfg.Board.Columns, cfg.Block.Height); err != nil {
		return Setup{}, fmt.Errorf("stackletter: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Setup{}, err
	}

	return Setup{Mode: mode, Config: cfg, Letter: letter}, nil
}
