// Package letters loads the hidden messages players uncover. A letter file
// carries the message text and the stream of pre-drawn pixel blocks that
// spell it.
package letters

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/stack-the-letter/internal/engine"
)

// Letter is a parsed letter ready for play.
type Letter struct {
	ID          string
	Title       string
	Author      string
	Salutation  string
	Message     string
	Regards     string
	BlockHeight int
	Blocks      []engine.Block
	FilePath    string // empty for built-in letters
}

// ValidationError contains details about an invalid letter.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// yamlLetter is the on-disk structure of a letter file.
type yamlLetter struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author,omitempty"`
	Salutation  string   `yaml:"salutation"`
	Message     string   `yaml:"message"`
	Regards     string   `yaml:"regards"`
	BlockHeight int      `yaml:"block_height"`
	Blocks      []string `yaml:"blocks"`
}

// Parse decodes a letter file. Block rows are strings of cell digits, with
// '.', ' ' or '0' for empty cells.
func Parse(data []byte) (Letter, error) {
	var yl yamlLetter
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Letter{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Letter{}, ValidationError{Code: "MISSING_ID", Message: "letter has no id"}
	}
	if len(yl.Blocks) == 0 {
		return Letter{}, ValidationError{Code: "NO_BLOCKS", Message: fmt.Sprintf("letter %s has no blocks", yl.ID)}
	}

	title := yl.Title
	if title == "" {
		title = yl.ID
	}

	l := Letter{
		ID:          yl.ID,
		Title:       title,
		Author:      yl.Author,
		Salutation:  yl.Salutation,
		Message:     yl.Message,
		Regards:     yl.Regards,
		BlockHeight: yl.BlockHeight,
	}

	for i, src := range yl.Blocks {
		rows, err := parseRows(src)
		if err != nil {
			return Letter{}, ValidationError{
				Code:    "BAD_CELL",
				Message: fmt.Sprintf("letter %s block %d: %v", yl.ID, i, err),
			}
		}
		if l.BlockHeight == 0 {
			l.BlockHeight = len(rows)
		}
		b, err := engine.NewBlock(rows, l.BlockHeight)
		if err != nil {
			return Letter{}, ValidationError{
				Code:    "BAD_SHAPE",
				Message: fmt.Sprintf("letter %s block %d: %v", yl.ID, i, err),
			}
		}
		if b.IsEmpty() {
			return Letter{}, ValidationError{
				Code:    "EMPTY_BLOCK",
				Message: fmt.Sprintf("letter %s block %d has no cells", yl.ID, i),
			}
		}
		l.Blocks = append(l.Blocks, b)
	}

	return l, nil
}

func parseRows(src string) ([][]engine.Cell, error) {
	var rows [][]engine.Cell
	for _, line := range strings.Split(strings.TrimRight(src, "\n"), "\n") {
		row := make([]engine.Cell, 0, len(line))
		for _, ch := range line {
			switch {
			case ch == '.' || ch == ' ' || ch == '0':
				row = append(row, engine.Empty)
			case ch >= '1' && ch <= '9':
				row = append(row, engine.Cell(ch-'0'))
			default:
				return nil, fmt.Errorf("unexpected cell %q", ch)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Fits checks the letter against a board: blocks must be exactly
// blockHeight rows tall and no wider than columns.
func (l Letter) Fits(columns, blockHeight int) error {
	if l.BlockHeight != blockHeight {
		return ValidationError{
			Code:    "BLOCK_HEIGHT",
			Message: fmt.Sprintf("letter %s uses %d-row blocks, board expects %d", l.ID, l.BlockHeight, blockHeight),
		}
	}
	for i, b := range l.Blocks {
		if b.Width() > columns {
			return ValidationError{
				Code:    "BLOCK_TOO_WIDE",
				Message: fmt.Sprintf("letter %s block %d is %d wide, board has %d columns", l.ID, i, b.Width(), columns),
			}
		}
	}
	return nil
}

// CellCount returns the number of colored cells across all blocks.
func (l Letter) CellCount() int {
	n := 0
	for _, b := range l.Blocks {
		n += engine.FilledCount(b)
	}
	return n
}

// Text returns the full message as shown on the victory screen.
func (l Letter) Text() string {
	var parts []string
	for _, s := range []string{l.Salutation, l.Message, l.Regards} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
