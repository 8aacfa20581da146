// Package replay records the input of a session and plays it back. Sessions
// are deterministic, so the recorded intents and their timestamps reproduce
// the final board exactly.
package replay

import (
	"bufio"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/stack-the-letter/internal/config"
	"github.com/vovakirdan/stack-the-letter/internal/engine"
	"github.com/vovakirdan/stack-the-letter/internal/session"
)

// Version is the current replay format version.
const Version = 1

// ErrMismatch is returned when playback does not reproduce the recording.
var ErrMismatch = errors.New("replay: playback diverged from recording")

// Header identifies a replay. It is written as a JSON line in front of the
// body so tools can read it without decoding the frames.
type Header struct {
	Version    int       `json:"version"`
	LetterID   string    `json:"letter_id"`
	Mode       string    `json:"mode"`
	RecordedAt time.Time `json:"recorded_at"`
}

// EventKind is the type of a recorded frame.
type EventKind uint8

const (
	EventTick EventKind = iota
	EventStart
	EventStop
)

// Frame is one recorded driver call.
type Frame struct {
	At     time.Duration
	Kind   EventKind
	Intent uint8 // bit 0 left, bit 1 right, bit 2 accelerate
}

// Outcome is the state a replay must reproduce.
type Outcome struct {
	Status    string
	BoardHash string
	Stats     session.Stats
}

// Replay is a complete recording.
type Replay struct {
	Header  Header
	Config  config.GameConfig
	Blocks  []engine.Block
	Frames  []Frame
	Outcome Outcome
}

// EncodeIntent packs an intent into a frame byte.
func EncodeIntent(in session.Intent) uint8 {
	var b uint8
	if in.Left {
		b |= 1
	}
	if in.Right {
		b |= 2
	}
	if in.Accelerate {
		b |= 4
	}
	return b
}

// DecodeIntent unpacks a frame byte.
func DecodeIntent(b uint8) session.Intent {
	return session.Intent{
		Left:       b&1 != 0,
		Right:      b&2 != 0,
		Accelerate: b&4 != 0,
	}
}

// BoardHash returns a stable digest of a board.
func BoardHash(b engine.Board) string {
	h := sha256.New()
	for _, row := range b {
		cells := make([]byte, len(row))
		for i, c := range row {
			cells[i] = byte(c)
		}
		h.Write(cells)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// OutcomeOf captures the current outcome of a session.
func OutcomeOf(s *session.Session) Outcome {
	return Outcome{
		Status:    s.Status().String(),
		BoardHash: BoardHash(s.Snapshot().Board),
		Stats:     s.Stats(),
	}
}

// Write stores a replay as a zstd stream: a JSON header line followed by the
// gob-encoded replay.
func Write(path string, r Replay) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Encode(f, r); err != nil {
		return err
	}
	return f.Close()
}

// Encode writes r to w in the format used by Write.
func Encode(w io.Writer, r Replay) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriter(enc)
	hb, err := json.Marshal(r.Header)
	if err != nil {
		return fmt.Errorf("replay: encoding header: %w", err)
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&r); err != nil {
		return fmt.Errorf("replay: gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return enc.Close()
}

// Read loads a replay written by Write.
func Read(path string) (Replay, error) {
	var r Replay
	f, err := os.Open(path)
	if err != nil {
		return r, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return r, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return r, fmt.Errorf("replay: reading header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return r, fmt.Errorf("replay: decoding header: %w", err)
	}
	if h.Version != Version {
		return r, fmt.Errorf("replay: unsupported version %d", h.Version)
	}

	if err := gob.NewDecoder(br).Decode(&r); err != nil {
		return r, fmt.Errorf("replay: gob decode: %w", err)
	}
	return r, nil
}
