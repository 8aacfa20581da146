package replay_test

import (
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stack-the-letter/internal/config"
	"github.com/vovakirdan/stack-the-letter/internal/engine"
	"github.com/vovakirdan/stack-the-letter/internal/replay"
	"github.com/vovakirdan/stack-the-letter/internal/session"
)

func smallGame(t *testing.T) (config.GameConfig, []engine.Block) {
	t.Helper()
	cfg := config.DefaultGameConfig()
	cfg.Board = config.BoardConfig{Columns: 8, Rows: 10}
	cfg.Block.Height = 2
	cfg.Cascade.Threshold = 6
	blocks := []engine.Block{
		{{1, 1, 0}, {1, 1, 1}},
		{{2, 0}, {2, 2}},
		{{1, 1, 1}, {0, 1, 0}},
		{{3, 3}, {3, 3}},
		{{1, 0, 1}, {1, 1, 1}},
	}
	return cfg, blocks
}

// record plays a random game through a recorder.
func record(t *testing.T, seed uint64) replay.Replay {
	t.Helper()
	cfg, blocks := smallGame(t)
	rec, err := replay.NewRecorder(replay.Header{LetterID: "test", Mode: "stackletter"}, cfg, blocks)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(seed, seed+1))
	now := time.Duration(0)
	rec.Start(now)
	for i := 0; i < 5000 && rec.Status() == engine.StatusRunning; i++ {
		now += 16 * time.Millisecond
		rec.Tick(replay.DecodeIntent(uint8(rng.IntN(8))), now)
	}
	require.True(t, rec.Status().Terminal())
	return rec.Replay()
}

func TestIntentEncoding(t *testing.T) {
	for b := uint8(0); b < 8; b++ {
		assert.Equal(t, b, replay.EncodeIntent(replay.DecodeIntent(b)))
	}
	assert.Equal(t, session.Intent{Left: true, Accelerate: true}, replay.DecodeIntent(5))
}

func TestVerifyReproducesRecording(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		r := record(t, seed)
		require.NotEmpty(t, r.Frames)

		got, err := replay.Verify(r)
		require.NoError(t, err, "seed %d", seed)
		assert.Equal(t, r.Outcome.Stats, got.Stats)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	r := record(t, 42)
	path := filepath.Join(t.TempDir(), "nested", "game.replay")

	require.NoError(t, replay.Write(path, r))
	loaded, err := replay.Read(path)
	require.NoError(t, err)

	assert.Equal(t, replay.Version, loaded.Header.Version)
	assert.Equal(t, "test", loaded.Header.LetterID)
	assert.Equal(t, r.Config, loaded.Config)
	assert.Len(t, loaded.Frames, len(r.Frames))

	_, err = replay.Verify(loaded)
	assert.NoError(t, err)
}

func TestVerifyDetectsTampering(t *testing.T) {
	r := record(t, 7)
	r.Outcome.BoardHash = replay.BoardHash(engine.MakeBoard(1, 1))

	_, err := replay.Verify(r)
	assert.ErrorIs(t, err, replay.ErrMismatch)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := replay.Read(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEncodeReportsWriteErrors(t *testing.T) {
	diskFull := errors.New("disk full")
	err := replay.Encode(failingWriter{err: diskFull}, record(t, 3))
	assert.ErrorIs(t, err, diskFull)
}
