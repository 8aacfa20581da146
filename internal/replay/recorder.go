package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/stack-the-letter/internal/config"
	"github.com/vovakirdan/stack-the-letter/internal/engine"
	"github.com/vovakirdan/stack-the-letter/internal/session"
)

// Recorder wraps a session and logs every driver call made through it.
type Recorder struct {
	*session.Session
	replay Replay
}

// NewRecorder creates a session and starts a recording for it.
func NewRecorder(h Header, cfg config.GameConfig, blocks []engine.Block) (*Recorder, error) {
	s, err := session.New(cfg, blocks)
	if err != nil {
		return nil, err
	}
	h.Version = Version
	if h.RecordedAt.IsZero() {
		h.RecordedAt = time.Now().UTC()
	}
	return &Recorder{
		Session: s,
		replay: Replay{
			Header: h,
			Config: cfg,
			Blocks: blocks,
		},
	}, nil
}

// Start records and forwards a start.
func (r *Recorder) Start(now time.Duration) {
	r.replay.Frames = append(r.replay.Frames, Frame{At: now, Kind: EventStart})
	r.Session.Start(now)
}

// Stop records and forwards a stop.
func (r *Recorder) Stop() {
	r.replay.Frames = append(r.replay.Frames, Frame{Kind: EventStop})
	r.Session.Stop()
}

// Tick records and forwards a tick. Ticks that cannot change anything,
// because the session is not running, are not recorded.
func (r *Recorder) Tick(in session.Intent, now time.Duration) session.TickResult {
	if r.Session.Status() == engine.StatusRunning {
		r.replay.Frames = append(r.replay.Frames, Frame{At: now, Kind: EventTick, Intent: EncodeIntent(in)})
	}
	return r.Session.Tick(in, now)
}

// Replay returns the recording with the session's current outcome.
func (r *Recorder) Replay() Replay {
	out := r.replay
	out.Frames = append([]Frame(nil), r.replay.Frames...)
	out.Outcome = OutcomeOf(r.Session)
	return out
}

// Play runs a replay on a fresh session and returns that session.
func Play(r Replay) (*session.Session, error) {
	s, err := session.New(r.Config, r.Blocks)
	if err != nil {
		return nil, fmt.Errorf("replay: rebuilding session: %w", err)
	}
	for _, f := range r.Frames {
		switch f.Kind {
		case EventStart:
			s.Start(f.At)
		case EventStop:
			s.Stop()
		case EventTick:
			s.Tick(DecodeIntent(f.Intent), f.At)
		default:
			return nil, fmt.Errorf("replay: unknown frame kind %d", f.Kind)
		}
	}
	return s, nil
}

// Verify plays a replay and checks that it reproduces the recorded outcome.
func Verify(r Replay) (Outcome, error) {
	s, err := Play(r)
	if err != nil {
		return Outcome{}, err
	}
	got := OutcomeOf(s)
	if got.Status != r.Outcome.Status || got.BoardHash != r.Outcome.BoardHash {
		return got, fmt.Errorf("%w: status %s want %s, board %.12s want %.12s",
			ErrMismatch, got.Status, r.Outcome.Status, got.BoardHash, r.Outcome.BoardHash)
	}
	return got, nil
}
