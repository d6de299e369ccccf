package session

import "errors"

var (
	// ErrSuperseded is returned by Adapt when a newer adaptation was started
	// before this one finished; its response was discarded.
	ErrSuperseded = errors.New("adaptation superseded by a newer request")

	// ErrBusy is returned by ReadAloud while speech is pending or playing.
	ErrBusy = errors.New("already reading aloud")

	// ErrNoResult is returned when an action needs an adapted result.
	ErrNoResult = errors.New("no adapted content yet")

	// ErrNoAudio is returned by a WAV export before anything was read aloud.
	ErrNoAudio = errors.New("no speech audio yet")
)

type AdaptState int

const (
	AdaptIdle AdaptState = iota
	AdaptPending
	AdaptReady
	AdaptFailed
)

func (s AdaptState) String() string {
	switch s {
	case AdaptPending:
		return "pending"
	case AdaptReady:
		return "ready"
	case AdaptFailed:
		return "failed"
	default:
		return "idle"
	}
}

type SpeechState int

const (
	SpeechIdle SpeechState = iota
	SpeechPending
	SpeechPlaying
)

func (s SpeechState) String() string {
	switch s {
	case SpeechPending:
		return "pending"
	case SpeechPlaying:
		return "playing"
	default:
		return "idle"
	}
}

// Recorder receives session-level observations. metrics.Metrics implements it.
type Recorder interface {
	ObserveAdaptation(profile, outcome string)
	StaleResponse()
	SpeechCacheHit()
}

const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomeStale = "stale"
)

type nopRecorder struct{}

func (nopRecorder) ObserveAdaptation(string, string) {}
func (nopRecorder) StaleResponse()                   {}
func (nopRecorder) SpeechCacheHit()                  {}
