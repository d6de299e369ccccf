// Package session holds the state of one NeuroPath session: the selected
// profile, the content source, the adapted result, read-aloud playback and
// the assistant transcript. It is safe for concurrent use; provider calls
// run outside the lock.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"neuropath/internal/adapt"
	"neuropath/internal/assistant"
	"neuropath/internal/audio"
	"neuropath/internal/export"
	"neuropath/internal/observability"
	"neuropath/internal/types"
)

const defaultCacheSize = 16

type Adapter interface {
	Adapt(ctx context.Context, req adapt.Request) (types.AdaptationResult, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (payload string, ok bool, err error)
}

type Assistant interface {
	Send(ctx context.Context, t *assistant.Transcript, contextText, userMessage string) (types.ChatMessage, error)
}

type Options struct {
	Adapter   Adapter
	Speech    Synthesizer
	Assistant Assistant
	// Player receives decoded speech. Usually an *audio.Device.
	Player audio.Player

	// Timeout bounds each provider call; zero leaves calls unbounded.
	Timeout   time.Duration
	CacheSize int
	ExportDir string

	Recorder Recorder
	Logger   *slog.Logger
	Now      func() time.Time
}

type Session struct {
	opts  Options
	log   *slog.Logger
	cache *lru.Cache[uint64, *audio.Buffer]

	mu         sync.Mutex
	profile    types.Profile
	source     types.Source
	attachment *types.Attachment

	seq        uint64
	adaptState AdaptState
	result     *types.AdaptationResult
	lastErr    error

	speech    SpeechState
	lastAudio *audio.Buffer

	typing     int
	transcript *assistant.Transcript
}

func New(opts Options) (*Session, error) {
	if opts.Adapter == nil || opts.Speech == nil || opts.Assistant == nil {
		return nil, fmt.Errorf("session: adapter, speech and assistant clients are required")
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cache, err := lru.New[uint64, *audio.Buffer](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("session: speech cache: %w", err)
	}
	return &Session{
		opts:       opts,
		log:        opts.Logger,
		cache:      cache,
		profile:    types.ProfileADHD,
		transcript: assistant.NewGreetingTranscript(),
	}, nil
}

// ---- inputs ----

func (s *Session) SelectProfile(p types.Profile) error {
	if !p.Valid() {
		return fmt.Errorf("unknown profile %q", p)
	}
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	return nil
}

func (s *Session) Profile() types.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// SetFreeText makes pasted text the active source. An empty value clears the
// source only if free text was active.
func (s *Session) SetFreeText(text string) {
	s.setSource(types.SourceText, text, types.FreeText(text))
}

// SetURL makes a URL the active source; note travels with it.
func (s *Session) SetURL(url, note string) {
	s.setSource(types.SourceURL, url, types.URLRef(strings.TrimSpace(url), note))
}

func (s *Session) SetSearchTopic(topic string) {
	s.setSource(types.SourceSearch, topic, types.SearchTopic(topic))
}

func (s *Session) setSource(kind types.SourceKind, value string, src types.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(value) == "" {
		if s.source.Kind() == kind {
			s.source = types.Source{}
		}
		return
	}
	s.source = src
}

func (s *Session) ClearSource() {
	s.mu.Lock()
	s.source = types.Source{}
	s.mu.Unlock()
}

func (s *Session) Source() types.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

func (s *Session) FreeText() string    { return s.Source().Text() }
func (s *Session) URL() string         { return s.Source().URL() }
func (s *Session) SearchTopic() string { return s.Source().Topic() }

// SetAttachment attaches a document or image; it is independent of the source.
func (s *Session) SetAttachment(a *types.Attachment) {
	s.mu.Lock()
	if a.Empty() {
		a = nil
	}
	s.attachment = a
	s.mu.Unlock()
}

func (s *Session) ClearAttachment() { s.SetAttachment(nil) }

func (s *Session) Attachment() *types.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attachment
}

// ---- adaptation ----

// Adapt rewrites the current source for the selected profile. Without any
// source or attachment it returns types.ErrNoContent and changes nothing.
// On failure the previous result is kept. A call overtaken by a newer one
// returns ErrSuperseded and leaves state to the newer call.
func (s *Session) Adapt(ctx context.Context) (types.AdaptationResult, error) {
	s.mu.Lock()
	req := adapt.Request{Source: s.source, Attachment: s.attachment, Profile: s.profile}
	if req.Source.Empty() && req.Attachment.Empty() {
		s.mu.Unlock()
		return types.AdaptationResult{}, types.ErrNoContent
	}
	s.seq++
	seq := s.seq
	s.adaptState = AdaptPending
	s.mu.Unlock()

	ctx = observability.WithTurn(ctx, fmt.Sprintf("adapt-%d", seq))
	log := observability.LoggerFromContext(ctx, s.log)
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := s.opts.Adapter.Adapt(callCtx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	profile := string(req.Profile)
	if seq != s.seq {
		log.Warn("discarding stale adaptation response", "latest", s.seq)
		s.opts.Recorder.StaleResponse()
		s.opts.Recorder.ObserveAdaptation(profile, outcomeStale)
		return types.AdaptationResult{}, ErrSuperseded
	}
	if err != nil {
		log.Error("adaptation failed", "profile", profile, "error", err)
		s.adaptState = AdaptFailed
		s.lastErr = err
		s.opts.Recorder.ObserveAdaptation(profile, outcomeError)
		return types.AdaptationResult{}, err
	}
	s.adaptState = AdaptReady
	s.lastErr = nil
	s.result = &res
	s.opts.Recorder.ObserveAdaptation(profile, outcomeOK)
	log.Info("adaptation ready", "profile", profile, "chars", len(res.Text), "sources", len(res.Sources))
	return res, nil
}

// Result returns the latest successful adaptation.
func (s *Session) Result() (types.AdaptationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return types.AdaptationResult{}, false
	}
	return *s.result, true
}

func (s *Session) AdaptState() AdaptState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adaptState
}

// LastError is the error of the latest failed adaptation, cleared on success.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) IsProcessing() bool { return s.AdaptState() == AdaptPending }

// ---- read aloud ----

// ReadAloud synthesizes the current result and plays it. The speech state
// is back to idle when it returns, whatever the outcome. A response without
// audio is not an error.
func (s *Session) ReadAloud(ctx context.Context) error {
	s.mu.Lock()
	if s.result == nil || s.result.Text == "" {
		s.mu.Unlock()
		return ErrNoResult
	}
	if s.speech != SpeechIdle {
		s.mu.Unlock()
		return ErrBusy
	}
	text := s.result.Text
	s.speech = SpeechPending
	s.mu.Unlock()
	defer s.setSpeech(SpeechIdle)

	buf, err := s.speechBuffer(ctx, text)
	if err != nil || buf == nil {
		return err
	}

	s.mu.Lock()
	s.lastAudio = buf
	s.speech = SpeechPlaying
	s.mu.Unlock()

	if s.opts.Player == nil {
		return audio.ErrNoPlayer
	}
	if err := s.opts.Player.Play(ctx, buf); err != nil {
		s.log.Warn("playback failed", "error", err)
		return fmt.Errorf("play speech: %w", err)
	}
	return nil
}

// speechBuffer returns decoded audio for text, from cache when possible.
// A nil buffer with nil error means the provider returned no audio.
func (s *Session) speechBuffer(ctx context.Context, text string) (*audio.Buffer, error) {
	key := xxhash.Sum64String(text)
	if buf, ok := s.cache.Get(key); ok {
		s.opts.Recorder.SpeechCacheHit()
		return buf, nil
	}

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	payload, ok, err := s.opts.Speech.Synthesize(callCtx, text)
	if err != nil {
		s.log.Warn("speech synthesis failed", "error", err)
		return nil, err
	}
	if !ok {
		s.log.Info("speech response carried no audio")
		return nil, nil
	}
	buf, err := audio.Decode(payload)
	if err != nil {
		s.log.Warn("speech decode failed", "error", err)
		return nil, err
	}
	s.cache.Add(key, buf)
	return buf, nil
}

func (s *Session) setSpeech(st SpeechState) {
	s.mu.Lock()
	s.speech = st
	s.mu.Unlock()
}

func (s *Session) SpeechState() SpeechState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speech
}

func (s *Session) IsSpeaking() bool { return s.SpeechState() != SpeechIdle }

// ---- chat ----

// Chat sends msg to the assistant with the current content as context. The
// transcript grows by one user and one assistant message.
func (s *Session) Chat(ctx context.Context, msg string) (types.ChatMessage, error) {
	if strings.TrimSpace(msg) == "" {
		return types.ChatMessage{}, assistant.ErrEmptyMessage
	}
	s.mu.Lock()
	resultText := ""
	if s.result != nil {
		resultText = s.result.Text
	}
	contextText := assistant.ContextText(resultText, s.source.Text()+s.source.Note())
	s.typing++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.typing--
		s.mu.Unlock()
	}()

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.opts.Assistant.Send(callCtx, s.transcript, contextText, msg)
}

func (s *Session) IsBotTyping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing > 0
}

// Transcript returns a snapshot of the chat history.
func (s *Session) Transcript() []types.ChatMessage { return s.transcript.Messages() }

// ---- export ----

// Export writes the result (or the last spoken audio for FormatWAV) into dir,
// or the configured export directory when dir is empty, and returns the path.
func (s *Session) Export(format export.Format, dir string) (string, error) {
	s.mu.Lock()
	profile := s.profile
	text := ""
	if s.result != nil {
		text = s.result.Text
	}
	lastAudio := s.lastAudio
	s.mu.Unlock()

	if text == "" {
		return "", ErrNoResult
	}
	var data []byte
	var err error
	if format == export.FormatWAV {
		if lastAudio == nil {
			return "", ErrNoAudio
		}
		data, err = export.WAV(lastAudio)
	} else {
		data, err = export.Render(format, text)
	}
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = s.opts.ExportDir
	}
	path, err := export.WriteFile(dir, export.FileName(profile, s.opts.Now(), format), data)
	if err != nil {
		return "", err
	}
	s.log.Info("exported result", "format", string(format), "path", path)
	return path, nil
}

// CopyResult puts the result text on the clipboard.
func (s *Session) CopyResult() error {
	res, ok := s.Result()
	if !ok || res.Text == "" {
		return ErrNoResult
	}
	return export.CopyToClipboard(res.Text)
}

// ---- availability ----

func (s *Session) CanAdapt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adaptState != AdaptPending && (!s.source.Empty() || !s.attachment.Empty())
}

func (s *Session) CanExport() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result != nil && s.result.Text != ""
}

func (s *Session) CanReadAloud() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result != nil && s.result.Text != "" && s.speech == SpeechIdle
}

func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Timeout > 0 {
		return context.WithTimeout(ctx, s.opts.Timeout)
	}
	return context.WithCancel(ctx)
}
