package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"neuropath/internal/adapt"
	"neuropath/internal/assistant"
	"neuropath/internal/audio"
	"neuropath/internal/config"
	"neuropath/internal/llm"
	llmclient "neuropath/internal/llmClient"
	"neuropath/internal/metrics"
	"neuropath/internal/observability"
	"neuropath/internal/session"
	"neuropath/internal/speech"
)

type App struct {
	cfg       *config.Config
	log       *slog.Logger
	logCloser io.Closer

	provider llm.Client
	session  *session.Session
	metrics  *metrics.Metrics
	server   *metrics.Server
}

// New builds the provider chain, the three clients and the session from cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, closer, err := observability.NewLogger(observability.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.File,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	slog.SetDefault(logger)

	var base llm.Client
	if cfg.Provider.Offline {
		base = newOfflineProvider()
		logger.Info("running offline with canned replies")
	} else {
		base, err = llmclient.NewGeminiClient(ctx, llmclient.GeminiOptions{
			Backend:  llmclient.Backend(cfg.Provider.Backend),
			APIKey:   cfg.Provider.APIKey,
			Project:  cfg.Provider.Project,
			Location: cfg.Provider.Location,
		})
		if err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("failed to init provider: %w", err)
		}
	}

	m := metrics.NewMetrics(nil)
	provider := llm.Wrap(base,
		llm.WithLogging(logger),
		llm.Instrument(m),
		llm.WithHook(slowCallHook{threshold: cfg.Provider.Timeout / 2, log: logger}),
		llm.RateLimit(cfg.Provider.RPS, cfg.Provider.Burst),
	)

	playerCommand := cfg.Speech.PlayerCommand
	sess, err := session.New(session.Options{
		Adapter: adapt.New(provider, adapt.Options{
			Model:       cfg.Models.Adapt,
			Temperature: cfg.Generation.AdaptTemperature,
			TopP:        cfg.Generation.AdaptTopP,
		}),
		Speech: speech.New(provider, speech.Options{
			Model: cfg.Models.Speech,
			Voice: cfg.Speech.Voice,
		}),
		Assistant: assistant.New(provider, assistant.Options{
			Model:       cfg.Models.Chat,
			Temperature: cfg.Generation.ChatTemperature,
			Logger:      logger,
		}),
		Player: audio.NewDevice(func() (audio.Player, error) {
			return audio.NewCommandPlayer(playerCommand)
		}),
		Timeout:   cfg.Provider.Timeout,
		CacheSize: cfg.Speech.CacheSize,
		ExportDir: cfg.Export.Dir,
		Recorder:  m,
		Logger:    logger,
	})
	if err != nil {
		_ = provider.Close()
		_ = closer.Close()
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		log:       logger,
		logCloser: closer,
		provider:  provider,
		session:   sess,
		metrics:   m,
	}
	if cfg.Metrics.Address != "" {
		a.server = metrics.NewServer(cfg.Metrics.Address, m.Handler(), logger)
	}
	logger.Info("neuropath ready", "provider", provider.Name(), "adapt_model", cfg.Models.Adapt)
	return a, nil
}

func (a *App) Session() *session.Session { return a.session }
func (a *App) Logger() *slog.Logger      { return a.log }

// Start serves metrics when an address is configured and blocks until
// Shutdown. Without an address it returns immediately.
func (a *App) Start() error {
	if a.server == nil {
		return nil
	}
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		errs = append(errs, a.server.Shutdown(ctx))
	}
	errs = append(errs, a.provider.Close())
	a.log.Info("neuropath stopped")
	errs = append(errs, a.logCloser.Close())
	return errors.Join(errs...)
}
