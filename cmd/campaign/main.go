package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/allpackers/campaign/internal/campaign"
	"github.com/allpackers/campaign/internal/config"
	"github.com/allpackers/campaign/internal/delivery"
	"github.com/allpackers/campaign/internal/logger"
	"github.com/allpackers/campaign/internal/models"
	"github.com/allpackers/campaign/internal/notify"
	emailprovider "github.com/allpackers/campaign/internal/providers/email"
	"github.com/allpackers/campaign/internal/render"
	"github.com/allpackers/campaign/internal/roster"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fail("config load", err)
	}

	baseLogger, runLog, err := logger.NewWithRunLog(cfg.App.Env, cfg.App.LogLevel, cfg.Campaign.LogFile)
	if err != nil {
		fail("run log init", err)
	}
	log := baseLogger.With().
		Str("service", "campaign").
		Str("run_id", uuid.NewString()).
		Logger()
	defer func() {
		if err := runLog.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close run log")
		}
	}()

	log.Info().Msg("email campaign started")

	template, err := render.Load(cfg.Campaign.TemplateFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Campaign.TemplateFile).Msg("failed to load campaign template")
	}

	recipients := roster.Load(cfg.Campaign.RecipientsFile, log.With().Str("component", "roster").Logger())

	provider, err := emailprovider.New(cfg.Campaign.Provider, cfg.SMTP, log.With().Str("component", "email-provider").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise email provider")
	}

	courier, err := delivery.NewCourier(provider, cfg.SMTP.From, log.With().Str("component", "courier").Logger(),
		delivery.WithSendTimeout(time.Duration(cfg.Timeouts.SendTimeoutSeconds)*time.Second))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise courier")
	}

	pipeline, err := campaign.New(campaign.Dependencies{
		Renderer: template,
		Courier:  courier,
		Logger:   log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise campaign pipeline")
	}

	summary, err := pipeline.Run(ctx, recipients)
	if err != nil {
		log.Fatal().Err(err).Msg("campaign run aborted")
	}

	logSummary(log, summary)

	notifier, err := notify.New(cfg.SMTP, cfg.Admin.Email, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialise notifier")
		return
	}
	if err := notifier.SendRunLog(cfg.Campaign.LogFile); err != nil {
		log.Error().Err(err).Msg("failed to email run log to admin")
	}
}

// logSummary records the final tally plus one line per failed recipient so
// the mailed log file carries the full picture of the run.
func logSummary(log zerolog.Logger, summary *models.RunSummary) {
	log.Info().
		Int("total", summary.Total()).
		Int("sent", summary.SuccessCount).
		Int("failed", summary.FailureCount).
		Dur("elapsed", summary.FinishedAt.Sub(summary.StartedAt)).
		Msg("email campaign finished")

	for _, outcome := range summary.Failed() {
		log.Error().
			Str("name", outcome.Name).
			Str("email", outcome.Email).
			Str("reason", outcome.Reason).
			Msg("delivery failed")
	}
}

func fail(stage string, err error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger.Fatal().Err(err).Str("stage", stage).Msg("email campaign init failed")
}
