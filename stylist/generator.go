package stylist

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"stylistapi/models"
	"stylistapi/services"
)

const (
	operationDescribe = "describe_outfits"
	operationRender   = "render_outfit_image"
)

// Generator drives one session through the description and image phases.
type Generator struct {
	provider services.StylistProvider
	metrics  *services.Metrics
	logger   zerolog.Logger
}

func NewGenerator(provider services.StylistProvider, metrics *services.Metrics, logger zerolog.Logger) *Generator {
	return &Generator{provider: provider, metrics: metrics, logger: logger}
}

// Run executes an attempt returned by Session.Begin. Failures are written to
// the session; the returned error is for logging and tests. ErrSuperseded is
// returned when a newer upload or attempt took over.
func (g *Generator) Run(ctx context.Context, session *Session, attempt Attempt) error {
	logger := g.logger.With().
		Str("session_id", session.ID).
		Uint64("attempt", attempt.ID).
		Logger()

	started := time.Now()
	err := g.run(ctx, session, attempt)
	switch {
	case err == nil:
		g.metrics.ObserveAttempt("completed")
		logger.Info().Dur("took", time.Since(started)).Msg("outfits generated")
	case errors.Is(err, ErrSuperseded):
		g.metrics.ObserveAttempt("superseded")
		logger.Info().Msg("generation attempt superseded, result discarded")
	default:
		if !session.fail(attempt.ID, err) {
			g.metrics.ObserveAttempt("superseded")
			logger.Info().Err(err).Msg("stale generation attempt failed, error discarded")
			return ErrSuperseded
		}
		g.metrics.ObserveAttempt("failed")
		logger.Error().Err(err).Msg("outfit generation failed")
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("session_id", session.ID)
			sentry.CaptureException(err)
		})
	}
	return err
}

func (g *Generator) run(ctx context.Context, session *Session, attempt Attempt) error {
	if attempt.Image == nil {
		return ErrNoImage
	}
	encoded, err := services.EncodeImage(bytes.NewReader(attempt.Image.Data), attempt.Image.MediaType)
	if err != nil {
		return err
	}

	started := time.Now()
	descriptions, err := g.provider.DescribeOutfits(ctx, encoded.Payload, encoded.MediaType)
	g.metrics.ObserveProviderCall(operationDescribe, started, err)
	if err != nil {
		return err
	}
	if !session.applyDescriptions(attempt.ID, *descriptions) {
		return ErrSuperseded
	}

	// One request at a time, in slot order.
	for _, occasion := range models.Occasions {
		if !session.beginSlot(attempt.ID, occasion) {
			return ErrSuperseded
		}
		started = time.Now()
		image, err := g.provider.RenderOutfitImage(ctx, descriptions.For(occasion))
		g.metrics.ObserveProviderCall(operationRender, started, err)
		if err != nil {
			return err
		}
		if !session.applyImage(attempt.ID, occasion, image.DataURL()) {
			return ErrSuperseded
		}
	}

	if !session.complete(attempt.ID) {
		return ErrSuperseded
	}
	return nil
}
