package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"solana-withdraw-alerts/internal/domain"
	"solana-withdraw-alerts/internal/services"
)

// WebhookController receives transaction-event batches from the
// webhook provider.
type WebhookController struct {
	processor *services.Processor
	log       zerolog.Logger
}

func NewWebhookController(processor *services.Processor, log zerolog.Logger) *WebhookController {
	return &WebhookController{
		processor: processor,
		log:       log.With().Str("component", "webhook").Logger(),
	}
}

func (wc *WebhookController) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhook", wc.handleWebhook)
}

// handleWebhook processes the batch synchronously, then acks. The
// sender treats the delivery as fire-and-forget, so the response is
// the success shape no matter what happened per event; a malformed
// body is logged and acked too, since a non-2xx would only provoke a
// retry storm.
func (wc *WebhookController) handleWebhook(ctx *gin.Context) {
	ack := gin.H{"received": true}

	body, err := ctx.GetRawData()
	if err != nil {
		wc.log.Warn().Err(err).Msg("failed to read webhook body")
		ctx.JSON(http.StatusOK, ack)
		return
	}

	events, err := decodeEvents(body)
	if err != nil {
		wc.log.Warn().Err(err).Int("bytes", len(body)).Msg("malformed webhook payload")
		ctx.JSON(http.StatusOK, ack)
		return
	}

	// Detach from the request lifetime: a sender that times out and
	// disconnects must not cancel deliveries for events already marked
	// in the dedup store, or the retry would be suppressed with the
	// alert never sent.
	wc.processor.Process(context.WithoutCancel(ctx.Request.Context()), events)
	ctx.JSON(http.StatusOK, ack)
}

// decodeEvents accepts either a single event object or an array of
// events and normalizes to a slice.
func decodeEvents(body []byte) ([]domain.Event, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	if trimmed[0] == '[' {
		var events []domain.Event
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fmt.Errorf("decode event array: %w", err)
		}
		return events, nil
	}
	var ev domain.Event
	if err := json.Unmarshal(trimmed, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return []domain.Event{ev}, nil
}
