package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"solana-withdraw-alerts/internal/dedup"
	"solana-withdraw-alerts/internal/domain"
)

// Notifier delivers one rendered message to the chat endpoint.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Relay publishes processed summaries to a downstream sink.
type Relay interface {
	Publish(ctx context.Context, s domain.WithdrawalSummary) error
}

// Processor orchestrates the per-event pipeline: dedup check,
// withdrawal filter, decode, format, notify, optional relay.
type Processor struct {
	store    dedup.Store
	notifier Notifier
	relay    Relay // nil when no downstream topic is configured
	log      zerolog.Logger
}

func NewProcessor(store dedup.Store, notifier Notifier, relay Relay, log zerolog.Logger) *Processor {
	return &Processor{
		store:    store,
		notifier: notifier,
		relay:    relay,
		log:      log.With().Str("component", "processor").Logger(),
	}
}

// IsWithdrawal reports whether the event's type or description marks
// it as a withdrawal.
func IsWithdrawal(ev domain.Event) bool {
	return strings.Contains(strings.ToLower(ev.Type), "withdraw") ||
		strings.Contains(strings.ToLower(ev.Description), "withdraw")
}

// Process handles a batch strictly in order. No per-event outcome
// aborts the batch; failures are logged and the next event proceeds.
func (p *Processor) Process(ctx context.Context, events []domain.Event) {
	for _, ev := range events {
		p.processOne(ctx, ev)
	}
}

func (p *Processor) processOne(ctx context.Context, ev domain.Event) {
	if ev.Signature == "" {
		// Without a signature the event cannot be deduplicated, and a
		// redelivery would alert again on every attempt. Skip it.
		p.log.Warn().Str("type", ev.Type).Msg("event without signature, skipping")
		return
	}

	seen, err := p.store.Seen(ctx, ev.Signature)
	if err != nil {
		// Prefer a duplicate alert over a silently dropped one.
		p.log.Warn().Err(err).Str("signature", ev.Signature).Msg("dedup lookup failed, treating as unseen")
	}
	if seen {
		p.log.Debug().Str("signature", ev.Signature).Msg("duplicate delivery, skipping")
		return
	}

	// Mark before notifying: if the webhook sender retries because our
	// ack was slow, the retry must already find the signature recorded.
	// Non-matching events are recorded too so redeliveries of them are
	// not reconsidered.
	if err := p.store.Mark(ctx, ev.Signature); err != nil {
		p.log.Warn().Err(err).Str("signature", ev.Signature).Msg("dedup mark failed, continuing")
	}

	if !IsWithdrawal(ev) {
		return
	}

	summary := Summarize(ev)
	if err := p.notifier.Send(ctx, RenderMessage(summary)); err != nil {
		p.log.Error().Err(err).Str("signature", ev.Signature).Msg("alert delivery failed")
	} else {
		p.log.Info().Str("signature", ev.Signature).Str("type", ev.Type).Msg("withdrawal alert sent")
	}

	if p.relay != nil {
		if err := p.relay.Publish(ctx, summary); err != nil {
			p.log.Warn().Err(err).Str("signature", ev.Signature).Msg("summary relay failed")
		}
	}
}
