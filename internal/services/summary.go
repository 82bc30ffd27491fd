package services

import (
	"time"

	"solana-withdraw-alerts/internal/domain"
	"solana-withdraw-alerts/internal/token"
)

const lamportsPerSOL = 1e9

// Summarize normalizes a raw event into a withdrawal summary. Only the
// first token transfer is reported; an event without transfers still
// yields a summary, just with no transfer detail.
func Summarize(ev domain.Event) domain.WithdrawalSummary {
	s := domain.WithdrawalSummary{
		Signature: ev.Signature,
		Timestamp: time.Unix(ev.Timestamp, 0).UTC().Format(time.RFC3339),
		Type:      ev.Type,
		Source:    ev.Source,
		FeeSOL:    float64(ev.Fee) / lamportsPerSOL,
	}
	if len(ev.TokenTransfers) > 0 {
		t := ev.TokenTransfers[0]
		s.Transfer = &domain.TransferDetail{
			From:   t.FromUserAccount,
			To:     t.ToUserAccount,
			Token:  token.Resolve(t.Mint),
			Amount: float64(t.TokenAmount),
			Mint:   t.Mint,
		}
	}
	return s
}
