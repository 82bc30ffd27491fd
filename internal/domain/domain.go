package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"solana-withdraw-alerts/internal/numbers"
)

// Event is one enhanced-transaction record as delivered by the webhook
// provider. Only the fields the alert pipeline consumes are modeled.
type Event struct {
	Signature      string          `json:"signature"`
	Timestamp      int64           `json:"timestamp"`
	Type           string          `json:"type"`
	Description    string          `json:"description"`
	Source         string          `json:"source"`
	Fee            int64           `json:"fee"`
	TokenTransfers []TokenTransfer `json:"tokenTransfers"`
}

// TokenTransfer is a single token movement inside an Event.
type TokenTransfer struct {
	FromUserAccount string `json:"fromUserAccount"`
	ToUserAccount   string `json:"toUserAccount"`
	Mint            string `json:"mint"`
	TokenAmount     Amount `json:"tokenAmount"`
}

// Amount is a token quantity that providers serialize inconsistently,
// sometimes as a JSON number and sometimes as a numeric string.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	f, err := numbers.Float(raw)
	if err != nil {
		return fmt.Errorf("tokenAmount: %w", err)
	}
	*a = Amount(f)
	return nil
}

// WithdrawalSummary is the normalized form of a withdrawal event,
// scoped to a single request's processing.
type WithdrawalSummary struct {
	Signature string          `json:"signature"`
	Timestamp string          `json:"timestamp"`
	Type      string          `json:"type"`
	Source    string          `json:"source,omitempty"`
	Transfer  *TransferDetail `json:"transfer,omitempty"`
	FeeSOL    float64         `json:"feeSol"`
}

// TransferDetail describes the first token transfer of a withdrawal.
// It is nil when the event carried no token transfers.
type TransferDetail struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Token  string  `json:"token"`
	Amount float64 `json:"amount"`
	Mint   string  `json:"mint"`
}
