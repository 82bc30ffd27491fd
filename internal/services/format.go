package services

import (
	"fmt"
	"strconv"
	"strings"

	"solana-withdraw-alerts/internal/domain"
)

const explorerTxURL = "https://solscan.io/tx/"

// RenderMessage renders a summary into the Telegram Markdown alert.
// Account addresses and the signature are code-spanned so stray
// characters don't break the Markdown parse.
func RenderMessage(s domain.WithdrawalSummary) string {
	var b strings.Builder
	b.WriteString("🚨 *Withdrawal detected*\n\n")
	if s.Transfer != nil {
		fmt.Fprintf(&b, "*Token:* %s\n", s.Transfer.Token)
		fmt.Fprintf(&b, "*Amount:* %s\n", formatAmount(s.Transfer.Amount))
		fmt.Fprintf(&b, "*From:* `%s`\n", s.Transfer.From)
		fmt.Fprintf(&b, "*To:* `%s`\n\n", s.Transfer.To)
	}
	fmt.Fprintf(&b, "*Type:* %s\n", s.Type)
	if s.Source != "" {
		fmt.Fprintf(&b, "*Source:* %s\n", s.Source)
	}
	fmt.Fprintf(&b, "*Time:* %s\n", s.Timestamp)
	fmt.Fprintf(&b, "*Fee:* %s SOL\n", formatAmount(s.FeeSOL))
	fmt.Fprintf(&b, "*Signature:* `%s`\n", s.Signature)
	fmt.Fprintf(&b, "[View on Solscan](%s%s)", explorerTxURL, s.Signature)
	return b.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
