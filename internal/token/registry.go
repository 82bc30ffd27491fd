// Package token resolves Solana mint addresses to display symbols.
package token

// knownMints maps the mints the operator cares about to their symbols.
var knownMints = map[string]string{
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": "USDC",
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": "USDT",
	"So11111111111111111111111111111111111111112":  "SOL",
	"DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263": "BONK",
}

// Resolve returns the display symbol for a mint. Unknown mints fall
// back to a truncated form of the address so the alert stays readable.
func Resolve(mint string) string {
	if sym, ok := knownMints[mint]; ok {
		return sym
	}
	if len(mint) >= 8 {
		return mint[:8] + "..."
	}
	return mint
}
