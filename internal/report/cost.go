package report

import "github.com/routr/backend/internal/domain"

// Per-token list prices in US dollars.
const (
	PromptPricePerToken     = 0.01 / 1000
	CompletionPricePerToken = 0.03 / 1000
)

// Cost returns the nominal dollar cost of a completion call with usage u.
func Cost(u domain.Usage) float64 {
	return float64(u.PromptTokens)*PromptPricePerToken +
		float64(u.CompletionTokens)*CompletionPricePerToken
}
