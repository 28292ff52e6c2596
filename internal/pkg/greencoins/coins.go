// Package greencoins holds the pure gamification rules of GEA: how a
// transaction amount turns into green coins and how a coin total maps
// onto the level table.
package greencoins

import "math"

// CoinRatio is the amount of pesos that earns one green coin.
const CoinRatio = 500

// CoinsFor returns the green coins awarded for a transaction.
// Non-sustainable purchases and non-positive amounts earn nothing;
// otherwise one coin is granted per CoinRatio pesos, rounding up.
func CoinsFor(amount float64, isSustainable bool) int {
	if !isSustainable || amount <= 0 {
		return 0
	}

	return int(math.Ceil(amount / CoinRatio))
}
