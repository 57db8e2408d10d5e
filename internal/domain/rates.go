package domain

import "github.com/shopspring/decimal"

// Direction is the side of the trade from the shop's point of view: the shop
// buys foreign currency from a client, or sells foreign currency to a client.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

type RatePair struct {
	Buy  decimal.Decimal `json:"buy"`
	Sell decimal.Decimal `json:"sell"`
}

func (p RatePair) Rate(dir Direction) decimal.Decimal {
	if dir == DirectionBuy {
		return p.Buy
	}
	return p.Sell
}

// ExchangeRates is a process-wide singleton: three pairs quoted by the shop.
type ExchangeRates struct {
	DolarToPeso RatePair `json:"dolarToPeso"`
	EuroToDolar RatePair `json:"euroToDolar"`
	RealToDolar RatePair `json:"realToDolar"`
}

// PaymentAmount computes the counter-leg owed for trading amount of item,
// settled in payment, using the same direction for both conversion legs.
//
// The value is first normalized to dollars (pesos as the traded item pass
// through unchanged, a quirk inherited from the business) and then converted
// into the payment currency. Degenerate rates never fail: a zero divisor or a
// non-positive amount yields zero and the caller decides whether to log it.
func PaymentAmount(amount decimal.Decimal, item, payment Currency, dir Direction, rates ExchangeRates) decimal.Decimal {
	if amount.Sign() <= 0 {
		return decimal.Zero
	}

	valueInUSD := amount
	switch item {
	case CurrencyEuros:
		valueInUSD = amount.Mul(rates.EuroToDolar.Rate(dir))
	case CurrencyReales:
		valueInUSD = amount.Mul(rates.RealToDolar.Rate(dir))
	}

	switch payment {
	case CurrencyPesos:
		return valueInUSD.Mul(rates.DolarToPeso.Rate(dir))
	case CurrencyEuros:
		return safeDiv(valueInUSD, rates.EuroToDolar.Rate(dir))
	case CurrencyReales:
		return safeDiv(valueInUSD, rates.RealToDolar.Rate(dir))
	}
	return valueInUSD
}

func safeDiv(v, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return v.Div(rate)
}
