package domain

import "fmt"

type Currency string

const (
	CurrencyDolares Currency = "dolares"
	CurrencyEuros   Currency = "euros"
	CurrencyReales  Currency = "reales"
	CurrencyPesos   Currency = "pesos"
)

// Currencies lists every supported currency in a fixed order.
var Currencies = []Currency{CurrencyDolares, CurrencyEuros, CurrencyReales, CurrencyPesos}

// ParseCurrency rejects anything outside the closed set. User input never
// indexes a balance map directly.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case CurrencyDolares, CurrencyEuros, CurrencyReales, CurrencyPesos:
		return Currency(s), nil
	}
	return "", fmt.Errorf("unknown currency %q", s)
}

func (c Currency) Valid() bool {
	_, err := ParseCurrency(string(c))
	return err == nil
}
