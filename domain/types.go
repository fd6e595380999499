package domain

// Currency a currency code
type Currency string

// Rate an exchange rate
type Rate float64

type Rates map[Currency]Rate

// Table exchange rates for one base currency.
// Codes keeps the order in which the provider listed the currencies.
type Table struct {
	Base  Currency
	Codes []Currency
	Rates Rates
}

// Lookup returns the rate from the table's base to currency.
func (t Table) Lookup(currency Currency) (Rate, bool) {
	rate, ok := t.Rates[currency]
	return rate, ok
}
