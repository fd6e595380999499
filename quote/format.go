package quote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go-exchange-rate-bot/domain"
	"go-exchange-rate-bot/exchangerate"
)

// Formatter renders lookups as plain text.
type Formatter struct {
	Messages Messages
}

// NewFormatter returns a Formatter for locale.
func NewFormatter(locale string) Formatter {
	return Formatter{Messages: MessagesFor(locale)}
}

// FormatRate renders a rate with the shortest exact decimal, never in exponent form.
// The provider's JSON spelling is not kept: 1.0 renders as "1" and 1e-05 as "0.00001".
func FormatRate(rate domain.Rate) string {
	return decimal.NewFromFloat(float64(rate)).String()
}

// Single renders the rate from table.Base to target.
// rawTarget is what the user typed and is echoed when target is unsupported.
func (f Formatter) Single(table domain.Table, target domain.Currency, rawTarget string) string {
	rate, ok := table.Lookup(target)
	if !ok {
		return fmt.Sprintf(f.Messages.Unsupported, rawTarget)
	}
	return fmt.Sprintf(f.Messages.Rate, table.Base, target, FormatRate(rate))
}

// All renders a header line then one line per currency, in table order.
func (f Formatter) All(table domain.Table) string {
	lines := make([]string, 0, len(table.Codes)+1)
	lines = append(lines, fmt.Sprintf(f.Messages.Header, table.Base))
	for _, code := range table.Codes {
		lines = append(lines, fmt.Sprintf(f.Messages.Line, code, FormatRate(table.Rates[code])))
	}
	return strings.Join(lines, "\n")
}

// Failure renders err. Provider errors show the provider's error type verbatim.
func (f Formatter) Failure(err error) string {
	var providerErr *exchangerate.ProviderError
	if errors.As(err, &providerErr) {
		if providerErr.Type == "" {
			return fmt.Sprintf(f.Messages.Failed, f.Messages.UnknownError)
		}
		return fmt.Sprintf(f.Messages.Failed, providerErr.Type)
	}
	return fmt.Sprintf(f.Messages.Failed, err)
}

// Usage renders the usage line for command.
func (f Formatter) Usage(command string) string {
	return fmt.Sprintf(f.Messages.Usage, command, command)
}
