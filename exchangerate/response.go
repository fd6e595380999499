package exchangerate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go-exchange-rate-bot/domain"
)

// ResultSuccess is the value of Response.Result for a successful lookup.
const ResultSuccess = "success"

// Response body of GET /v6/{apikey}/latest/{base}
type Response struct {
	Result          string          `json:"result"`
	ErrorType       string          `json:"error-type"`
	BaseCode        domain.Currency `json:"base_code"`
	ConversionRates Rates           `json:"conversion_rates"`
}

// Err returns a *ProviderError when the provider did not report success.
func (r Response) Err() error {
	if r.Result == ResultSuccess {
		return nil
	}
	return &ProviderError{Type: r.ErrorType}
}

// Table converts the response to a domain.Table for base.
func (r Response) Table(base domain.Currency) domain.Table {
	if r.BaseCode != "" {
		base = r.BaseCode
	}
	return domain.Table{
		Base:  base,
		Codes: r.ConversionRates.Codes,
		Rates: r.ConversionRates.Rates,
	}
}

// Rates conversion_rates, decoded with the provider's key order preserved.
type Rates struct {
	Codes []domain.Currency
	Rates domain.Rates
}

func (r *Rates) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = Rates{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("conversion_rates: expected object, got %v", tok)
	}

	rates := Rates{Rates: domain.Rates{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("conversion_rates: bad key %v", tok)
		}
		var value *float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("conversion_rates: bad rate value for %v: %w", key, err)
		}
		// a null rate means the code is not offered
		if value == nil {
			continue
		}
		code := domain.Currency(key)
		if _, seen := rates.Rates[code]; !seen {
			rates.Codes = append(rates.Codes, code)
		}
		rates.Rates[code] = domain.Rate(*value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = rates
	return nil
}
