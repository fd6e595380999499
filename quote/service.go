package quote

import (
	"context"
	"fmt"

	"go-exchange-rate-bot/alias"
	"go-exchange-rate-bot/exchangerate"
)

// Service answers exchange rate questions with user facing text.
// Every outcome, failures included, is a message meant for the end user.
type Service interface {
	// Rate the rate from base to target.
	Rate(ctx context.Context, base, target string) string
	// All every rate the provider knows for base.
	All(ctx context.Context, base string) string
}

type service struct {
	// aliases resolves user input to currency codes
	aliases alias.Table

	// rates looks up the latest exchange rates
	rates exchangerate.Service

	formatter Formatter
}

// NewService constructs a valid Service
func NewService(aliases alias.Table, rates exchangerate.Service, formatter Formatter) Service {
	return &service{
		aliases:   aliases,
		rates:     rates,
		formatter: formatter,
	}
}

func (s *service) Rate(ctx context.Context, base, target string) string {
	baseCode := s.aliases.Resolve(base)
	targetCode := s.aliases.Resolve(target)

	response, err := s.rates.Latest(ctx, baseCode)
	if err != nil {
		return s.formatter.Failure(fmt.Errorf("rate [%v -> %v]: %w", baseCode, targetCode, err))
	}
	if err := response.Err(); err != nil {
		return s.formatter.Failure(err)
	}

	return s.formatter.Single(response.Table(baseCode), targetCode, target)
}

func (s *service) All(ctx context.Context, base string) string {
	baseCode := s.aliases.Resolve(base)

	response, err := s.rates.Latest(ctx, baseCode)
	if err != nil {
		return s.formatter.Failure(fmt.Errorf("rates [%v]: %w", baseCode, err))
	}
	if err := response.Err(); err != nil {
		return s.formatter.Failure(err)
	}

	return s.formatter.All(response.Table(baseCode))
}
