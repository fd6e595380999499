package exchangerate

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"go-exchange-rate-bot/domain"
)

// loggingService decorates an exchangerate.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService return a new logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Latest(ctx context.Context, base domain.Currency) (response Response, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "latest",
			"base", base,
			"result", response.Result,
			"error_type", response.ErrorType,
			"rates", len(response.ConversionRates.Codes),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Latest(ctx, base)
}
