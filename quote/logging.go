package quote

import (
	"context"
	"time"

	"github.com/go-kit/log"
)

// loggingService decorates a quote.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Rate(ctx context.Context, base, target string) (reply string) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "rate",
			"base", base,
			"target", target,
			"reply", reply,
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.next.Rate(ctx, base, target)
}

func (s *loggingService) All(ctx context.Context, base string) (reply string) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "all",
			"base", base,
			"reply_bytes", len(reply),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.next.All(ctx, base)
}
