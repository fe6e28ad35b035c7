package assistant

import (
	"context"

	"github.com/paisapal/paisa/internal/logger"
)

// Service composes a primary advisor with the local fallback. Callers
// always get an answer; primary failures are logged and absorbed so the
// assistant can never block or break a core operation.
type Service struct {
	primary  Advisor
	fallback Advisor
}

// NewService builds the degrading advisor chain. primary may be nil, in
// which case every call answers locally.
func NewService(primary Advisor) *Service {
	return &Service{primary: primary, fallback: NewLocal()}
}

// Advise answers the prompt, degrading to the local generator when the
// primary advisor is missing or fails.
func (s *Service) Advise(ctx context.Context, prompt string, fin Context) string {
	if s.primary != nil {
		answer, err := s.primary.Advise(ctx, prompt, fin)
		if err == nil {
			return answer
		}
		logger.Log.Warn().Err(err).Msg("advisor degraded to local fallback")
	}
	answer, _ := s.fallback.Advise(ctx, prompt, fin)
	return answer
}
