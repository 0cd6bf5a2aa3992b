package services

import (
	"context"
	"strings"

	cartalk_errors "cartalk/pkg/errors"
	"cartalk/pkg/logger"
)

// FallbackAnswer is returned whenever the model errors out or comes back
// empty. Callers still get a 200; the raw upstream failure never reaches them.
const FallbackAnswer = "I'm unable to answer that question about cars right now."

// TextGenerator is the single call the assistant needs from a model client.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type AssistantService struct {
	model  TextGenerator
	logger *logger.Logger
}

func NewAssistantService(model TextGenerator, l *logger.Logger) *AssistantService {
	return &AssistantService{model: model, logger: l}
}

type Exchange struct {
	Question string
	Answer   string
}

// Ask validates and trims the question, forwards it to the model and returns
// the exchange. Model failures and empty replies are swallowed into the
// fallback answer.
func (s *AssistantService) Ask(ctx context.Context, question string) (Exchange, error) {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return Exchange{}, cartalk_errors.ErrInvalidInput
	}

	answer, err := s.model.GenerateContent(ctx, trimmed)
	if err != nil {
		if s.logger != nil {
			s.logger.Errorf("model call failed: %s", err)
		}
		answer = ""
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = FallbackAnswer
	}

	return Exchange{Question: trimmed, Answer: answer}, nil
}
