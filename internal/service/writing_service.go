package service

import (
	"context"
	"strings"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/pkg/llm"
	"career-compass-be/pkg/prompt"
)

type IWritingService interface {
	Improve(ctx context.Context, req *dto.ImproveTextRequest) (*dto.ImproveTextResponse, error)
}

type writingService struct {
	provider llm.LLMProvider
}

func NewWritingService(provider llm.LLMProvider) IWritingService {
	return &writingService{provider: provider}
}

func (s *writingService) Improve(ctx context.Context, req *dto.ImproveTextRequest) (*dto.ImproveTextResponse, error) {
	current := strings.TrimSpace(req.Current)
	kind := strings.TrimSpace(req.Type)
	if current == "" || kind == "" {
		return nil, apperror.Validation("Text and type are required")
	}

	text, err := generate(ctx, s.provider, "improve_text", prompt.ImproveText(current, kind))
	if err != nil {
		return nil, err
	}
	improved := strings.Trim(strings.TrimSpace(text), `"`)
	if improved == "" {
		return nil, apperror.MalformedAnalysis("The AI returned an empty text, please try again", nil)
	}
	return &dto.ImproveTextResponse{Improved: improved}, nil
}
