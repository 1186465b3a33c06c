package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/domain"
	"github.com/okanevale/temperament/internal/llm"
)

// DecisionService runs the full decision cycle: observe content, build a
// prompt from the unified context, ask the LLM for an action and record
// whatever was chosen.
type DecisionService struct {
	engine *PersonalityEngine
	client domain.LLMClient
	logger *zap.Logger
}

func NewDecisionService(engine *PersonalityEngine, client domain.LLMClient, logger *zap.Logger) *DecisionService {
	return &DecisionService{
		engine: engine,
		client: client,
		logger: logger,
	}
}

// DecideAction processes the content batch, asks the LLM what to do and
// records the resulting action. A provider failure degrades to a none
// action rather than an error.
func (s *DecisionService) DecideAction(ctx context.Context, content []domain.ContentItem) domain.Action {
	s.engine.ProcessContent(ctx, content)

	dc := s.engine.DecisionContext()
	prompt := llm.BuildDecisionPrompt(s.engine.Personality().Bio, content, dc)

	response, err := s.client.Generate(ctx, prompt, llm.DecisionSystemPrompt)
	if err != nil {
		s.logger.Error("LLM call failed", zap.Error(err))
		return domain.Action{Kind: domain.ActionNone, Reason: "LLM call failed"}
	}

	action := parseAction(response)

	var result *domain.ActionResult
	if action.Kind == domain.ActionResponse && len(content) > 0 {
		first := content[0]
		result = &domain.ActionResult{OriginalMessage: &first}
	}
	s.engine.RecordAction(ctx, action, result)

	return action
}

// parseAction decodes the model's reply. Malformed or unrecognized JSON
// falls back to treating the whole reply as message content.
func parseAction(response string) domain.Action {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var action domain.Action
	if err := json.Unmarshal([]byte(cleaned), &action); err == nil && validActionKind(action.Kind) {
		return action
	}

	return domain.Action{Kind: domain.ActionMessage, Content: cleaned}
}

func validActionKind(kind string) bool {
	switch kind {
	case domain.ActionMessage, domain.ActionPost, domain.ActionResponse, domain.ActionNone:
		return true
	}
	return false
}
