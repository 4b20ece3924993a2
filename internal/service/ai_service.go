package service

import (
	"context"

	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/infrastructure/ai"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// ProviderFactory resolves a provider by name. An empty name selects the
// configured default.
type ProviderFactory func(name string) (ai.Provider, error)

type AIService struct {
	Providers ProviderFactory
	Validate  *validator.Validate
}

func NewAIService(providers ProviderFactory, validate *validator.Validate) *AIService {
	return &AIService{
		Providers: providers,
		Validate:  validate,
	}
}

// Transform runs the requested action over the text with the actor's
// preferred provider. Provider resolution failures are client errors; a
// provider that resolves but fails mid-call is a server error.
func (a *AIService) Transform(ctx context.Context, actor *entity.User, req *contract.TransformRequest) (*contract.TransformResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	provider, err := a.Providers(actor.Settings.AIProvider)
	if err != nil {
		return nil, apierror.NewSimple(400, err.Error())
	}

	result, err := provider.TransformText(ctx, req.Text, req.Action, req.Context)
	if err != nil {
		log.Errorf("AI transform failed: %v", err)
		return nil, apierror.NewSimple(500, "AI transformation failed")
	}

	return &contract.TransformResponse{
		Text:   result,
		Action: req.Action,
	}, nil
}

func (a *AIService) GetActions() []contract.ActionInfo {
	descriptors := ai.AvailableActions()
	actions := make([]contract.ActionInfo, len(descriptors))
	for i, d := range descriptors {
		actions[i] = contract.ActionInfo{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
		}
	}
	return actions
}
