package handler

import (
	"context"
	"net/http"

	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AIService interface {
	Transform(ctx context.Context, actor *entity.User, req *contract.TransformRequest) (*contract.TransformResponse, apierror.ErrorResponse)
	GetActions() []contract.ActionInfo
}

type DefaultAIRoute struct {
	AIService AIService
}

func NewAIDefault(aiService AIService) *DefaultAIRoute {
	return &DefaultAIRoute{AIService: aiService}
}

func (a *DefaultAIRoute) Transform(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.TransformRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	result, apierr := a.AIService.Transform(c.Request().Context(), user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, result)
}

func (a *DefaultAIRoute) GetActions(c echo.Context) error {
	if _, cerr := utils.GetUserFromContext(c); cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	resp := echo.Map{"actions": a.AIService.GetActions()}
	return c.JSON(http.StatusOK, &resp)
}
