package handler

import (
	"fmt"
	"net/http"

	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AddonService interface {
	GetAddons(actor *entity.User) []*contract.AddonStatus
	EnableAddon(actor *entity.User, addonID string) ([]string, apierror.ErrorResponse)
	DisableAddon(actor *entity.User, addonID string) ([]string, apierror.ErrorResponse)
	GetCommands(actor *entity.User) *contract.AddonCommandsResponse
}

type DefaultAddonRoute struct {
	AddonService AddonService
}

func NewAddonDefault(addonService AddonService) *DefaultAddonRoute {
	return &DefaultAddonRoute{AddonService: addonService}
}

func (a *DefaultAddonRoute) GetAddons(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}
	return c.JSON(http.StatusOK, a.AddonService.GetAddons(user))
}

func (a *DefaultAddonRoute) EnableAddon(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	addonID := c.Param("id")
	active, apierr := a.AddonService.EnableAddon(user, addonID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{
		"message":       fmt.Sprintf("Add-on %s enabled", addonID),
		"active_addons": active,
	}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAddonRoute) DisableAddon(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	addonID := c.Param("id")
	active, apierr := a.AddonService.DisableAddon(user, addonID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{
		"message":       fmt.Sprintf("Add-on %s disabled", addonID),
		"active_addons": active,
	}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAddonRoute) GetCommands(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}
	return c.JSON(http.StatusOK, a.AddonService.GetCommands(user))
}
