package handler

import (
	"net/http"

	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(req *contract.RegisterRequest) (*contract.AuthResponse, apierror.ErrorResponse)
	Login(req *contract.LoginRequest) (*contract.AuthResponse, apierror.ErrorResponse)
	GetMe(actor *entity.User) *contract.UserResponse
	UpdateProfile(actor *entity.User, req *contract.UpdateProfileRequest) (*contract.UserResponse, apierror.ErrorResponse)
	ChangePassword(actor *entity.User, req *contract.ChangePasswordRequest) apierror.ErrorResponse
	UpdateSettings(actor *entity.User, req *contract.UpdateSettingsRequest) (*contract.UserResponse, apierror.ErrorResponse)
}

type DefaultUserRoute struct {
	UserService UserService
}

func NewUserDefault(userService UserService) *DefaultUserRoute {
	return &DefaultUserRoute{UserService: userService}
}

func (u *DefaultUserRoute) Register(c echo.Context) error {
	var req contract.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	auth, apierr := u.UserService.Register(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, auth)
}

func (u *DefaultUserRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	auth, apierr := u.UserService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, auth)
}

func (u *DefaultUserRoute) GetMe(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	resp := echo.Map{"user": u.UserService.GetMe(user)}
	return c.JSON(http.StatusOK, &resp)
}

func (u *DefaultUserRoute) UpdateProfile(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	updated, apierr := u.UserService.UpdateProfile(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Profile updated", "user": updated}
	return c.JSON(http.StatusOK, &resp)
}

func (u *DefaultUserRoute) ChangePassword(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	if apierr := u.UserService.ChangePassword(user, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Password changed successfully"}
	return c.JSON(http.StatusOK, &resp)
}

func (u *DefaultUserRoute) UpdateSettings(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	updated, apierr := u.UserService.UpdateSettings(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Settings updated", "user": updated}
	return c.JSON(http.StatusOK, &resp)
}
