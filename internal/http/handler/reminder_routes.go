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

type ReminderService interface {
	GetReminders(actor *entity.User, includeCompleted bool) ([]*contract.ReminderResponse, apierror.ErrorResponse)
	CreateReminder(actor *entity.User, req *contract.CreateReminderRequest) (*contract.ReminderResponse, apierror.ErrorResponse)
	ParseReminder(ctx context.Context, actor *entity.User, req *contract.ParseReminderRequest) (*contract.ParsedReminderResponse, apierror.ErrorResponse)
	GetReminder(actor *entity.User, reminderID int64) (*contract.ReminderResponse, apierror.ErrorResponse)
	CompleteReminder(actor *entity.User, reminderID int64) (*contract.ReminderResponse, apierror.ErrorResponse)
	MarkNotified(actor *entity.User, reminderID int64) (*contract.ReminderResponse, apierror.ErrorResponse)
	DeleteReminder(actor *entity.User, reminderID int64) apierror.ErrorResponse
	GetDue(actor *entity.User) ([]*contract.ReminderResponse, apierror.ErrorResponse)
}

type DefaultReminderRoute struct {
	ReminderService ReminderService
}

func NewReminderDefault(reminderService ReminderService) *DefaultReminderRoute {
	return &DefaultReminderRoute{ReminderService: reminderService}
}

func (r *DefaultReminderRoute) GetReminders(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	includeCompleted := c.QueryParam("include_completed") == "true"
	reminders, apierr := r.ReminderService.GetReminders(user, includeCompleted)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, reminders)
}

func (r *DefaultReminderRoute) CreateReminder(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	reminder, apierr := r.ReminderService.CreateReminder(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, reminder)
}

func (r *DefaultReminderRoute) ParseReminder(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.ParseReminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	parsed, apierr := r.ReminderService.ParseReminder(c.Request().Context(), user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, parsed)
}

func (r *DefaultReminderRoute) GetReminder(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	reminder, apierr := r.ReminderService.GetReminder(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, reminder)
}

func (r *DefaultReminderRoute) CompleteReminder(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	reminder, apierr := r.ReminderService.CompleteReminder(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, reminder)
}

func (r *DefaultReminderRoute) MarkNotified(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	reminder, apierr := r.ReminderService.MarkNotified(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, reminder)
}

func (r *DefaultReminderRoute) DeleteReminder(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	if apierr := r.ReminderService.DeleteReminder(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Reminder deleted"}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultReminderRoute) GetDue(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	due, apierr := r.ReminderService.GetDue(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, due)
}
