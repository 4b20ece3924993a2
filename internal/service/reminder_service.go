package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/infrastructure/ai"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"
	"spryte/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// dueWindow is how far ahead the /due poll looks for upcoming triggers.
const dueWindow = 5 * time.Minute

const parseSystemPrompt = "You are a helpful assistant that parses reminder text into structured JSON. " +
	"Respond only with valid JSON, no markdown or explanation."

type ReminderRepository interface {
	FindByID(id int64) (*entity.Reminder, error)
	FindByUser(userID int64, includeCompleted bool) ([]*entity.Reminder, error)
	Save(reminder *entity.Reminder) error
	Delete(reminder *entity.Reminder) error
}

type ReminderService struct {
	ReminderRepo ReminderRepository
	Providers    ProviderFactory
	Validate     *validator.Validate
}

func NewReminderService(reminderRepo ReminderRepository, providers ProviderFactory, validate *validator.Validate) *ReminderService {
	return &ReminderService{
		ReminderRepo: reminderRepo,
		Providers:    providers,
		Validate:     validate,
	}
}

func (r *ReminderService) GetReminders(actor *entity.User, includeCompleted bool) ([]*contract.ReminderResponse, apierror.ErrorResponse) {
	reminders, err := r.ReminderRepo.FindByUser(actor.ID, includeCompleted)
	if err != nil {
		log.Errorf("failed to fetch reminders: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.ReminderResponse, len(reminders))
	for i, reminder := range reminders {
		resp[i] = toReminderResponse(reminder)
	}
	return resp, nil
}

func (r *ReminderService) CreateReminder(actor *entity.User, req *contract.CreateReminderRequest) (*contract.ReminderResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := r.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	due, err := parseISODate(req.DueDate)
	if err != nil {
		return nil, apierror.NewSimple(400, fmt.Sprintf("Invalid date format: %s", req.DueDate))
	}

	reminder := &entity.Reminder{
		ID:                   uid.Generate(),
		UserID:               actor.ID,
		NoteID:               req.NoteID,
		BlockID:              req.BlockID,
		Message:              req.Message,
		DueDate:              due.UnixMilli(),
		RawText:              req.Message,
		EarlyReminderMinutes: req.EarlyReminderMinutes,
		CreatedAt:            utils.NowUTC(),
	}

	if err := r.ReminderRepo.Save(reminder); err != nil {
		log.Errorf("failed to save reminder: %v", err)
		return nil, apierror.InternalServerError
	}
	return toReminderResponse(reminder), nil
}

// ParseReminder hands free-form text to the actor's LLM provider and creates
// a reminder from the structured result. Parse failures, including the
// model's own "success: false" answer, are 400s with the model's reason.
func (r *ReminderService) ParseReminder(ctx context.Context, actor *entity.User, req *contract.ParseReminderRequest) (*contract.ParsedReminderResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := r.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	provider, err := r.Providers(actor.Settings.AIProvider)
	if err != nil {
		return nil, apierror.NewSimple(400, err.Error())
	}

	due, message, parseErr := r.parseWithLLM(ctx, provider, req.Text)
	if parseErr != nil {
		return nil, apierror.NewSimple(400, parseErr.Error())
	}

	reminder := &entity.Reminder{
		ID:                   uid.Generate(),
		UserID:               actor.ID,
		NoteID:               req.NoteID,
		BlockID:              req.BlockID,
		Message:              message,
		DueDate:              due.UnixMilli(),
		RawText:              req.Text,
		EarlyReminderMinutes: req.EarlyReminderMinutes,
		CreatedAt:            utils.NowUTC(),
	}

	if err := r.ReminderRepo.Save(reminder); err != nil {
		log.Errorf("failed to save parsed reminder: %v", err)
		return nil, apierror.InternalServerError
	}

	return &contract.ParsedReminderResponse{
		Success:  true,
		Reminder: toReminderResponse(reminder),
	}, nil
}

func (r *ReminderService) GetReminder(actor *entity.User, reminderID int64) (*contract.ReminderResponse, apierror.ErrorResponse) {
	reminder, apierr := r.fetchReminder(actor, reminderID)
	if apierr != nil {
		return nil, apierr
	}
	return toReminderResponse(reminder), nil
}

func (r *ReminderService) CompleteReminder(actor *entity.User, reminderID int64) (*contract.ReminderResponse, apierror.ErrorResponse) {
	return r.setFlag(actor, reminderID, func(reminder *entity.Reminder) {
		reminder.Completed = true
	})
}

func (r *ReminderService) MarkNotified(actor *entity.User, reminderID int64) (*contract.ReminderResponse, apierror.ErrorResponse) {
	return r.setFlag(actor, reminderID, func(reminder *entity.Reminder) {
		reminder.Notified = true
	})
}

func (r *ReminderService) DeleteReminder(actor *entity.User, reminderID int64) apierror.ErrorResponse {
	reminder, apierr := r.fetchReminder(actor, reminderID)
	if apierr != nil {
		return apierr
	}

	if err := r.ReminderRepo.Delete(reminder); err != nil {
		log.Errorf("failed to delete reminder: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// GetDue returns not-yet-notified reminders whose trigger time, due date
// minus the early offset, falls within the next five minutes.
func (r *ReminderService) GetDue(actor *entity.User) ([]*contract.ReminderResponse, apierror.ErrorResponse) {
	reminders, err := r.ReminderRepo.FindByUser(actor.ID, false)
	if err != nil {
		log.Errorf("failed to fetch due reminders: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	windowEnd := now + dueWindow.Milliseconds()

	upcoming := []*contract.ReminderResponse{}
	for _, reminder := range reminders {
		if reminder.Notified {
			continue
		}

		trigger := reminder.DueDate - int64(reminder.EarlyReminderMinutes)*time.Minute.Milliseconds()
		if trigger < now || trigger > windowEnd {
			continue
		}

		resp := toReminderResponse(reminder)
		resp.TriggerTime = utils.FormatEpoch(trigger)
		upcoming = append(upcoming, resp)
	}
	return upcoming, nil
}

func (r *ReminderService) setFlag(actor *entity.User, reminderID int64, apply func(*entity.Reminder)) (*contract.ReminderResponse, apierror.ErrorResponse) {
	reminder, apierr := r.fetchReminder(actor, reminderID)
	if apierr != nil {
		return nil, apierr
	}

	apply(reminder)
	if err := r.ReminderRepo.Save(reminder); err != nil {
		log.Errorf("failed to update reminder: %v", err)
		return nil, apierror.InternalServerError
	}
	return toReminderResponse(reminder), nil
}

func (r *ReminderService) fetchReminder(actor *entity.User, reminderID int64) (*entity.Reminder, apierror.ErrorResponse) {
	reminder, err := r.ReminderRepo.FindByID(reminderID)
	if err != nil {
		log.Errorf("failed to fetch reminder: %v", err)
		return nil, apierror.InternalServerError
	}

	if reminder == nil {
		return nil, apierror.ReminderNotFoundError
	}
	if reminder.UserID != actor.ID {
		return nil, apierror.ForbiddenError
	}
	return reminder, nil
}

type llmParseResult struct {
	Success bool   `json:"success"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (r *ReminderService) parseWithLLM(ctx context.Context, provider ai.Provider, text string) (time.Time, string, error) {
	now := time.Now().UTC()
	prompt := fmt.Sprintf(`Parse the following reminder text and extract the date, time, and message.

Current date: %s
Current time: %s

Reminder text: %s

Respond with ONLY a JSON object (no markdown, no explanation) in this exact format:
{
  "success": true,
  "date": "MM/DD/YYYY",
  "time": "HH:MM AM/PM",
  "message": "the reminder message"
}

If you cannot parse a valid date/time, respond with:
{
  "success": false,
  "error": "explanation of what's wrong"
}

Handle relative dates like "tomorrow", "next Monday", "in 2 hours", etc.
If no time is specified, default to 9:00 AM.
If no date is specified, assume today (or tomorrow if the time has passed).`,
		now.Format("01/02/2006"), now.Format("3:04 PM"), text)

	raw, err := provider.Complete(ctx, parseSystemPrompt, prompt)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("failed to parse reminder: %w", err)
	}

	var result llmParseResult
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &result); err != nil {
		return time.Time{}, "", fmt.Errorf("could not parse reminder: invalid model response")
	}

	if !result.Success {
		if result.Error == "" {
			result.Error = "Could not parse reminder"
		}
		return time.Time{}, "", fmt.Errorf("%s", result.Error)
	}

	timeStr := result.Time
	if timeStr == "" {
		timeStr = "9:00 AM"
	}

	due, err := time.ParseInLocation("01/02/2006 3:04 PM", result.Date+" "+timeStr, time.UTC)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid date/time format: %s %s", result.Date, timeStr)
	}
	return due, result.Message, nil
}

// stripCodeFences undoes the markdown wrapping models add despite being told
// not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func parseISODate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

func toReminderResponse(reminder *entity.Reminder) *contract.ReminderResponse {
	return &contract.ReminderResponse{
		ID:                   reminder.ID,
		UserID:               reminder.UserID,
		NoteID:               reminder.NoteID,
		BlockID:              reminder.BlockID,
		Message:              reminder.Message,
		DueDate:              utils.FormatEpoch(reminder.DueDate),
		RawText:              reminder.RawText,
		EarlyReminderMinutes: reminder.EarlyReminderMinutes,
		Completed:            reminder.Completed,
		Notified:             reminder.Notified,
		CreatedAt:            utils.FormatEpoch(reminder.CreatedAt),
	}
}
