package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/infrastructure/ai"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"
	"spryte/internal/utils/uid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider returns canned completions.
type stubProvider struct {
	completion string
	err        error
}

func (s *stubProvider) TransformText(ctx context.Context, text, action, extra string) (string, error) {
	return s.completion, s.err
}

func (s *stubProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	return s.completion, s.err
}

func stubFactory(p ai.Provider, err error) ProviderFactory {
	return func(name string) (ai.Provider, error) {
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func newReminderFixture(p ai.Provider) (*ReminderService, *fakeReminderRepo, *entity.User) {
	repo := &fakeReminderRepo{}
	svc := NewReminderService(repo, stubFactory(p, nil), newTestValidator())
	return svc, repo, testUser(1)
}

func seedReminder(repo *fakeReminderRepo, userID int64, due int64, early int) *entity.Reminder {
	reminder := &entity.Reminder{
		ID:                   uid.Generate(),
		UserID:               userID,
		NoteID:               100,
		Message:              "check the oven",
		DueDate:              due,
		RawText:              "check the oven",
		EarlyReminderMinutes: early,
		CreatedAt:            utils.NowUTC(),
	}
	_ = repo.Save(reminder)
	return reminder
}

func TestCreateReminderParsesISODate(t *testing.T) {
	svc, repo, user := newReminderFixture(nil)

	resp, apierr := svc.CreateReminder(user, &contract.CreateReminderRequest{
		Message: "standup",
		NoteID:  42,
		DueDate: "2026-09-01T14:30:00Z",
	})
	require.Nil(t, apierr)
	assert.Equal(t, "2026-09-01T14:30:00Z", resp.DueDate)
	assert.Equal(t, "standup", resp.RawText)
	assert.Len(t, repo.reminders, 1)
}

func TestCreateReminderRejectsBadDate(t *testing.T) {
	svc, _, user := newReminderFixture(nil)

	_, apierr := svc.CreateReminder(user, &contract.CreateReminderRequest{
		Message: "standup",
		NoteID:  42,
		DueDate: "next tuesday",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestParseReminderCreatesFromLLMAnswer(t *testing.T) {
	provider := &stubProvider{completion: "```json\n" +
		`{"success": true, "date": "09/15/2026", "time": "2:30 PM", "message": "dentist appointment"}` +
		"\n```"}
	svc, repo, user := newReminderFixture(provider)

	resp, apierr := svc.ParseReminder(context.Background(), user, &contract.ParseReminderRequest{
		Text:   "dentist next tuesday at 2:30pm",
		NoteID: 42,
	})
	require.Nil(t, apierr)
	assert.True(t, resp.Success)
	assert.Equal(t, "dentist appointment", resp.Reminder.Message)
	assert.Equal(t, "dentist next tuesday at 2:30pm", resp.Reminder.RawText)

	require.Len(t, repo.reminders, 1)
	want := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, repo.reminders[0].DueDate)
}

func TestParseReminderSurfacesModelRefusal(t *testing.T) {
	provider := &stubProvider{completion: `{"success": false, "error": "no date found"}`}
	svc, repo, user := newReminderFixture(provider)

	_, apierr := svc.ParseReminder(context.Background(), user, &contract.ParseReminderRequest{
		Text:   "hello world",
		NoteID: 42,
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
	assert.Empty(t, repo.reminders)
}

func TestParseReminderRejectsGarbageResponse(t *testing.T) {
	provider := &stubProvider{completion: "sorry, I cannot help with that"}
	svc, _, user := newReminderFixture(provider)

	_, apierr := svc.ParseReminder(context.Background(), user, &contract.ParseReminderRequest{
		Text:   "remind me tomorrow",
		NoteID: 42,
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestParseReminderProviderUnavailable(t *testing.T) {
	repo := &fakeReminderRepo{}
	svc := NewReminderService(repo, stubFactory(nil, fmt.Errorf("unknown AI provider: bogus")), newTestValidator())

	_, apierr := svc.ParseReminder(context.Background(), testUser(1), &contract.ParseReminderRequest{
		Text:   "remind me tomorrow",
		NoteID: 42,
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestReminderOwnershipEnforced(t *testing.T) {
	svc, repo, user := newReminderFixture(nil)
	other := seedReminder(repo, 2, utils.NowUTC(), 0)

	_, apierr := svc.GetReminder(user, other.ID)
	assert.Equal(t, apierror.ForbiddenError, apierr)

	_, apierr = svc.GetReminder(user, 424242)
	assert.Equal(t, apierror.ReminderNotFoundError, apierr)
}

func TestCompleteAndNotifyFlags(t *testing.T) {
	svc, repo, user := newReminderFixture(nil)
	reminder := seedReminder(repo, user.ID, utils.NowUTC(), 0)

	resp, apierr := svc.CompleteReminder(user, reminder.ID)
	require.Nil(t, apierr)
	assert.True(t, resp.Completed)

	resp, apierr = svc.MarkNotified(user, reminder.ID)
	require.Nil(t, apierr)
	assert.True(t, resp.Notified)
}

func TestGetDueWindowsOnTriggerTime(t *testing.T) {
	svc, repo, user := newReminderFixture(nil)
	now := utils.NowUTC()

	inWindow := seedReminder(repo, user.ID, now+2*time.Minute.Milliseconds(), 0)
	// Due in an hour, but the 58-minute early offset pulls the trigger into
	// the window.
	early := seedReminder(repo, user.ID, now+time.Hour.Milliseconds(), 58)
	seedReminder(repo, user.ID, now+time.Hour.Milliseconds(), 0)
	past := seedReminder(repo, user.ID, now-time.Minute.Milliseconds(), 0)
	notified := seedReminder(repo, user.ID, now+2*time.Minute.Milliseconds(), 0)
	notified.Notified = true

	due, apierr := svc.GetDue(user)
	require.Nil(t, apierr)
	require.Len(t, due, 2)

	ids := []int64{due[0].ID, due[1].ID}
	assert.Contains(t, ids, inWindow.ID)
	assert.Contains(t, ids, early.ID)
	for _, d := range due {
		assert.NotEmpty(t, d.TriggerTime)
		assert.NotEqual(t, past.ID, d.ID)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                     `{"a":1}`,
		"```json\n{\"a\":1}\n```":       `{"a":1}`,
		"```\n{\"a\":1}\n```":           `{"a":1}`,
		"  ```json\n{\"a\":1}\n``` ":    `{"a":1}`,
		"```json\n{\"a\":1}\n``` extra": `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, stripCodeFences(in))
	}
}
