package service

import (
	"testing"

	"spryte/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddonFixture() (*AddonService, *fakeUserRepo) {
	repo := &fakeUserRepo{}
	return NewAddonService(repo), repo
}

func TestGetAddonsMarksAlwaysActive(t *testing.T) {
	svc, repo := newAddonFixture()
	user := testUser(1)
	_ = repo.Save(user)

	statuses := svc.GetAddons(user)
	require.Len(t, statuses, 3)

	byID := map[string]bool{}
	for _, s := range statuses {
		byID[s.ID] = s.Enabled
	}
	assert.True(t, byID["common"])
	assert.False(t, byID["class_notes"])
	assert.False(t, byID["work"])
}

func TestEnableAddonIsIdempotent(t *testing.T) {
	svc, repo := newAddonFixture()
	user := testUser(1)
	_ = repo.Save(user)

	active, apierr := svc.EnableAddon(user, "work")
	require.Nil(t, apierr)
	assert.Equal(t, []string{"work"}, active)

	active, apierr = svc.EnableAddon(user, "work")
	require.Nil(t, apierr)
	assert.Equal(t, []string{"work"}, active)
}

func TestEnableUnknownAddon(t *testing.T) {
	svc, repo := newAddonFixture()
	user := testUser(1)
	_ = repo.Save(user)

	_, apierr := svc.EnableAddon(user, "premium")
	assert.Equal(t, apierror.AddonNotFoundError, apierr)
}

func TestDisableAddonIsLenient(t *testing.T) {
	svc, repo := newAddonFixture()
	user := testUser(1)
	user.ActiveAddons = []string{"work", "class_notes"}
	_ = repo.Save(user)

	active, apierr := svc.DisableAddon(user, "work")
	require.Nil(t, apierr)
	assert.Equal(t, []string{"class_notes"}, active)

	// Unknown or already-disabled ids succeed without change.
	active, apierr = svc.DisableAddon(user, "premium")
	require.Nil(t, apierr)
	assert.Equal(t, []string{"class_notes"}, active)
}

func TestGetCommandsAggregatesEnabledAddons(t *testing.T) {
	svc, repo := newAddonFixture()
	user := testUser(1)
	_ = repo.Save(user)

	commands := svc.GetCommands(user)
	require.Len(t, commands.Templates, 1)
	assert.Equal(t, "now", commands.Templates[0].ID)
	assert.Equal(t, "common", commands.Templates[0].AddonID)
	assert.Equal(t, "Common", commands.Templates[0].AddonName)
	require.Len(t, commands.Actions, 1)
	assert.Equal(t, "reminder", commands.Actions[0].ID)
	require.Len(t, commands.UIComponents, 1)
	assert.Len(t, commands.UIComponents[0].Items, 5)

	user.ActiveAddons = []string{"class_notes", "work"}
	commands = svc.GetCommands(user)
	assert.Len(t, commands.Templates, 3)

	// Tagging must not leak into the shared catalog.
	assert.Empty(t, addonCatalog[0].Templates[0].AddonID)
}
