package service

import (
	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type AddonService struct {
	UserRepo UserRepository
}

func NewAddonService(userRepo UserRepository) *AddonService {
	return &AddonService{UserRepo: userRepo}
}

// GetAddons returns the catalog with a per-user enabled flag. Always-active
// addons report enabled regardless of the user's selection.
func (a *AddonService) GetAddons(actor *entity.User) []*contract.AddonStatus {
	statuses := make([]*contract.AddonStatus, len(addonCatalog))
	for i, addon := range addonCatalog {
		statuses[i] = &contract.AddonStatus{
			Addon:   addon,
			Enabled: addonEnabled(addon, actor),
		}
	}
	return statuses
}

func (a *AddonService) EnableAddon(actor *entity.User, addonID string) ([]string, apierror.ErrorResponse) {
	if findAddon(addonID) == nil {
		return nil, apierror.AddonNotFoundError
	}

	if !containsString(actor.ActiveAddons, addonID) {
		actor.ActiveAddons = append(actor.ActiveAddons, addonID)
		actor.UpdatedAt = utils.NowUTC()
		if err := a.UserRepo.Save(actor); err != nil {
			log.Errorf("failed to enable addon: %v", err)
			return nil, apierror.InternalServerError
		}
	}
	return actor.ActiveAddons, nil
}

// DisableAddon is lenient like enable is strict: disabling an unknown or
// already-disabled addon succeeds without change.
func (a *AddonService) DisableAddon(actor *entity.User, addonID string) ([]string, apierror.ErrorResponse) {
	if containsString(actor.ActiveAddons, addonID) {
		kept := make([]string, 0, len(actor.ActiveAddons))
		for _, id := range actor.ActiveAddons {
			if id != addonID {
				kept = append(kept, id)
			}
		}
		actor.ActiveAddons = kept
		actor.UpdatedAt = utils.NowUTC()
		if err := a.UserRepo.Save(actor); err != nil {
			log.Errorf("failed to disable addon: %v", err)
			return nil, apierror.InternalServerError
		}
	}
	if actor.ActiveAddons == nil {
		return []string{}, nil
	}
	return actor.ActiveAddons, nil
}

// GetCommands aggregates templates, actions and UI components from every
// addon the user has enabled, tagging each entry with its source addon.
func (a *AddonService) GetCommands(actor *entity.User) *contract.AddonCommandsResponse {
	resp := &contract.AddonCommandsResponse{
		Templates:    []contract.AddonTemplate{},
		Actions:      []contract.AddonAction{},
		UIComponents: []contract.AddonUIComponent{},
	}

	for _, addon := range addonCatalog {
		if !addonEnabled(addon, actor) {
			continue
		}
		for _, tmpl := range addon.Templates {
			tmpl.AddonID = addon.ID
			tmpl.AddonName = addon.Name
			resp.Templates = append(resp.Templates, tmpl)
		}
		for _, action := range addon.Actions {
			action.AddonID = addon.ID
			action.AddonName = addon.Name
			resp.Actions = append(resp.Actions, action)
		}
		for _, component := range addon.UIComponents {
			component.AddonID = addon.ID
			component.AddonName = addon.Name
			resp.UIComponents = append(resp.UIComponents, component)
		}
	}
	return resp
}

func addonEnabled(addon contract.Addon, actor *entity.User) bool {
	return addon.IsAlwaysActive || containsString(actor.ActiveAddons, addon.ID)
}

func findAddon(addonID string) *contract.Addon {
	for i := range addonCatalog {
		if addonCatalog[i].ID == addonID {
			return &addonCatalog[i]
		}
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
