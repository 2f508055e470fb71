package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// NewEnforcer loads the role model and the CSV policy from disk.
func NewEnforcer(modelPath, policyPath string) (*casbin.SyncedEnforcer, error) {
	return casbin.NewSyncedEnforcer(modelPath, policyPath)
}

// NewEnforcerFromText builds an enforcer without a policy adapter; rules
// are added by the caller.
func NewEnforcerFromText(modelText string) (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	return casbin.NewSyncedEnforcer(m)
}
