package metadata

import (
	"fmt"

	"github.com/crmarques/apirecord/faults"
)

// Allows reports whether the record type declared the action. An empty
// declaration denies everything.
func (m RecordMetadata) Allows(action Action) bool {
	for _, declared := range m.Actions {
		if declared == action {
			return true
		}
	}
	return false
}

// CreateAction returns the action used for inserts. Only post is a valid
// create method.
func (m RecordMetadata) CreateAction() (Action, error) {
	action := m.Create
	if action == "" {
		action = ActionPost
	}
	if action != ActionPost {
		return "", faults.NewTypedError(
			faults.ConfigError,
			fmt.Sprintf("create action must be %q, declared %q", ActionPost, action),
			nil,
		)
	}
	return action, nil
}

// UpdateAction returns the action used for updates: patch or put.
func (m RecordMetadata) UpdateAction() (Action, error) {
	action := m.Update
	if action == "" {
		action = ActionPatch
	}
	if action != ActionPatch && action != ActionPut {
		return "", faults.NewTypedError(
			faults.ConfigError,
			fmt.Sprintf("update action must be %q or %q, declared %q", ActionPatch, ActionPut, action),
			nil,
		)
	}
	return action, nil
}
