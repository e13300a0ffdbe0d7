package workflow

import "fmt"

// rule is one row of the transition table: firing action from its source
// status moves the order to target, provided the actor's role is listed.
type rule struct {
	action Action
	target Status
	roles  []Role
}

// transitions is the complete role-gated transition table. Rules are kept in
// slices so AvailableActions returns a deterministic order. rejected and
// delivered have no outgoing rules.
var transitions = map[Status][]rule{
	StatusDraft: {
		{ActionSubmit, StatusPendingApproval, []Role{RoleAdmin, RoleManager}},
	},
	StatusPendingApproval: {
		{ActionApprove, StatusApproved, []Role{RoleAdmin}},
		{ActionReject, StatusRejected, []Role{RoleAdmin}},
	},
	StatusApproved: {
		{ActionSend, StatusSentToVendor, []Role{RoleAdmin, RoleManager}},
	},
	StatusSentToVendor: {
		{ActionDeliver, StatusDelivered, []Role{RoleAdmin, RoleManager}},
	},
}

func findRule(from Status, action Action) (rule, bool) {
	for _, r := range transitions[from] {
		if r.action == action {
			return r, true
		}
	}
	return rule{}, false
}

// Target returns the status the action moves an order to from the given
// status. It does not consider roles.
func Target(from Status, action Action) (Status, error) {
	r, ok := findRule(from, action)
	if !ok {
		return "", fmt.Errorf("%w: cannot %s order in status %s", ErrInvalidTransition, action, from)
	}
	return r.target, nil
}

// Allowed reports whether role may fire action from the given status
func Allowed(from Status, action Action, role Role) bool {
	r, ok := findRule(from, action)
	if !ok {
		return false
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Authorize validates the transition against the current status and the
// actor's role. It distinguishes an action that is invalid for the status
// (ErrInvalidTransition) from one the role may not fire (ErrRoleDenied).
func Authorize(from Status, action Action, role Role) (Status, error) {
	r, ok := findRule(from, action)
	if !ok {
		return "", fmt.Errorf("%w: cannot %s order in status %s", ErrInvalidTransition, action, from)
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return r.target, nil
		}
	}
	return "", fmt.Errorf("%w: role %s cannot %s order in status %s", ErrRoleDenied, role, action, from)
}

// AvailableActions returns the actions role may fire from the given status,
// in table order. It depends on nothing besides status and role.
func AvailableActions(from Status, role Role) []Action {
	actions := []Action{}
	for _, r := range transitions[from] {
		for _, allowed := range r.roles {
			if allowed == role {
				actions = append(actions, r.action)
				break
			}
		}
	}
	return actions
}
