package workflow

// Action represents a user-initiated event that drives a status transition
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionSend    Action = "send"
	ActionDeliver Action = "deliver"
)

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}
