package workflow

import "strings"

// Status represents a purchase order's position in the approval lifecycle
type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusSentToVendor    Status = "sent_to_vendor"
	StatusDelivered       Status = "delivered"
)

var validStatuses = map[Status]bool{
	StatusDraft:           true,
	StatusPendingApproval: true,
	StatusApproved:        true,
	StatusRejected:        true,
	StatusSentToVendor:    true,
	StatusDelivered:       true,
}

var terminalStatuses = map[Status]bool{
	StatusRejected:  true,
	StatusDelivered: true,
}

// IsTerminal returns true if the status is terminal (no further transitions allowed)
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// IsValid returns true if the status is one of the six lifecycle statuses
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Display returns the human-readable form, with underscores replaced by spaces
// ("pending_approval" -> "pending approval")
func (s Status) Display() string {
	return strings.ReplaceAll(string(s), "_", " ")
}
