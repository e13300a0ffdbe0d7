package workflow

import (
	"errors"
	"testing"
)

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusDraft, false},
		{StatusPendingApproval, false},
		{StatusApproved, false},
		{StatusSentToVendor, false},
		{StatusRejected, true},
		{StatusDelivered, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("Status.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected bool
	}{
		{"draft", StatusDraft, true},
		{"delivered", StatusDelivered, true},
		{"unknown", Status("cancelled"), false},
		{"empty", Status(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.expected {
				t.Errorf("Status.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_Display(t *testing.T) {
	if got := StatusPendingApproval.Display(); got != "pending approval" {
		t.Errorf("Status.Display() = %q, want %q", got, "pending approval")
	}
	if got := StatusSentToVendor.Display(); got != "sent to vendor" {
		t.Errorf("Status.Display() = %q, want %q", got, "sent to vendor")
	}
}

func TestTarget(t *testing.T) {
	tests := []struct {
		from    Status
		action  Action
		want    Status
		wantErr bool
	}{
		{StatusDraft, ActionSubmit, StatusPendingApproval, false},
		{StatusPendingApproval, ActionApprove, StatusApproved, false},
		{StatusPendingApproval, ActionReject, StatusRejected, false},
		{StatusApproved, ActionSend, StatusSentToVendor, false},
		{StatusSentToVendor, ActionDeliver, StatusDelivered, false},
		{StatusDraft, ActionSend, "", true},
		{StatusDraft, ActionApprove, "", true},
		{StatusApproved, ActionApprove, "", true},
		{StatusRejected, ActionSubmit, "", true},
		{StatusDelivered, ActionDeliver, "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			got, err := Target(tt.from, tt.action)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Target(%s, %s) expected error, got %v", tt.from, tt.action, got)
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("Target() error = %v, want ErrInvalidTransition", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Target(%s, %s) failed: %v", tt.from, tt.action, err)
			}
			if got != tt.want {
				t.Errorf("Target(%s, %s) = %v, want %v", tt.from, tt.action, got, tt.want)
			}
		})
	}
}

func TestAuthorize_RoleGating(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		action  Action
		role    Role
		wantErr error
	}{
		{"manager submits draft", StatusDraft, ActionSubmit, RoleManager, nil},
		{"admin submits draft", StatusDraft, ActionSubmit, RoleAdmin, nil},
		{"viewer submits draft", StatusDraft, ActionSubmit, RoleViewer, ErrRoleDenied},
		{"admin approves", StatusPendingApproval, ActionApprove, RoleAdmin, nil},
		{"manager approves", StatusPendingApproval, ActionApprove, RoleManager, ErrRoleDenied},
		{"manager rejects", StatusPendingApproval, ActionReject, RoleManager, ErrRoleDenied},
		{"manager sends", StatusApproved, ActionSend, RoleManager, nil},
		{"viewer delivers", StatusSentToVendor, ActionDeliver, RoleViewer, ErrRoleDenied},
		{"send from draft", StatusDraft, ActionSend, RoleAdmin, ErrInvalidTransition},
		{"unknown role", StatusDraft, ActionSubmit, Role("auditor"), ErrRoleDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Authorize(tt.from, tt.action, tt.role)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Authorize() failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authorize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAvailableActions(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		role   Role
		want   []Action
	}{
		{"manager on draft", StatusDraft, RoleManager, []Action{ActionSubmit}},
		{"admin on pending", StatusPendingApproval, RoleAdmin, []Action{ActionApprove, ActionReject}},
		{"manager on pending", StatusPendingApproval, RoleManager, []Action{}},
		{"viewer on draft", StatusDraft, RoleViewer, []Action{}},
		{"admin on approved", StatusApproved, RoleAdmin, []Action{ActionSend}},
		{"manager on sent", StatusSentToVendor, RoleManager, []Action{ActionDeliver}},
		{"admin on rejected", StatusRejected, RoleAdmin, []Action{}},
		{"admin on delivered", StatusDelivered, RoleAdmin, []Action{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableActions(tt.status, tt.role)
			if len(got) != len(tt.want) {
				t.Fatalf("AvailableActions(%s, %s) = %v, want %v", tt.status, tt.role, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("AvailableActions(%s, %s)[%d] = %v, want %v", tt.status, tt.role, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTerminalStatusesHaveNoOutgoingRules(t *testing.T) {
	for status := range validStatuses {
		if !status.IsTerminal() {
			continue
		}
		if rules := transitions[status]; len(rules) != 0 {
			t.Errorf("terminal status %s has %d outgoing rules, want 0", status, len(rules))
		}
	}
}

func TestAllowed(t *testing.T) {
	if !Allowed(StatusDraft, ActionSubmit, RoleAdmin) {
		t.Error("Allowed() = false for admin submit on draft, want true")
	}
	if Allowed(StatusPendingApproval, ActionApprove, RoleViewer) {
		t.Error("Allowed() = true for viewer approve, want false")
	}
	if Allowed(StatusDelivered, ActionDeliver, RoleAdmin) {
		t.Error("Allowed() = true for deliver on delivered, want false")
	}
}
