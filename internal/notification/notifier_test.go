package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

type stubUserRepo struct {
	byID   map[int64]*entity.User
	admins []*entity.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return s.byID[id], nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) ListByRole(ctx context.Context, role workflow.Role) ([]*entity.User, error) {
	if role == workflow.RoleAdmin {
		return s.admins, nil
	}
	return nil, nil
}

type stubSupplierRepo struct {
	supplier *entity.Supplier
}

func (s *stubSupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	return s.supplier, nil
}

func testNotifier() *EmailNotifier {
	return &EmailNotifier{
		users: &stubUserRepo{
			byID: map[int64]*entity.User{
				2: {ID: 2, Username: "bob", Email: "bob@example.test"},
			},
			admins: []*entity.User{
				{ID: 1, Username: "alice", Email: "alice@example.test"},
				{ID: 4, Username: "dan", Email: "dan@example.test"},
			},
		},
		suppliers: &stubSupplierRepo{
			supplier: &entity.Supplier{ID: 5, Name: "Acme", Email: "orders@acme.test"},
		},
		logger: zap.NewNop(),
	}
}

func testOrder() *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		ID:          1,
		PONumber:    "PO-2025-001",
		SupplierID:  5,
		CreatedBy:   2,
		TotalAmount: decimal.NewFromInt(500),
	}
}

func TestRecipients(t *testing.T) {
	n := testNotifier()
	order := testOrder()
	ctx := context.Background()

	tests := []struct {
		name   string
		action workflow.Action
		want   []string
	}{
		{"submit goes to admins", workflow.ActionSubmit, []string{"alice@example.test", "dan@example.test"}},
		{"approve goes to requester", workflow.ActionApprove, []string{"bob@example.test"}},
		{"reject goes to requester", workflow.ActionReject, []string{"bob@example.test"}},
		{"send goes to supplier", workflow.ActionSend, []string{"orders@acme.test"}},
		{"deliver notifies nobody", workflow.ActionDeliver, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.recipients(ctx, order, tt.action)
			if err != nil {
				t.Fatalf("recipients() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("recipients() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("recipients()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestComposeMessage(t *testing.T) {
	order := testOrder()
	actor := entity.Actor{UserID: 1, Username: "alice", Role: workflow.RoleAdmin}

	subject, body := composeMessage(order, workflow.ActionReject, actor, "budget exceeded")
	if !strings.Contains(subject, "PO-2025-001") {
		t.Errorf("subject %q missing PO number", subject)
	}
	if !strings.Contains(body, "rejected by alice") {
		t.Errorf("body %q missing decision line", body)
	}
	if !strings.Contains(body, "Comment: budget exceeded") {
		t.Errorf("body %q missing comment", body)
	}
}

func TestNewEmailNotifier_DisabledWithoutHost(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{}, &stubUserRepo{}, &stubSupplierRepo{}, zap.NewNop())
	if n != nil {
		t.Error("NewEmailNotifier() should return nil when SMTP host is empty")
	}
}
