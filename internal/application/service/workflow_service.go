package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/pkg/apperror"
)

// WorkflowService applies approval and payment transitions to receipts
type WorkflowService struct {
	receiptRepo repository.ReceiptRepository
	now         func() time.Time
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(receiptRepo repository.ReceiptRepository) *WorkflowService {
	return &WorkflowService{receiptRepo: receiptRepo, now: time.Now}
}

// Actor identifies who is performing a workflow action.
type Actor struct {
	ID    uuid.UUID
	Email string
}

// WorkflowOutcome reports how one receipt fared in a bulk action.
type WorkflowOutcome struct {
	ReceiptID uuid.UUID `json:"receipt_id"`
	Applied   bool      `json:"applied"`
	Reason    string    `json:"reason,omitempty"`
}

// Apply runs one workflow action over the given receipts. Each receipt
// is checked against the transition table; receipts in the wrong state
// are reported individually instead of failing the whole batch. The
// database update re-checks the from state, so a receipt raced into
// another state between check and write comes back as not applied.
func (s *WorkflowService) Apply(ctx context.Context, action enum.WorkflowAction, ids []uuid.UUID, actor Actor) ([]WorkflowOutcome, error) {
	if len(ids) == 0 {
		return nil, apperror.NewBadRequestError("No receipts selected")
	}

	receipts, err := s.receiptRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uuid.UUID]*entity.ServiceReceipt, len(receipts))
	for i := range receipts {
		found[receipts[i].ID] = &receipts[i]
	}

	refusals := make(map[uuid.UUID]string, len(ids))
	eligibleByState := make(map[enum.ReceiptState][]uuid.UUID)

	for _, id := range ids {
		receipt, ok := found[id]
		if !ok {
			refusals[id] = "Receipt not found"
			continue
		}
		from := receipt.State()
		if !enum.CanTransition(action, from) {
			refusals[id] = reasonForRefusal(action, from)
			continue
		}
		eligibleByState[from] = append(eligibleByState[from], id)
	}

	applied := make(map[uuid.UUID]bool)
	for from, stateIDs := range eligibleByState {
		to, _ := enum.Transition(action, from)
		update := s.buildUpdate(action, to, actor)
		affected, err := s.receiptRepo.ApplyWorkflow(ctx, stateIDs, from, update)
		if err != nil {
			return nil, err
		}
		if affected == int64(len(stateIDs)) {
			for _, id := range stateIDs {
				applied[id] = true
			}
			continue
		}
		// Partial application: re-read to see which receipts moved.
		current, err := s.receiptRepo.GetByIDs(ctx, stateIDs)
		if err != nil {
			return nil, err
		}
		for i := range current {
			if current[i].State() == to {
				applied[current[i].ID] = true
			}
		}
	}

	// Outcomes come back in the same order the ids were submitted.
	outcomes := make([]WorkflowOutcome, 0, len(ids))
	for _, id := range ids {
		if reason, refused := refusals[id]; refused {
			outcomes = append(outcomes, WorkflowOutcome{ReceiptID: id, Reason: reason})
			continue
		}
		outcome := WorkflowOutcome{ReceiptID: id, Applied: applied[id]}
		if !outcome.Applied {
			outcome.Reason = "Receipt changed state before the action was applied"
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (s *WorkflowService) buildUpdate(action enum.WorkflowAction, to enum.ReceiptState, actor Actor) *repository.WorkflowUpdate {
	update := &repository.WorkflowUpdate{Status: to.Status, PaymentStatus: to.Payment}
	switch action {
	case enum.ActionApprove:
		now := s.now()
		name := actor.Email
		update.TouchApproval = true
		update.ApprovedByID = &actor.ID
		update.ApprovedByName = &name
		update.ApprovedAt = &now
	case enum.ActionReject, enum.ActionReverseApproval:
		update.TouchApproval = true
	case enum.ActionMarkPaid:
		now := s.now()
		update.TouchPayment = true
		update.PaidByID = &actor.ID
		update.PaymentDate = &now
	case enum.ActionReversePayment:
		update.TouchPayment = true
	}
	return update
}

func reasonForRefusal(action enum.WorkflowAction, from enum.ReceiptState) string {
	switch action {
	case enum.ActionApprove, enum.ActionReject:
		if from.Status != enum.ReceiptStatusPending {
			return "Receipt is not pending approval"
		}
	case enum.ActionReverseApproval:
		if from.Payment == enum.PaymentStatusPaid {
			return "A paid receipt's approval cannot be reversed"
		}
		return "Receipt is still pending approval"
	case enum.ActionMarkPaid:
		if from.Payment == enum.PaymentStatusPaid {
			return "Receipt is already paid"
		}
		return "Only approved receipts can be paid"
	case enum.ActionReversePayment:
		return "Receipt is not paid"
	}
	return "Action not permitted from the receipt's current state"
}
