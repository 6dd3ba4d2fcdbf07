package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkflowService(repo *mockReceiptRepo) *WorkflowService {
	svc := NewWorkflowService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func pendingReceipt(repo *mockReceiptRepo) *entity.ServiceReceipt {
	r := &entity.ServiceReceipt{
		Status:        enum.ReceiptStatusPending,
		PaymentStatus: enum.PaymentStatusPending,
	}
	repo.add(r)
	return r
}

func TestWorkflowApprove_StampsApproval(t *testing.T) {
	repo := newMockReceiptRepo()
	svc := newTestWorkflowService(repo)
	r := pendingReceipt(repo)
	actor := Actor{ID: uuid.New(), Email: "supervisor@example.com"}

	outcomes, err := svc.Apply(context.Background(), enum.ActionApprove, []uuid.UUID{r.ID}, actor)

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Applied)

	assert.Equal(t, enum.ReceiptStatusApproved, r.Status)
	assert.Equal(t, enum.PaymentStatusPending, r.PaymentStatus)
	require.NotNil(t, r.ApprovedByID)
	assert.Equal(t, actor.ID, *r.ApprovedByID)
	require.NotNil(t, r.ApprovedByName)
	assert.Equal(t, "supervisor@example.com", *r.ApprovedByName)
	require.NotNil(t, r.ApprovedAt)
}

func TestWorkflowApprove_RefusesNonPending(t *testing.T) {
	repo := newMockReceiptRepo()
	svc := newTestWorkflowService(repo)
	r := &entity.ServiceReceipt{
		Status:        enum.ReceiptStatusApproved,
		PaymentStatus: enum.PaymentStatusPending,
	}
	repo.add(r)

	outcomes, err := svc.Apply(context.Background(), enum.ActionApprove, []uuid.UUID{r.ID}, Actor{ID: uuid.New()})

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Applied)
	assert.NotEmpty(t, outcomes[0].Reason)
	assert.Equal(t, enum.ReceiptStatusApproved, r.Status)
}

func TestWorkflowReverseApproval_ClearsStamps(t *testing.T) {
	repo := newMockReceiptRepo()
	svc := newTestWorkflowService(repo)
	r := pendingReceipt(repo)
	actor := Actor{ID: uuid.New(), Email: "supervisor@example.com"}

	_, err := svc.Apply(context.Background(), enum.ActionApprove, []uuid.UUID{r.ID}, actor)
	require.NoError(t, err)

	outcomes, err := svc.Apply(context.Background(), enum.ActionReverseApproval, []uuid.UUID{r.ID}, actor)
	require.NoError(t, err)
	assert.True(t, outcomes[0].Applied)

	assert.Equal(t, enum.ReceiptStatusPending, r.Status)
	assert.Nil(t, r.ApprovedByID)
	assert.Nil(t, r.ApprovedByName)
	assert.Nil(t, r.ApprovedAt)
}

func TestWorkflowReverseApproval_RefusedWhenPaid(t *testing.T) {
	repo := newMockReceiptRepo()
	svc := newTestWorkflowService(repo)
	now := time.Now()
	actorID := uuid.New()
	r := &entity.ServiceReceipt{
		Status:        enum.ReceiptStatusApproved,
		PaymentStatus: enum.PaymentStatusPaid,
		ApprovedByID:  &actorID,
		ApprovedAt:    &now,
	}
	repo.add(r)

	outcomes, err := svc.Apply(context.Background(), enum.ActionReverseApproval, []uuid.UUID{r.ID}, Actor{ID: actorID})

	require.NoError(t, err)
	assert.False(t, outcomes[0].Applied)
	assert.Equal(t, "A paid receipt's approval cannot be reversed", outcomes[0].Reason)
	assert.Equal(t, enum.ReceiptStatusApproved, r.Status)
	assert.Equal(t, enum.PaymentStatusPaid, r.PaymentStatus)
}

func TestWorkflowPay_StampsPaymentAndKeepsApproval(t *testing.T) {
	repo := newMockReceiptRepo()
	svc := newTestWorkflowService(repo)
	r := pendingReceipt(repo)
	approver := Actor{ID: uuid.New(), Email: "supervisor@example.com"}
	payer := Actor{ID: uuid.New(), Email: "finance@example.com"}

	_, err := svc.Apply(context.Background(), enum.ActionApprove, []uuid.UUID{r.ID}, approver)
	require.NoError(t, err)

	outcomes, err := svc.Apply(context.Background(), enum.ActionMarkPaid, []uuid.UUID{r.ID}, payer)
	require.NoError(t, err)
	assert.True(t, outcomes[0].Applied)

	assert.Equal(t, enum.PaymentStatusPaid, r.PaymentStatus)
	require.NotNil(t, r.PaidByID)
	assert.Equal(t, payer.ID, *r.PaidByID)
	require.NotNil(t, r.PaymentDate)

	// Paying must not disturb the approval stamp.
	require.NotNil(t, r.ApprovedByID)
	assert.Equal(t, approver.ID, *r.ApprovedByID)
}

func TestWorkflowPay_RefusesPendingReceipt(t *testing.T) {
	repo := newMockReceiptRepo()
	svc := newTestWorkflowService(repo)
	r := pendingReceipt(repo)

	outcomes, err := svc.Apply(context.Background(), enum.ActionMarkPaid, []uuid.UUID{r.ID}, Actor{ID: uuid.New()})

	require.NoError(t, err)
	assert.False(t, outcomes[0].Applied)
	assert.Equal(t, "Only approved receipts can be paid", outcomes[0].Reason)
}

func TestWorkflowReversePayment(t *testing.T) {
	repo := newMockReceiptRepo()
	svc := newTestWorkflowService(repo)
	r := pendingReceipt(repo)
	actor := Actor{ID: uuid.New(), Email: "finance@example.com"}

	for _, action := range []enum.WorkflowAction{enum.ActionApprove, enum.ActionMarkPaid, enum.ActionReversePayment} {
		outcomes, err := svc.Apply(context.Background(), action, []uuid.UUID{r.ID}, actor)
		require.NoError(t, err)
		require.True(t, outcomes[0].Applied, "action %s", action)
	}

	assert.Equal(t, enum.ReceiptStatusApproved, r.Status)
	assert.Equal(t, enum.PaymentStatusPending, r.PaymentStatus)
	assert.Nil(t, r.PaidByID)
	assert.Nil(t, r.PaymentDate)
}

func TestWorkflowReject(t *testing.T) {
	repo := newMockReceiptRepo()
	svc := newTestWorkflowService(repo)
	r := pendingReceipt(repo)

	outcomes, err := svc.Apply(context.Background(), enum.ActionReject, []uuid.UUID{r.ID}, Actor{ID: uuid.New()})

	require.NoError(t, err)
	assert.True(t, outcomes[0].Applied)
	assert.Equal(t, enum.ReceiptStatusRejected, r.Status)

	// A rejected receipt can be brought back to pending.
	outcomes, err = svc.Apply(context.Background(), enum.ActionReverseApproval, []uuid.UUID{r.ID}, Actor{ID: uuid.New()})
	require.NoError(t, err)
	assert.True(t, outcomes[0].Applied)
	assert.Equal(t, enum.ReceiptStatusPending, r.Status)
}

func TestWorkflowApply_MixedBatch(t *testing.T) {
	repo := newMockReceiptRepo()
	svc := newTestWorkflowService(repo)
	pending := pendingReceipt(repo)
	approved := &entity.ServiceReceipt{
		Status:        enum.ReceiptStatusApproved,
		PaymentStatus: enum.PaymentStatusPending,
	}
	repo.add(approved)
	missing := uuid.New()

	outcomes, err := svc.Apply(context.Background(), enum.ActionApprove,
		[]uuid.UUID{pending.ID, approved.ID, missing}, Actor{ID: uuid.New(), Email: "s@example.com"})

	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	// Outcomes keep the submitted id order even when applied and
	// refused receipts are interleaved.
	assert.Equal(t, pending.ID, outcomes[0].ReceiptID)
	assert.True(t, outcomes[0].Applied)
	assert.Equal(t, approved.ID, outcomes[1].ReceiptID)
	assert.False(t, outcomes[1].Applied)
	assert.Equal(t, "Receipt is not pending approval", outcomes[1].Reason)
	assert.Equal(t, missing, outcomes[2].ReceiptID)
	assert.False(t, outcomes[2].Applied)
	assert.Equal(t, "Receipt not found", outcomes[2].Reason)
}

func TestWorkflowApply_EmptySelection(t *testing.T) {
	repo := newMockReceiptRepo()
	svc := newTestWorkflowService(repo)

	_, err := svc.Apply(context.Background(), enum.ActionApprove, nil, Actor{ID: uuid.New()})

	assert.Error(t, err)
}
