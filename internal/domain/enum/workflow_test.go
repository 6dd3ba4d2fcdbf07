package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition_Edges(t *testing.T) {
	pending := ReceiptState{ReceiptStatusPending, PaymentStatusPending}
	approved := ReceiptState{ReceiptStatusApproved, PaymentStatusPending}
	rejected := ReceiptState{ReceiptStatusRejected, PaymentStatusPending}
	paid := ReceiptState{ReceiptStatusApproved, PaymentStatusPaid}

	cases := []struct {
		action WorkflowAction
		from   ReceiptState
		to     ReceiptState
		ok     bool
	}{
		{ActionApprove, pending, approved, true},
		{ActionReject, pending, rejected, true},
		{ActionReverseApproval, approved, pending, true},
		{ActionReverseApproval, rejected, pending, true},
		{ActionMarkPaid, approved, paid, true},
		{ActionReversePayment, paid, approved, true},

		{ActionApprove, approved, ReceiptState{}, false},
		{ActionApprove, paid, ReceiptState{}, false},
		{ActionReject, approved, ReceiptState{}, false},
		{ActionReverseApproval, pending, ReceiptState{}, false},
		{ActionReverseApproval, paid, ReceiptState{}, false},
		{ActionMarkPaid, pending, ReceiptState{}, false},
		{ActionMarkPaid, rejected, ReceiptState{}, false},
		{ActionMarkPaid, paid, ReceiptState{}, false},
		{ActionReversePayment, approved, ReceiptState{}, false},
	}

	for _, tc := range cases {
		to, ok := Transition(tc.action, tc.from)
		assert.Equal(t, tc.ok, ok, "%s from %+v", tc.action, tc.from)
		if tc.ok {
			assert.Equal(t, tc.to, to)
		}
	}
}

func TestTransition_NoEscapeFromPaidExceptReversal(t *testing.T) {
	paid := ReceiptState{ReceiptStatusApproved, PaymentStatusPaid}
	for _, action := range []WorkflowAction{ActionApprove, ActionReject, ActionReverseApproval, ActionMarkPaid} {
		assert.False(t, CanTransition(action, paid), "%s should be refused on a paid receipt", action)
	}
	assert.True(t, CanTransition(ActionReversePayment, paid))
}
