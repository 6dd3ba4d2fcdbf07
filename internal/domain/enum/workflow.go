package enum

// WorkflowAction is one of the bulk receipt workflow operations.
type WorkflowAction string

const (
	ActionApprove         WorkflowAction = "approve"
	ActionReject          WorkflowAction = "reject"
	ActionReverseApproval WorkflowAction = "reverse-approval"
	ActionMarkPaid        WorkflowAction = "pay"
	ActionReversePayment  WorkflowAction = "reverse-payment"
)

// ReceiptState is the joint (status, payment_status) state of a receipt.
type ReceiptState struct {
	Status  ReceiptStatus
	Payment PaymentStatus
}

// transitions enumerates the reachable workflow edges. Anything not
// listed here is refused, including reversing approval on a paid receipt.
var transitions = map[WorkflowAction]map[ReceiptState]ReceiptState{
	ActionApprove: {
		{ReceiptStatusPending, PaymentStatusPending}: {ReceiptStatusApproved, PaymentStatusPending},
	},
	ActionReject: {
		{ReceiptStatusPending, PaymentStatusPending}: {ReceiptStatusRejected, PaymentStatusPending},
	},
	ActionReverseApproval: {
		{ReceiptStatusApproved, PaymentStatusPending}: {ReceiptStatusPending, PaymentStatusPending},
		{ReceiptStatusRejected, PaymentStatusPending}: {ReceiptStatusPending, PaymentStatusPending},
	},
	ActionMarkPaid: {
		{ReceiptStatusApproved, PaymentStatusPending}: {ReceiptStatusApproved, PaymentStatusPaid},
	},
	ActionReversePayment: {
		{ReceiptStatusApproved, PaymentStatusPaid}: {ReceiptStatusApproved, PaymentStatusPending},
	},
}

// Transition returns the state an action moves from into, or ok=false
// when the action is not permitted from that state.
func Transition(action WorkflowAction, from ReceiptState) (ReceiptState, bool) {
	to, ok := transitions[action][from]
	return to, ok
}

// CanTransition reports whether action is permitted from the given state.
func CanTransition(action WorkflowAction, from ReceiptState) bool {
	_, ok := Transition(action, from)
	return ok
}
