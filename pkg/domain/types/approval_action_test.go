package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/estima-lab/pertcost/pkg/domain/types"
)

func TestApprovalAction_Target(t *testing.T) {
	tests := []struct {
		action types.ApprovalAction
		want   types.ApprovalStatus
	}{
		{types.ApprovalActionSubmit, types.ApprovalStatusSubmitted},
		{types.ApprovalActionApprove, types.ApprovalStatusApproved},
		{types.ApprovalActionReject, types.ApprovalStatusRejected},
		{types.ApprovalActionReset, types.ApprovalStatusDraft},
	}

	for _, tt := range tests {
		gt.V(t, tt.action.Target()).
			Describef("action %s should target %s", tt.action, tt.want).
			Equal(tt.want)
	}

	gt.V(t, types.ApprovalAction("unknown").Target()).Equal(types.ApprovalStatus(""))
}

func TestApprovalAction_IsValid(t *testing.T) {
	for _, action := range types.AllApprovalActions() {
		gt.B(t, action.IsValid()).True()
	}
	gt.B(t, types.ApprovalAction("").IsValid()).False()
}

func TestParseApprovalAction(t *testing.T) {
	got, err := types.ParseApprovalAction("APPROVE")
	gt.NoError(t, err)
	gt.V(t, got).Equal(types.ApprovalActionApprove)

	_, err = types.ParseApprovalAction("approve")
	gt.Error(t, err)
}
