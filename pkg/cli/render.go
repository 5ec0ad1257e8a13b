package cli

import (
	"github.com/fatih/color"

	"github.com/estima-lab/pertcost/pkg/domain/types"
)

func statusColor(s types.ApprovalStatus) *color.Color {
	switch s.Normalize() {
	case types.ApprovalStatusApproved:
		return color.New(color.FgGreen, color.Bold)
	case types.ApprovalStatusRejected:
		return color.New(color.FgRed, color.Bold)
	case types.ApprovalStatusSubmitted:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}
