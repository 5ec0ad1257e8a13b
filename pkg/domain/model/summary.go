package model

import (
	"github.com/shopspring/decimal"

	"github.com/estima-lab/pertcost/pkg/domain/types"
)

// BreakdownItem is one bucket of a cost breakdown along a classification
// dimension.
type BreakdownItem struct {
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	TotalPert       decimal.Decimal `json:"total_pert"`
	AssignmentCount int             `json:"assignment_count"`
}

// WBSCostSummary is the aggregated cost picture of a single WBS item.
type WBSCostSummary struct {
	WBSID                int64                `json:"wbs_id"`
	WBSCode              string               `json:"wbs_code"`
	WBSTitle             string               `json:"wbs_title"`
	AssignmentCount      int                  `json:"assignment_count"`
	TotalPert            decimal.Decimal      `json:"total_pert_estimate"`
	TotalStdDev          decimal.Decimal      `json:"total_std_deviation"`
	CI80Low              decimal.Decimal      `json:"confidence_80_low"`
	CI80High             decimal.Decimal      `json:"confidence_80_high"`
	RiskCount            int                  `json:"risk_count"`
	TotalRiskExposure    decimal.Decimal      `json:"total_risk_exposure"`
	RiskAdjustedEstimate decimal.Decimal      `json:"risk_adjusted_estimate"`
	ApprovalStatus       types.ApprovalStatus `json:"approval_status"`
}

// ProjectEstimate is the full project roll-up: totals, one breakdown per
// dimension, and per-WBS summaries.
type ProjectEstimate struct {
	ProjectID   int64  `json:"project_id"`
	ProjectName string `json:"project_name"`

	WBSItemCount    int `json:"total_wbs_items"`
	AssignmentCount int `json:"total_assignments"`
	RiskCount       int `json:"total_risks"`

	TotalPert            decimal.Decimal `json:"total_pert_estimate"`
	TotalStdDev          decimal.Decimal `json:"total_std_deviation"`
	CI80Low              decimal.Decimal `json:"confidence_80_low"`
	CI80High             decimal.Decimal `json:"confidence_80_high"`
	TotalRiskExposure    decimal.Decimal `json:"total_risk_exposure"`
	RiskAdjustedEstimate decimal.Decimal `json:"risk_adjusted_estimate"`

	ByCostType            []BreakdownItem `json:"by_cost_type"`
	ByRegion              []BreakdownItem `json:"by_region"`
	ByResource            []BreakdownItem `json:"by_resource"`
	BySupplier            []BreakdownItem `json:"by_supplier"`
	ByBusinessArea        []BreakdownItem `json:"by_business_area"`
	ByEstimatingTechnique []BreakdownItem `json:"by_estimating_technique"`

	WBSSummaries []WBSCostSummary `json:"wbs_summaries"`
}
