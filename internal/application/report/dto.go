package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/report"
)

// DashboardQuery selects the reporting window. Days defaults to 30 when
// unset; Months bounds the trend series and defaults to 12.
type DashboardQuery struct {
	Days   int `form:"days" binding:"omitempty,gt=0,lte=365"`
	Months int `form:"months" binding:"omitempty,gt=0,lte=36"`
}

// ProviderDashboardResponse is the cross-partner analytics view
type ProviderDashboardResponse struct {
	PeriodStart    time.Time                    `json:"period_start"`
	PeriodEnd      time.Time                    `json:"period_end"`
	Summary        report.SalesSummary          `json:"summary"`
	SalesByPartner []report.PartnerSales        `json:"sales_by_partner"`
	TopProducts    []report.ProductSalesRanking `json:"top_products"`
	MonthlyTrend   []report.MonthlySalesTrend   `json:"monthly_trend"`
}

// PartnerDashboardResponse is one partner's scoped analytics view
type PartnerDashboardResponse struct {
	PartnerID       uuid.UUID                    `json:"partner_id"`
	PeriodStart     time.Time                    `json:"period_start"`
	PeriodEnd       time.Time                    `json:"period_end"`
	Summary         report.SalesSummary          `json:"summary"`
	TopProducts     []report.ProductSalesRanking `json:"top_products"`
	MonthlyTrend    []report.MonthlySalesTrend   `json:"monthly_trend"`
	SalesByCustomer []report.CustomerSales       `json:"sales_by_customer"`
}
