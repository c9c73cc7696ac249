package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary is a read model of portal-wide or partner-scoped totals over
// a reporting window
type SalesSummary struct {
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	TotalQuotes    int64           `json:"total_quotes"`
	TotalOrders    int64           `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`      // Sum of order customer totals
	PartnerRevenue decimal.Decimal `json:"partner_revenue"`    // Sum of order partner totals (provider cost view)
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
}

// PartnerSales represents one partner's contribution over the window
type PartnerSales struct {
	PartnerID    uuid.UUID       `json:"partner_id"`
	PartnerName  string          `json:"partner_name"`
	PartnerCode  string          `json:"partner_code"`
	QuoteCount   int64           `json:"quote_count"`
	OrderCount   int64           `json:"order_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// ProductSalesRanking represents product ranking by order revenue
type ProductSalesRanking struct {
	Rank         int             `json:"rank"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	OrderCount   int64           `json:"order_count"`
}

// MonthlySalesTrend represents one month of the trailing trend series
type MonthlySalesTrend struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	QuoteCount   int64           `json:"quote_count"`
	OrderCount   int64           `json:"order_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// CustomerSales represents one customer's orders inside a partner's view
type CustomerSales struct {
	CustomerName   string          `json:"customer_name"`
	QuoteCount     int64           `json:"quote_count"`
	OrderCount     int64           `json:"order_count"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	PartnerCost    decimal.Decimal `json:"partner_cost"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"` // Percentage
}

// SalesReportRepository defines the read-side queries behind the analytics
// views. A nil partnerID means the unscoped provider view; a non-nil one
// restricts every query to that partner.
type SalesReportRepository interface {
	GetSalesSummary(ctx context.Context, partnerID *uuid.UUID, start, end time.Time) (*SalesSummary, error)
	GetSalesByPartner(ctx context.Context, start, end time.Time) ([]PartnerSales, error)
	GetTopProducts(ctx context.Context, partnerID *uuid.UUID, start, end time.Time, limit int) ([]ProductSalesRanking, error)
	GetMonthlySalesTrend(ctx context.Context, partnerID *uuid.UUID, months int) ([]MonthlySalesTrend, error)
	GetSalesByCustomer(ctx context.Context, partnerID uuid.UUID, start, end time.Time) ([]CustomerSales, error)
}
