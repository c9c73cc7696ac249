package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/ordering"
	"github.com/tornado/portal/internal/domain/quoting"
	"github.com/tornado/portal/internal/domain/report"
	"gorm.io/gorm"
)

// GormSalesReportRepository implements SalesReportRepository using GORM. All
// queries are read-only aggregations over the quote and order tables; a nil
// partnerID keeps them unscoped for the provider view.
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// GetSalesSummary returns quote/order counts and revenue totals for the window
func (r *GormSalesReportRepository) GetSalesSummary(ctx context.Context, partnerID *uuid.UUID, start, end time.Time) (*report.SalesSummary, error) {
	quoteQuery := r.db.WithContext(ctx).
		Model(&quoting.Quote{}).
		Where("is_active = ? AND created_at >= ? AND created_at < ?", true, start, end)
	if partnerID != nil {
		quoteQuery = quoteQuery.Where("partner_id = ?", *partnerID)
	}

	var totalQuotes int64
	if err := quoteQuery.Count(&totalQuotes).Error; err != nil {
		return nil, err
	}

	var orderTotals struct {
		TotalOrders    int64
		TotalRevenue   decimal.Decimal
		PartnerRevenue decimal.Decimal
	}
	orderQuery := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(customer_total), 0) AS total_revenue, COALESCE(SUM(partner_total), 0) AS partner_revenue").
		Where("is_active = ? AND created_at >= ? AND created_at < ?", true, start, end)
	if partnerID != nil {
		orderQuery = orderQuery.Where("partner_id = ?", *partnerID)
	}
	if err := orderQuery.Scan(&orderTotals).Error; err != nil {
		return nil, err
	}

	avgOrderValue := decimal.Zero
	if orderTotals.TotalOrders > 0 {
		avgOrderValue = orderTotals.TotalRevenue.Div(decimal.NewFromInt(orderTotals.TotalOrders)).Round(2)
	}

	return &report.SalesSummary{
		PeriodStart:    start,
		PeriodEnd:      end,
		TotalQuotes:    totalQuotes,
		TotalOrders:    orderTotals.TotalOrders,
		TotalRevenue:   orderTotals.TotalRevenue,
		PartnerRevenue: orderTotals.PartnerRevenue,
		AvgOrderValue:  avgOrderValue,
	}, nil
}

// GetSalesByPartner returns per-partner order revenue and quote counts for
// the window, highest revenue first
func (r *GormSalesReportRepository) GetSalesByPartner(ctx context.Context, start, end time.Time) ([]report.PartnerSales, error) {
	var rows []report.PartnerSales
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("orders.partner_id AS partner_id, partners.name AS partner_name, partners.code AS partner_code, COUNT(*) AS order_count, COALESCE(SUM(orders.customer_total), 0) AS total_revenue").
		Joins("JOIN partners ON partners.id = orders.partner_id").
		Where("orders.is_active = ? AND orders.created_at >= ? AND orders.created_at < ?", true, start, end).
		Group("orders.partner_id, partners.name, partners.code").
		Order("total_revenue DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	type quoteCount struct {
		PartnerID  uuid.UUID
		QuoteCount int64
	}
	var quoteCounts []quoteCount
	if err := r.db.WithContext(ctx).
		Model(&quoting.Quote{}).
		Select("partner_id, COUNT(*) AS quote_count").
		Where("is_active = ? AND created_at >= ? AND created_at < ?", true, start, end).
		Group("partner_id").
		Scan(&quoteCounts).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(quoteCounts))
	for _, qc := range quoteCounts {
		counts[qc.PartnerID] = qc.QuoteCount
	}
	for idx := range rows {
		rows[idx].QuoteCount = counts[rows[idx].PartnerID]
	}

	return rows, nil
}

// GetTopProducts ranks products by order revenue inside the window
func (r *GormSalesReportRepository) GetTopProducts(ctx context.Context, partnerID *uuid.UUID, start, end time.Time, limit int) ([]report.ProductSalesRanking, error) {
	query := r.db.WithContext(ctx).
		Model(&ordering.OrderItem{}).
		Select("order_items.product_id AS product_id, order_items.product_code AS product_code, order_items.product_name AS product_name, COALESCE(SUM(order_items.quantity), 0) AS quantity, COALESCE(SUM(order_items.customer_line_total), 0) AS total_revenue, COUNT(DISTINCT order_items.order_id) AS order_count").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.is_active = ? AND orders.created_at >= ? AND orders.created_at < ?", true, start, end)
	if partnerID != nil {
		query = query.Where("orders.partner_id = ?", *partnerID)
	}

	var rows []report.ProductSalesRanking
	if err := query.
		Group("order_items.product_id, order_items.product_code, order_items.product_name").
		Order("total_revenue DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for idx := range rows {
		rows[idx].Rank = idx + 1
	}
	return rows, nil
}

// GetMonthlySalesTrend returns a continuous trailing series of the given
// number of months, including months with no activity
func (r *GormSalesReportRepository) GetMonthlySalesTrend(ctx context.Context, partnerID *uuid.UUID, months int) ([]report.MonthlySalesTrend, error) {
	now := time.Now()
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	monthExpr := r.monthExpr("created_at")

	type monthRow struct {
		Month        string
		RowCount     int64
		TotalRevenue decimal.Decimal
	}

	quoteQuery := r.db.WithContext(ctx).
		Model(&quoting.Quote{}).
		Select(monthExpr+" AS month, COUNT(*) AS row_count, COALESCE(SUM(customer_total), 0) AS total_revenue").
		Where("is_active = ? AND created_at >= ?", true, firstMonth)
	orderQuery := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select(monthExpr+" AS month, COUNT(*) AS row_count, COALESCE(SUM(customer_total), 0) AS total_revenue").
		Where("is_active = ? AND created_at >= ?", true, firstMonth)
	if partnerID != nil {
		quoteQuery = quoteQuery.Where("partner_id = ?", *partnerID)
		orderQuery = orderQuery.Where("partner_id = ?", *partnerID)
	}

	var quoteRows, orderRows []monthRow
	if err := quoteQuery.Group("month").Scan(&quoteRows).Error; err != nil {
		return nil, err
	}
	if err := orderQuery.Group("month").Scan(&orderRows).Error; err != nil {
		return nil, err
	}

	quotesByMonth := make(map[string]int64, len(quoteRows))
	for _, row := range quoteRows {
		quotesByMonth[row.Month] = row.RowCount
	}
	ordersByMonth := make(map[string]monthRow, len(orderRows))
	for _, row := range orderRows {
		ordersByMonth[row.Month] = row
	}

	trend := make([]report.MonthlySalesTrend, 0, months)
	for i := 0; i < months; i++ {
		month := firstMonth.AddDate(0, i, 0)
		key := fmt.Sprintf("%04d-%02d", month.Year(), int(month.Month()))
		orderRow := ordersByMonth[key]
		revenue := orderRow.TotalRevenue
		if revenue.IsZero() {
			revenue = decimal.Zero
		}
		trend = append(trend, report.MonthlySalesTrend{
			Year:         month.Year(),
			Month:        int(month.Month()),
			QuoteCount:   quotesByMonth[key],
			OrderCount:   orderRow.RowCount,
			TotalRevenue: revenue,
		})
	}

	return trend, nil
}

// GetSalesByCustomer returns per-customer revenue, cost and margin inside a
// partner's view, highest revenue first
func (r *GormSalesReportRepository) GetSalesByCustomer(ctx context.Context, partnerID uuid.UUID, start, end time.Time) ([]report.CustomerSales, error) {
	var rows []report.CustomerSales
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Select("customer_name, COUNT(*) AS order_count, COALESCE(SUM(customer_total), 0) AS total_revenue, COALESCE(SUM(partner_total), 0) AS partner_cost").
		Where("partner_id = ? AND is_active = ? AND created_at >= ? AND created_at < ?", partnerID, true, start, end).
		Group("customer_name").
		Order("total_revenue DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	type quoteCount struct {
		CustomerName string
		QuoteCount   int64
	}
	var quoteCounts []quoteCount
	if err := r.db.WithContext(ctx).
		Model(&quoting.Quote{}).
		Select("customer_name, COUNT(*) AS quote_count").
		Where("partner_id = ? AND is_active = ? AND created_at >= ? AND created_at < ?", partnerID, true, start, end).
		Group("customer_name").
		Scan(&quoteCounts).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(quoteCounts))
	for _, qc := range quoteCounts {
		counts[qc.CustomerName] = qc.QuoteCount
	}
	for idx := range rows {
		rows[idx].QuoteCount = counts[rows[idx].CustomerName]
		rows[idx].ProfitMargin = quoting.ProfitMarginPercent(rows[idx].TotalRevenue, rows[idx].PartnerCost)
	}

	return rows, nil
}

// monthExpr returns the SQL expression extracting a YYYY-MM bucket from a
// timestamp column. SQLite stores timestamps as ISO-8601 text, so a prefix
// suffices there.
func (r *GormSalesReportRepository) monthExpr(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return "to_char(" + column + ", 'YYYY-MM')"
	}
	return "substr(" + column + ", 1, 7)"
}

// Ensure GormSalesReportRepository implements SalesReportRepository
var _ report.SalesReportRepository = (*GormSalesReportRepository)(nil)
