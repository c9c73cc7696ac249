package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/report"
	"github.com/tornado/portal/internal/domain/shared"
)

const (
	defaultWindowDays  = 30
	defaultTrendMonths = 12
	topProductLimit    = 10
)

// ReportService assembles the analytics dashboards from the read-side
// queries. The provider dashboard spans all partners; the partner dashboard
// is pinned to one.
type ReportService struct {
	reportRepo report.SalesReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo report.SalesReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// ProviderDashboard builds the cross-partner view. Only privileged actors
// may call it; partner-side roles get their own scoped dashboard.
func (s *ReportService) ProviderDashboard(ctx context.Context, actor identity.Actor, query DashboardQuery) (*ProviderDashboardResponse, error) {
	if err := actor.RequirePermission(identity.PermReportView); err != nil {
		return nil, err
	}
	if !actor.IsPrivileged() {
		return nil, shared.ErrForbidden
	}

	start, end := window(query)
	months := trendMonths(query)

	summary, err := s.reportRepo.GetSalesSummary(ctx, nil, start, end)
	if err != nil {
		return nil, err
	}
	byPartner, err := s.reportRepo.GetSalesByPartner(ctx, start, end)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.reportRepo.GetTopProducts(ctx, nil, start, end, topProductLimit)
	if err != nil {
		return nil, err
	}
	trend, err := s.reportRepo.GetMonthlySalesTrend(ctx, nil, months)
	if err != nil {
		return nil, err
	}

	return &ProviderDashboardResponse{
		PeriodStart:    start,
		PeriodEnd:      end,
		Summary:        *summary,
		SalesByPartner: byPartner,
		TopProducts:    topProducts,
		MonthlyTrend:   trend,
	}, nil
}

// PartnerDashboard builds one partner's scoped view including the
// per-customer breakdown with profit margins. Privileged actors name the
// partner; partner admins are pinned to their own.
func (s *ReportService) PartnerDashboard(ctx context.Context, actor identity.Actor, requestedPartner *uuid.UUID, query DashboardQuery) (*PartnerDashboardResponse, error) {
	if err := actor.RequirePermission(identity.PermReportView); err != nil {
		return nil, err
	}

	partnerID, err := actor.ScopedPartnerID(requestedPartner)
	if err != nil {
		return nil, err
	}

	start, end := window(query)
	months := trendMonths(query)

	summary, err := s.reportRepo.GetSalesSummary(ctx, &partnerID, start, end)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.reportRepo.GetTopProducts(ctx, &partnerID, start, end, topProductLimit)
	if err != nil {
		return nil, err
	}
	trend, err := s.reportRepo.GetMonthlySalesTrend(ctx, &partnerID, months)
	if err != nil {
		return nil, err
	}
	byCustomer, err := s.reportRepo.GetSalesByCustomer(ctx, partnerID, start, end)
	if err != nil {
		return nil, err
	}

	return &PartnerDashboardResponse{
		PartnerID:       partnerID,
		PeriodStart:     start,
		PeriodEnd:       end,
		Summary:         *summary,
		TopProducts:     topProducts,
		MonthlyTrend:    trend,
		SalesByCustomer: byCustomer,
	}, nil
}

func window(query DashboardQuery) (time.Time, time.Time) {
	days := query.Days
	if days <= 0 {
		days = defaultWindowDays
	}
	end := time.Now()
	return end.AddDate(0, 0, -days), end
}

func trendMonths(query DashboardQuery) int {
	if query.Months <= 0 {
		return defaultTrendMonths
	}
	return query.Months
}
