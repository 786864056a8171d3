package service

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"edu-backoffice/internal/model"
	"edu-backoffice/pkg/apierror"
)

// ReportQuery is one Data API report over the trailing 28 days.
type ReportQuery struct {
	Metrics    []string
	Dimensions []string
	Limit      int64
}

type ReportRow struct {
	Dimensions []string
	Metrics    []string
}

type ReportRunner interface {
	RunReport(ctx context.Context, query ReportQuery) ([]ReportRow, error)
}

var (
	totalsReport   = ReportQuery{Metrics: []string{"totalUsers", "sessions", "bounceRate", "averageSessionDuration"}}
	trafficReport  = ReportQuery{Dimensions: []string{"date"}, Metrics: []string{"totalUsers"}}
	referrerReport = ReportQuery{Dimensions: []string{"sessionSource"}, Metrics: []string{"totalUsers"}, Limit: 5}
)

type AnalyticsService struct {
	runner ReportRunner
}

// NewAnalyticsService accepts a nil runner; Summary then reports that
// analytics is not configured.
func NewAnalyticsService(runner ReportRunner) *AnalyticsService {
	return &AnalyticsService{runner: runner}
}

func (s *AnalyticsService) Summary(ctx context.Context) (model.AnalyticsSummary, error) {
	if s.runner == nil {
		return model.AnalyticsSummary{}, apierror.New("ANALYTICS_NOT_CONFIGURED", "Analytics is not configured", "", http.StatusInternalServerError)
	}

	var totals, traffic, referrers []ReportRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { totals, err = s.runner.RunReport(gctx, totalsReport); return })
	g.Go(func() (err error) { traffic, err = s.runner.RunReport(gctx, trafficReport); return })
	g.Go(func() (err error) { referrers, err = s.runner.RunReport(gctx, referrerReport); return })

	if err := g.Wait(); err != nil {
		slog.Error("analytics report failed", "error", err)
		return model.AnalyticsSummary{}, apierror.New("ANALYTICS_UPSTREAM", "Failed to fetch analytics data.", "", http.StatusInternalServerError)
	}

	return model.AnalyticsSummary{
		Success:      true,
		Stats:        summarizeTotals(totals),
		TrafficData:  trafficPoints(traffic),
		TopReferrers: topReferrers(referrers),
	}, nil
}

func summarizeTotals(rows []ReportRow) model.AnalyticsStats {
	var first []string
	if len(rows) > 0 {
		first = rows[0].Metrics
	}

	return model.AnalyticsStats{
		TotalUsers:         valueAt(first, 0, "0"),
		Sessions:           valueAt(first, 1, "0"),
		BounceRate:         twoDecimals(valueAt(first, 2, "0")),
		AvgSessionDuration: twoDecimals(valueAt(first, 3, "0")),
	}
}

func trafficPoints(rows []ReportRow) []model.TrafficPoint {
	points := make([]model.TrafficPoint, 0, len(rows))
	for _, row := range rows {
		users, _ := strconv.ParseInt(valueAt(row.Metrics, 0, "0"), 10, 64)
		points = append(points, model.TrafficPoint{
			Date:  monthDay(valueAt(row.Dimensions, 0, "")),
			Users: users,
		})
	}
	return points
}

func topReferrers(rows []ReportRow) []model.Referrer {
	referrers := make([]model.Referrer, 0, len(rows))
	for _, row := range rows {
		referrers = append(referrers, model.Referrer{
			Source:   valueAt(row.Dimensions, 0, "Unknown"),
			Visitors: valueAt(row.Metrics, 0, "0"),
		})
	}
	return referrers
}

func valueAt(values []string, i int, fallback string) string {
	if i < len(values) && values[i] != "" {
		return values[i]
	}
	return fallback
}

func twoDecimals(raw string) string {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f = 0
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// monthDay turns the API's YYYYMMDD date dimension into MM/DD.
func monthDay(raw string) string {
	if len(raw) < 8 {
		return raw
	}
	return raw[4:6] + "/" + raw[6:8]
}
