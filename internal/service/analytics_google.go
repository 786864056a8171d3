package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	oauthjwt "golang.org/x/oauth2/jwt"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

// GoogleAnalyticsRunner runs reports against a GA4 property with a service
// account.
type GoogleAnalyticsRunner struct {
	property string
	reports  *analyticsdata.PropertiesService
}

func NewGoogleAnalyticsRunner(ctx context.Context, propertyID string, clientEmail string, privateKey string) (*GoogleAnalyticsRunner, error) {
	if propertyID == "" || clientEmail == "" || privateKey == "" {
		return nil, fmt.Errorf("analytics: property id, client email and private key are required")
	}

	conf := &oauthjwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{analyticsdata.AnalyticsReadonlyScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := analyticsdata.NewService(ctx, option.WithHTTPClient(conf.Client(context.Background())))
	if err != nil {
		return nil, fmt.Errorf("analytics: create client: %w", err)
	}

	property := propertyID
	if !strings.HasPrefix(property, "properties/") {
		property = "properties/" + property
	}

	return &GoogleAnalyticsRunner{property: property, reports: svc.Properties}, nil
}

func (r *GoogleAnalyticsRunner) RunReport(ctx context.Context, query ReportQuery) ([]ReportRow, error) {
	req := &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{{StartDate: "28daysAgo", EndDate: "today"}},
		Limit:      query.Limit,
	}
	for _, name := range query.Metrics {
		req.Metrics = append(req.Metrics, &analyticsdata.Metric{Name: name})
	}
	for _, name := range query.Dimensions {
		req.Dimensions = append(req.Dimensions, &analyticsdata.Dimension{Name: name})
	}

	resp, err := r.reports.RunReport(r.property, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("analytics: run report: %w", err)
	}

	rows := make([]ReportRow, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		out := ReportRow{}
		for _, value := range row.DimensionValues {
			out.Dimensions = append(out.Dimensions, value.Value)
		}
		for _, value := range row.MetricValues {
			out.Metrics = append(out.Metrics, value.Value)
		}
		rows = append(rows, out)
	}
	return rows, nil
}
