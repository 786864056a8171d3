package model

type AnalyticsStats struct {
	TotalUsers         string `json:"totalUsers"`
	Sessions           string `json:"sessions"`
	BounceRate         string `json:"bounceRate"`
	AvgSessionDuration string `json:"avgSessionDuration"`
}

type TrafficPoint struct {
	Date  string `json:"date"`
	Users int64  `json:"users"`
}

type Referrer struct {
	Source   string `json:"source"`
	Visitors string `json:"visitors"`
}

type AnalyticsSummary struct {
	Success      bool           `json:"success"`
	Stats        AnalyticsStats `json:"stats"`
	TrafficData  []TrafficPoint `json:"trafficData"`
	TopReferrers []Referrer     `json:"topReferrers"`
}
