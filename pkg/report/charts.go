package report

import "github.com/riskboard/riskboard/pkg/types"

// Chart keys.
const (
	ChartFeatureImportance = "feature-importance"
	ChartRegionalDropout   = "regional-dropout"
	ChartProjection        = "financial-projection"
)

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

var riskColors = map[types.RiskLevel]string{
	types.RiskHigh:       "#FF4444",
	types.RiskMediumHigh: "#FF8800",
	types.RiskMedium:     "#FFBB00",
	types.RiskLowest:     "#00AA00",
}

func assignColors(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

// featureChart is a horizontal bar per feature in rank order.
func featureChart(features []types.FeatureImportance) *ChartConfig {
	points := make([]ChartPoint, 0, len(features))
	for _, f := range features {
		points = append(points, ChartPoint{Label: f.Feature, Value: f.Importance})
	}
	return &ChartConfig{
		Key:         ChartFeatureImportance,
		ChartType:   "bar",
		Orientation: "horizontal",
		Title:       "Top 10 Factors That Predict Customer Dropout",
		XAxis:       "Predictive Impact Score",
		YAxis:       "Risk Factors",
		Series:      []ChartSeries{{Name: "Predictive Impact Score", Data: points, Color: "#EF4444"}},
		Colors:      []string{"#EF4444"},
	}
}

// regionalChart is a vertical bar per region, colored by risk level, with
// the national average drawn across it.
func regionalChart(regions []types.RegionRecord, national float64) *ChartConfig {
	points := make([]ChartPoint, 0, len(regions))
	for _, r := range regions {
		points = append(points, ChartPoint{Label: r.Region, Value: r.DropoutRate, Color: riskColors[r.RiskLevel]})
	}
	return &ChartConfig{
		Key:         ChartRegionalDropout,
		ChartType:   "bar",
		Orientation: "vertical",
		Title:       "Dropout Rate by Region",
		XAxis:       "Region",
		YAxis:       "Dropout Rate (%)",
		Series:      []ChartSeries{{Name: "Dropout Rate (%)", Data: points}},
		Colors:      assignColors(1),
		ReferenceLines: []ReferenceLine{{
			Label: "National Average: " + pct(national),
			Value: national,
			Color: "#FF0000",
		}},
	}
}

// projectionChart groups investment, savings and net benefit by year.
func projectionChart(p types.FinancialProjection) *ChartConfig {
	series := func(name string, values []float64) ChartSeries {
		points := make([]ChartPoint, len(values))
		for i, v := range values {
			points[i] = ChartPoint{Label: p.Years[i], Value: v}
		}
		return ChartSeries{Name: name, Data: points}
	}
	cfg := &ChartConfig{
		Key:         ChartProjection,
		ChartType:   "grouped_bar",
		Orientation: "vertical",
		Title:       "Financial Impact Over 3 Years (Millions)",
		XAxis:       "Year",
		YAxis:       "Millions",
		Series: []ChartSeries{
			series("Investment", p.Investment),
			series("Savings", p.Savings),
			series("Net Benefit", p.NetBenefit),
		},
		ShowLegend: true,
	}
	cfg.Colors = []string{"#FF6B6B", "#4ECDC4", "#45B7D1"}
	for i := range cfg.Series {
		cfg.Series[i].Color = cfg.Colors[i]
	}
	return cfg
}
