package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

const (
	metricDropoutRate   = "riskboard_region_dropout_rate_percent"
	metricBeneficiaries = "riskboard_region_beneficiaries"
	metricAnnualCost    = "riskboard_region_annual_cost"
	metricRevision      = "riskboard_report_revision"
	metricAlertsFiring  = "riskboard_alerts_firing"
)

// regionSample is one region as exposed by a running server.
type regionSample struct {
	Region        string
	Priority      string
	DropoutRate   float64
	Beneficiaries float64
	AnnualCost    float64
}

func newScrapeCmd() *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Read the regional gauges from a running riskboard server's /metrics endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			mfs, err := fetchMetrics(ctx, &http.Client{Timeout: timeout}, url)
			if err != nil {
				return fmt.Errorf("scrape %s: %w", url, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "revision %s, %s alert(s) firing\n",
				trimFloat(sumFamily(mfs[metricRevision])), trimFloat(sumFamily(mfs[metricAlertsFiring])))
			table := newTable(out)
			table.SetHeader([]string{"Region", "Priority", "Dropout Rate (%)", "Beneficiaries", "Annual Cost"})
			for _, s := range regionSamples(mfs) {
				table.Append([]string{
					s.Region,
					s.Priority,
					strconv.FormatFloat(s.DropoutRate, 'f', 1, 64),
					trimFloat(s.Beneficiaries),
					trimFloat(s.AnnualCost),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:8080/metrics", "metrics endpoint of a running server")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	return cmd
}

// fetchMetrics performs an HTTP GET to url and returns parsed metric families.
func fetchMetrics(ctx context.Context, client *http.Client, url string) (map[string]*dto.MetricFamily, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return parseMetrics(resp.Body)
}

// parseMetrics decodes a Prometheus text exposition. A partial parse with at
// least one family is treated as success.
func parseMetrics(r io.Reader) (map[string]*dto.MetricFamily, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil && len(mfs) == 0 {
		return nil, fmt.Errorf("parse prometheus text: %w", err)
	}
	return mfs, nil
}

// sumFamily adds up all counter, gauge, or untyped values in a family.
// Returns 0 if mf is nil.
func sumFamily(mf *dto.MetricFamily) float64 {
	if mf == nil {
		return 0
	}
	var total float64
	for _, m := range mf.GetMetric() {
		total += value(m)
	}
	return total
}

func value(m *dto.Metric) float64 {
	switch {
	case m.Counter != nil:
		return m.Counter.GetValue()
	case m.Gauge != nil:
		return m.Gauge.GetValue()
	case m.Untyped != nil:
		return m.Untyped.GetValue()
	}
	return 0
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// regionSamples joins the per-region families on the region label, ordered by
// descending dropout rate.
func regionSamples(mfs map[string]*dto.MetricFamily) []regionSample {
	byRegion := map[string]*regionSample{}
	get := func(region string) *regionSample {
		s, ok := byRegion[region]
		if !ok {
			s = &regionSample{Region: region}
			byRegion[region] = s
		}
		return s
	}
	for _, m := range mfs[metricDropoutRate].GetMetric() {
		s := get(label(m, "region"))
		s.Priority = label(m, "priority")
		s.DropoutRate = value(m)
	}
	for _, m := range mfs[metricBeneficiaries].GetMetric() {
		get(label(m, "region")).Beneficiaries = value(m)
	}
	for _, m := range mfs[metricAnnualCost].GetMetric() {
		get(label(m, "region")).AnnualCost = value(m)
	}

	out := make([]regionSample, 0, len(byRegion))
	for _, s := range byRegion {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DropoutRate != out[j].DropoutRate {
			return out[i].DropoutRate > out[j].DropoutRate
		}
		return out[i].Region < out[j].Region
	})
	return out
}
