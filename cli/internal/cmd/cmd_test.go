package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/riskboard/riskboard/pkg/dataset"
	"github.com/riskboard/riskboard/pkg/export"
	"github.com/riskboard/riskboard/pkg/types"
)

// run executes a fresh command tree with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("riskctl %s: %v\noutput:\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestPages_ListsAllPages(t *testing.T) {
	out := mustRun(t, "pages")
	for _, want := range []string{"overview", "insights", "regional", "impact", "actions", "Business Impact"} {
		if !strings.Contains(out, want) {
			t.Errorf("pages output missing %q:\n%s", want, out)
		}
	}
}

func TestShow_Regional(t *testing.T) {
	out := mustRun(t, "show", "regional")
	for _, want := range []string{"Regional Analysis", "Lagos", "₦4,729,990", "URGENT", "National Average: 63.8%", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("show regional missing %q", want)
		}
	}
}

func TestShow_TitleAndCurrencyFlags(t *testing.T) {
	out := mustRun(t, "--title", "Q3 Review", "show", "overview")
	if !strings.Contains(out, "Q3 Review") {
		t.Errorf("overview should carry the configured title:\n%s", out)
	}
	out = mustRun(t, "--currency", "NGN ", "show", "regional")
	if !strings.Contains(out, "NGN 4,729,990") {
		t.Errorf("regional should use the configured currency symbol:\n%s", out)
	}
}

func TestShow_Actions_PointsAtTemplateExport(t *testing.T) {
	out := mustRun(t, "show", "actions")
	if !strings.Contains(out, "riskctl export --template") {
		t.Errorf("actions page should reference the template export:\n%s", out)
	}
}

func TestShow_All(t *testing.T) {
	out := mustRun(t, "show", "--all")
	for _, want := range []string{"Overview", "AI Insights", "Regional Analysis", "Business Impact", "Quick Actions"} {
		if !strings.Contains(out, want) {
			t.Errorf("show --all missing page %q", want)
		}
	}
}

func TestShow_UnknownPage(t *testing.T) {
	_, err := run(t, "show", "nope")
	if err == nil || !strings.Contains(err.Error(), `unknown page "nope"`) {
		t.Fatalf("got err=%v, want unknown page error", err)
	}
}

func TestShow_RequiresPage(t *testing.T) {
	if _, err := run(t, "show"); err == nil {
		t.Fatal("show without a page should fail")
	}
}

func TestTextBar(t *testing.T) {
	cases := []struct {
		v, top float64
		want   int
	}{
		{10, 10, 40},
		{5, 10, 20},
		{0.01, 10, 1},
		{0, 10, 0},
		{3, 0, 0},
	}
	for _, c := range cases {
		if got := len([]rune(textBar(c.v, c.top, barWidth))); got != c.want {
			t.Errorf("textBar(%v, %v): got %d cells, want %d", c.v, c.top, got, c.want)
		}
	}
}

func TestExport_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	out := mustRun(t, "export", "-o", path)
	if !strings.Contains(out, "wrote "+path) {
		t.Errorf("got output %q, want confirmation", out)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 6 || got[0] != export.SheetSummary {
		t.Errorf("got sheets %v, want 6 starting with %s", got, export.SheetSummary)
	}
}

func TestExport_Template(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.xlsx")
	mustRun(t, "export", "--template", "-o", path)
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open template: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(export.SheetCases)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) == 0 || len(rows[0]) != len(export.CaseColumns) {
		t.Errorf("got header %v, want %d columns", rows, len(export.CaseColumns))
	}
}

func TestExport_RequiresOutput(t *testing.T) {
	_, err := run(t, "export")
	if err == nil || !strings.Contains(err.Error(), "--output") {
		t.Fatalf("got err=%v, want missing --output", err)
	}
}

func TestCheck_Passes(t *testing.T) {
	out := mustRun(t, "check")
	if strings.Contains(out, "✗") {
		t.Errorf("embedded data should pass every check:\n%s", out)
	}
	if n := strings.Count(out, "✓"); n != 6 {
		t.Errorf("got %d passing checks, want 6", n)
	}
}

// shortSource drops one region so the region checks fail.
type shortSource struct{ *dataset.Dataset }

func (s shortSource) Regions() []types.RegionRecord {
	return s.Dataset.Regions()[:7]
}

func TestRunChecks_ReportsFailures(t *testing.T) {
	var out bytes.Buffer
	failed := runChecks(&out, checks(shortSource{dataset.New()}))
	if failed != 2 {
		t.Errorf("got %d failures, want 2 (regional records, regional strategy):\n%s", failed, out.String())
	}
	if !strings.Contains(out.String(), "✗ regional records: invalid regions") {
		t.Errorf("failure line should name the field:\n%s", out.String())
	}
}

const exposition = `
# TYPE riskboard_region_dropout_rate_percent gauge
riskboard_region_dropout_rate_percent{priority="URGENT",region="Lagos"} 66.2
riskboard_region_dropout_rate_percent{priority="STUDY",region="Port Harcourt"} 61.2
# TYPE riskboard_region_beneficiaries gauge
riskboard_region_beneficiaries{region="Lagos"} 1429
riskboard_region_beneficiaries{region="Port Harcourt"} 1644
# TYPE riskboard_region_annual_cost gauge
riskboard_region_annual_cost{region="Lagos"} 4729990
riskboard_region_annual_cost{region="Port Harcourt"} 5030640
# TYPE riskboard_report_revision gauge
riskboard_report_revision 3
# TYPE riskboard_alerts_firing gauge
riskboard_alerts_firing 2
`

func TestRegionSamples(t *testing.T) {
	mfs, err := parseMetrics(strings.NewReader(exposition))
	if err != nil {
		t.Fatalf("parseMetrics: %v", err)
	}
	got := regionSamples(mfs)
	if len(got) != 2 {
		t.Fatalf("got %d regions, want 2", len(got))
	}
	lagos := got[0]
	if lagos.Region != "Lagos" || lagos.Priority != "URGENT" || lagos.Beneficiaries != 1429 || lagos.AnnualCost != 4729990 {
		t.Errorf("got %+v, want Lagos first with its gauges", lagos)
	}
	if got[1].Region != "Port Harcourt" {
		t.Errorf("got %q second, want Port Harcourt", got[1].Region)
	}
}

func TestSumFamily_Nil(t *testing.T) {
	if got := sumFamily(nil); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		_, _ = w.Write([]byte(exposition))
	}))
	defer srv.Close()

	out := mustRun(t, "scrape", "--url", srv.URL)
	for _, want := range []string{"revision 3, 2 alert(s) firing", "Lagos", "4729990", "Port Harcourt"} {
		if !strings.Contains(out, want) {
			t.Errorf("scrape output missing %q:\n%s", want, out)
		}
	}
}

func TestScrape_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := run(t, "scrape", "--url", srv.URL)
	if err == nil || !strings.Contains(err.Error(), "unexpected status 503") {
		t.Fatalf("got err=%v, want unexpected status 503", err)
	}
}
