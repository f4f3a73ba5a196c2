package report

// PageID identifies one page of the report.
type PageID string

// Report pages in navigation order.
const (
	PageOverview PageID = "overview"
	PageInsights PageID = "insights"
	PageRegional PageID = "regional"
	PageImpact   PageID = "impact"
	PageActions  PageID = "actions"
)

// Section types.
const (
	SectionMetrics = "metrics"
	SectionChart   = "chart"
	SectionTable   = "table"
	SectionCallout = "callout"
	SectionTabs    = "tabs"
	SectionSteps   = "steps"
	SectionText    = "text"
)

// PageRef is a navigation entry.
type PageRef struct {
	ID    PageID `json:"id"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
}

// Page is one fully built report page.
type Page struct {
	ID       PageID    `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Sections []Section `json:"sections"`
}

// Section is one block of a page. Exactly one widget field is populated,
// according to Type.
type Section struct {
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`

	Metrics []Metric     `json:"metrics,omitempty"`
	Chart   *ChartConfig `json:"chart,omitempty"`
	Table   *TableData   `json:"table,omitempty"`
	Callout *Callout     `json:"callout,omitempty"`
	Tabs    []Tab        `json:"tabs,omitempty"`
	Steps   []Step       `json:"steps,omitempty"`
	Text    []string     `json:"text,omitempty"`
}

// Metric is a headline figure with an optional delta caption.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	Key            string          `json:"key"`
	ChartType      string          `json:"chartType"` // "bar", "grouped_bar"
	Orientation    string          `json:"orientation"`
	Title          string          `json:"title"`
	XAxis          string          `json:"xAxis,omitempty"`
	YAxis          string          `json:"yAxis,omitempty"`
	Series         []ChartSeries   `json:"series"`
	Colors         []string        `json:"colors,omitempty"`
	ReferenceLines []ReferenceLine `json:"referenceLines,omitempty"`
	ShowLegend     bool            `json:"showLegend"`
}

// ChartSeries is one data series.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a single labelled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ReferenceLine is a horizontal marker drawn across a chart.
type ReferenceLine struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// TableData defines how to render a table.
type TableData struct {
	Key     string     `json:"key"`
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "currency", "percent"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table, keyed by column key.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// Callout levels.
const (
	LevelError   = "error"
	LevelSuccess = "success"
	LevelInfo    = "info"
)

// Callout is a highlighted message box.
type Callout struct {
	Level string   `json:"level"`
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Tab is one tab of a tabbed section.
type Tab struct {
	Label   string   `json:"label"`
	Heading string   `json:"heading"`
	Why     string   `json:"why"`
	Actions []string `json:"actions"`
	Impact  string   `json:"impact"`
}

// Step is one collapsible step of an action plan. Attachment names a
// downloadable artefact, if any.
type Step struct {
	Window     string   `json:"window"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Details    []string `json:"details"`
	Expanded   bool     `json:"expanded"`
	Attachment string   `json:"attachment,omitempty"`
}
