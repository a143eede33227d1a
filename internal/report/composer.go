package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"time"

	"docreport/internal/chart"
	"docreport/internal/compliance"
	"docreport/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Report palette.
const (
	ColorPrimary    = "#001847"
	ColorBackground = "#F9FAFB"
	ColorText       = "#111827"
)

const (
	defaultTimezone = "America/Sao_Paulo"
	timestampLayout = "02/01/2006, 15:04"
	truncateLimit   = 200
	noStatus        = "Sem Status"
)

// Input is everything needed to compose one contract report.
type Input struct {
	Project    string
	Provider   string
	Contract   string
	Period     string
	History    []model.MonthlyHistoryPoint
	Documents  []model.DocumentRecord
	Recipients []string
	// Chart is nil when no chart could be produced; a placeholder is drawn instead.
	Chart *chart.Image
	// LogoBase64 is the PNG logo, base64 encoded.
	LogoBase64 string
}

// BadgeStyle colours a status badge.
type BadgeStyle struct {
	Background string
	Text       string
	Border     string
}

var statusStyles = map[string]BadgeStyle{
	model.StatusConforming:    {Background: "#DCFCE7", Text: "#166534", Border: "#86EFAC"},
	model.StatusNonConforming: {Background: "#FEE2E2", Text: "#991B1B", Border: "#FCA5A5"},
	model.StatusUnderReview:   {Background: "#FEF3C7", Text: "#92400E", Border: "#FDE047"},
	model.StatusNotSent:       {Background: "#E0E7FF", Text: "#3730A3", Border: "#A5B4FC"},
	"Pendente":                {Background: "#FCE7F3", Text: "#831843", Border: "#F9A8D4"},
}

var fallbackStyle = BadgeStyle{Background: "#F3F4F6", Text: "#374151", Border: "#D1D5DB"}

// StatusBadge is the count of documents in one status.
type StatusBadge struct {
	Status string
	Count  int
	Style  BadgeStyle
}

type view struct {
	Project, Provider, Contract, Period string
	GeneratedAt                         string
	LogoURI                             template.URL
	ChartURI                            template.URL
	Score                               model.ScoreResult
	StatusBadges                        []StatusBadge
	History                             []compliance.HistoryRow
	Documents                           []model.DocumentRecord
	Recipients                          []string

	ColorPrimary, ColorBackground, ColorText string
}

// Composer renders contract reports as self-contained HTML documents.
type Composer struct {
	tmpl     *template.Template
	location *time.Location
	now      func() time.Time
}

// Option configures a Composer.
type Option func(*Composer)

// WithLocation sets the timezone of the generation timestamp.
func WithLocation(loc *time.Location) Option {
	return func(c *Composer) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		if now != nil {
			c.now = now
		}
	}
}

func NewComposer(opts ...Option) (*Composer, error) {
	c := &Composer{now: time.Now}

	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		loc = time.FixedZone("BRT", -3*60*60)
	}
	c.location = loc

	for _, opt := range opts {
		opt(c)
	}

	tmpl, err := template.New("report.html").Funcs(funcMap()).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	c.tmpl = tmpl
	return c, nil
}

// Compose renders the report of one contract.
func (c *Composer) Compose(in Input) (string, error) {
	v := view{
		Project:         in.Project,
		Provider:        in.Provider,
		Contract:        in.Contract,
		Period:          in.Period,
		GeneratedAt:     c.now().In(c.location).Format(timestampLayout),
		LogoURI:         template.URL("data:image/png;base64," + in.LogoBase64),
		Score:           compliance.Score(in.Documents, in.Project),
		StatusBadges:    StatusSummary(in.Documents),
		History:         compliance.DescribeHistory(in.History, in.Project),
		Documents:       in.Documents,
		Recipients:      in.Recipients,
		ColorPrimary:    ColorPrimary,
		ColorBackground: ColorBackground,
		ColorText:       ColorText,
	}
	if in.Chart != nil {
		v.ChartURI = template.URL(in.Chart.DataURI())
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// StatusSummary counts documents per status, most frequent first. Ties keep the order
// in which the status first appeared. Blank statuses count as "Sem Status".
func StatusSummary(docs []model.DocumentRecord) []StatusBadge {
	index := make(map[string]int)
	badges := make([]StatusBadge, 0)
	for _, d := range docs {
		status := d.Status
		if status == "" {
			status = noStatus
		}
		i, ok := index[status]
		if !ok {
			i = len(badges)
			index[status] = i
			style, known := statusStyles[status]
			if !known {
				style = fallbackStyle
			}
			badges = append(badges, StatusBadge{Status: status, Style: style})
		}
		badges[i].Count++
	}
	sort.SliceStable(badges, func(i, j int) bool { return badges[i].Count > badges[j].Count })
	return badges
}
