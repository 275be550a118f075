package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/BarCut/internal/engine"
	"github.com/piwi3910/BarCut/internal/model"
)

// Leftover colors match the PDF and GUI bar charts.
var (
	CutColor      = lipgloss.Color("#B0B0B0")
	ReusableColor = lipgloss.Color("#78C000")
	ScrapColor    = lipgloss.Color("#D62728")
	MutedColor    = lipgloss.Color("#6B7280")
	TitleColor    = lipgloss.Color("#7C3AED")
	WarningColor  = lipgloss.Color("#F59E0B")
)

// ChartWidth is the number of cells in a terminal bar chart.
const ChartWidth = 50

// Styles holds the lipgloss styles for one output.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Muted    lipgloss.Style
	Reusable lipgloss.Style
	Scrap    lipgloss.Style
	Cut      lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
}

// NewStyles builds the report styles for renderer r. A renderer writing to
// a non-terminal produces plain text.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(TitleColor),
		Section:  r.NewStyle().Bold(true),
		Muted:    r.NewStyle().Foreground(MutedColor),
		Reusable: r.NewStyle().Foreground(ReusableColor),
		Scrap:    r.NewStyle().Foreground(ScrapColor),
		Cut:      r.NewStyle().Foreground(CutColor),
		Warning:  r.NewStyle().Foreground(WarningColor).Bold(true),
		Error:    r.NewStyle().Foreground(ScrapColor).Bold(true),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1),
	}
}

// Render writes the report for every planned profile, followed by the
// job totals. Profiles that failed validation show only their error.
func Render(w io.Writer, results []model.ProfileResult) error {
	st := NewStyles(lipgloss.NewRenderer(w))
	var b strings.Builder

	total := model.CostSummary{}
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(st.Title.Render("Profile: "+r.Profile.Code) + "\n")
		if warn := BarLengthWarning(r.Profile); warn != "" {
			b.WriteString(st.Warning.Render(warn) + "\n")
		}
		if !r.OK() {
			b.WriteString(st.Error.Render("Not planned: "+r.Err.Error()) + "\n")
			continue
		}
		writeProfile(&b, st, r)
		total = total.Add(model.SummarizeCost(r.Profile, r.Plan))
	}

	if len(results) > 1 {
		b.WriteString("\n" + st.Panel.Render(st.Section.Render("Job totals")+"\n"+strings.Join(CostLines(total), "\n")) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeProfile(b *strings.Builder, st Styles, r model.ProfileResult) {
	for _, line := range HeaderLines(r.Profile) {
		b.WriteString(st.Muted.Render(line) + "\n")
	}
	b.WriteString(st.Section.Render(EfficiencyLine(r.Plan)) + "\n")

	if len(r.Plan.Bars) == 0 {
		b.WriteString(st.Muted.Render("No cuts requested") + "\n")
		return
	}
	b.WriteString(st.Muted.Render(CountLine(r.Plan)) + "\n")

	b.WriteString(st.Section.Render("Useful cuts:") + "\n")
	for _, bar := range r.Plan.Bars {
		for _, c := range bar.Cuts {
			b.WriteString(CutLine(r.Profile, c) + "\n")
		}
	}

	b.WriteString(st.Section.Render("Leftovers:") + "\n")
	for _, bar := range r.Plan.Bars {
		b.WriteString(leftoverStyle(st, bar).Render(LeftoverLine(r.Profile, bar)) + "\n")
	}

	b.WriteString(st.Section.Render("Bars:") + "\n")
	for i, bar := range r.Plan.Bars {
		b.WriteString(Chart(st, bar, r.Plan.BarLength, ChartWidth) + " " + st.Muted.Render(BarSummary(i, bar)) + "\n")
	}
}

func leftoverStyle(st Styles, bar model.Bar) lipgloss.Style {
	if bar.Class() == model.LeftoverReusable {
		return st.Reusable
	}
	return st.Scrap
}

// Chart draws a bar as a row of width cells, one run per cut and one for
// the leftover. Every cut gets at least one cell.
func Chart(st Styles, bar model.Bar, barLength float64, width int) string {
	if barLength <= 0 || width <= 0 {
		return ""
	}
	var b strings.Builder
	cells := 0
	for i, c := range bar.Cuts {
		n := int(c.Length / barLength * float64(width))
		if n < 1 {
			n = 1
		}
		if cells+n > width {
			n = width - cells
		}
		ch := "█"
		if i%2 == 1 {
			ch = "▓"
		}
		b.WriteString(st.Cut.Render(strings.Repeat(ch, n)))
		cells += n
	}
	if rest := width - cells; rest > 0 {
		fill := "░"
		if bar.Leftover <= model.Epsilon {
			fill = " "
		}
		b.WriteString(leftoverStyle(st, bar).Render(strings.Repeat(fill, rest)))
	}
	return "[" + b.String() + "]"
}

// RenderComparison writes a table of bar-length candidates, marking the best.
func RenderComparison(w io.Writer, profile model.Profile, results []engine.ComparisonResult) error {
	st := NewStyles(lipgloss.NewRenderer(w))
	best := engine.Best(results)

	var b strings.Builder
	b.WriteString(st.Title.Render("Bar length comparison: "+profile.Code) + "\n")
	b.WriteString(st.Section.Render(fmt.Sprintf("%-10s %6s %12s %14s %12s %12s", "Bar (m)", "Bars", "Efficiency", "Reusable (mm)", "Scrap (mm)", "Cost")) + "\n")
	for i, r := range results {
		if r.Err != nil {
			b.WriteString(st.Error.Render(fmt.Sprintf("%-10.2f %s", r.BarLength/1000, r.Err)) + "\n")
			continue
		}
		row := fmt.Sprintf("%-10.2f %6d %11.2f%% %14.1f %12.1f %12s",
			r.BarLength/1000, r.BarsUsed, r.Efficiency, r.ReusableTotal, r.ScrapTotal, model.FormatMoney(r.Cost.PurchasedCost))
		if i == best {
			row = st.Reusable.Render(row + "  *")
		}
		b.WriteString(row + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderLeftovers lists reusable leftover stock, longest first.
func RenderLeftovers(w io.Writer, leftovers []model.LeftoverStock) error {
	st := NewStyles(lipgloss.NewRenderer(w))
	var b strings.Builder
	b.WriteString(st.Title.Render("Reusable leftovers") + "\n")
	if len(leftovers) == 0 {
		b.WriteString(st.Muted.Render("None") + "\n")
	}
	for _, l := range leftovers {
		b.WriteString(fmt.Sprintf("%-12s bar %-3d %8.1f mm\n", l.ProfileCode, l.SourceBar, l.Length))
	}
	b.WriteString(st.Muted.Render(fmt.Sprintf("Total: %.1f mm", model.TotalLeftoverLength(leftovers))) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
