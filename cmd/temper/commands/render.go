package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/temper/internal/app"
	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/temper/internal/ui/output"
	"go.trai.ch/temper/internal/ui/style"
)

// palette holds styles bound to one output stream so color detection follows that stream.
type palette struct {
	header lipgloss.Style
	muted  lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	warm   lipgloss.Style
	cell   func(width int) lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(output.ProfileFor(w)))
	return palette{
		header: r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(style.Slate),
		good:   r.NewStyle().Foreground(style.Green),
		bad:    r.NewStyle().Foreground(style.Red),
		warm:   r.NewStyle().Foreground(style.Amber),
		cell:   func(width int) lipgloss.Style { return r.NewStyle().Width(width) },
	}
}

var demoColumns = []struct {
	title string
	width int
}{
	{"", 2},
	{"RUN", 5},
	{"CACHE", 9},
	{"LOOKUP", 9},
	{"CAPTURE", 9},
	{"COMPILE", 12},
	{"TACTICS", 10},
}

func renderDemo(w io.Writer, s *app.DemoSummary) {
	p := newPalette(w)

	// row renders values in the demo columns. lead styles the first column only.
	row := func(values []string, lead, st lipgloss.Style) string {
		cells := make([]string, len(values))
		for i, v := range values {
			cs := st
			if i == 0 {
				cs = lead
			}
			cells[i] = p.cell(demoColumns[i].width).Render(cs.Render(v))
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " ")
	}

	titles := make([]string, len(demoColumns))
	for i, c := range demoColumns {
		titles[i] = c.title
	}

	var b strings.Builder
	b.WriteString(row(titles, p.header, p.header) + "\n")
	for i, r := range s.Runs {
		b.WriteString(demoRow(p, i+1, r, row) + "\n")
	}

	if ratio, ok := s.Speedup(); ok {
		b.WriteString("\n" + p.warm.Render(fmt.Sprintf("timing cache reuse: %.1fx speedup over the fastest uncached build", ratio)) + "\n")
	} else {
		b.WriteString("\n" + p.muted.Render("no build reused a persisted timing cache") + "\n")
	}

	_, _ = io.WriteString(w, b.String())
}

func demoRow(p palette, n int, r app.DemoRun, row func([]string, lipgloss.Style, lipgloss.Style) string) string {
	icon, lead, st := style.Check, p.good, lipgloss.NewStyle()
	if !r.OK() {
		icon, lead, st = style.Cross, p.bad, p.bad
	}

	lookup, capture := "-", "-"
	if r.UseCache && r.Report != nil {
		lookup = r.Report.Lookup.String()
		capture = r.Report.Capture.String()
	}

	compile, tactics := "failed", "-"
	if r.OK() {
		compile = fmt.Sprintf("%.2f ms", r.Report.ElapsedMillis())
		tactics = fmt.Sprintf("%d/%d", r.Report.Stats.CacheHits, r.Report.Stats.Timed)
	}

	values := []string{icon, strconv.Itoa(n), cacheLabel(r.UseCache), lookup, capture, compile, tactics}
	return row(values, lead, st)
}

func renderBuild(w io.Writer, r *domain.BuildReport) {
	p := newPalette(w)

	line := fmt.Sprintf("%s compiled %s timing cache in %.2f ms",
		p.good.Render(style.Check), cacheLabel(r.UseCache), r.ElapsedMillis())
	if r.UseCache {
		line += p.muted.Render(fmt.Sprintf(" (lookup %s, capture %s)", r.Lookup, r.Capture))
	}

	var b strings.Builder
	b.WriteString(line + "\n")
	for _, o := range r.Outputs {
		if o.Type != domain.Int32 {
			continue
		}
		_, _ = fmt.Fprintf(&b, "  %s %s = %v\n", p.muted.Render("output"), o.Name, o.Int32s())
	}
	_, _ = io.WriteString(w, b.String())
}

func cacheLabel(useCache bool) string {
	if useCache {
		return "with"
	}
	return "without"
}
