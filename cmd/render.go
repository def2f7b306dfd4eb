package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MakerMama/afterschool-finder/core/catalog"
	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/schedule"
	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	distanceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)
)

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func timeRange(start, end timeofday.Minutes) string {
	return timeofday.Format(start) + " - " + timeofday.Format(end)
}

func ageRange(p model.Program) string {
	return fmt.Sprintf("%g-%g", p.MinAge, p.MaxAge)
}

func money(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("$%.2f", *v)
}

// renderMatch draws one search result as a card.
func renderMatch(m model.Match) string {
	p := m.Program
	title := titleStyle.Render(p.Name)
	if m.Distance != nil {
		title += "  " + distanceStyle.Render(fmt.Sprintf("%.1f miles", *m.Distance))
	}
	lines := []string{
		title,
		field("Provider", p.ProviderName),
		field("When", p.Day.String()+" "+timeRange(p.Start, p.End)),
		field("Ages", ageRange(p)),
	}
	if len(p.Categories) > 0 {
		lines = append(lines, field("Categories", p.Categories.String()))
	}
	if p.ProgramType != model.ProgramTypeUnset {
		lines = append(lines, field("Type", p.ProgramType.String()))
	}
	if p.Address != "" {
		lines = append(lines, field("Address", p.Address))
	}
	if c := money(p.Cost); c != "" {
		lines = append(lines, field("Cost", c))
	}
	if c := money(p.CostPerClass); c != "" {
		lines = append(lines, field("Per class", c))
	}
	if p.Website != "" {
		lines = append(lines, field("Website", p.Website))
	}
	lines = append(lines, field("ID", p.ID))
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func renderSummary(s catalog.Summary) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Catalog") + "\n")
	fmt.Fprintf(&b, "%s\n", field("Programs", fmt.Sprint(s.Programs)))
	fmt.Fprintf(&b, "%s\n", field("Providers", fmt.Sprint(s.Providers)))
	fmt.Fprintf(&b, "%s\n", field("Ages", fmt.Sprintf("%g-%g", s.MinAge, s.MaxAge)))
	fmt.Fprintf(&b, "%s\n", field("With address", fmt.Sprint(s.WithAddress)))
	fmt.Fprintf(&b, "%s\n", field("Categories", strings.Join(s.Categories, ", ")))

	days := make([]string, 0, len(s.ByDay))
	for _, d := range model.Weekdays {
		if n := s.ByDay[d]; n > 0 {
			days = append(days, fmt.Sprintf("%s %d", d.Short(), n))
		}
	}
	fmt.Fprintf(&b, "%s\n", field("By day", strings.Join(days, ", ")))

	if s.Cost != nil {
		fmt.Fprintf(&b, "%s\n", field("Cost", fmt.Sprintf("min $%.2f, median $%.2f, mean $%.2f, max $%.2f (%d listed, %d premium)",
			s.Cost.Min, s.Cost.Median, s.Cost.Mean, s.Cost.Max, s.Cost.Count, s.Cost.Premium)))
	}
	if s.CostPerClass != nil {
		fmt.Fprintf(&b, "%s\n", field("Per class", fmt.Sprintf("min $%.2f, median $%.2f, max $%.2f",
			s.CostPerClass.Min, s.CostPerClass.Median, s.CostPerClass.Max)))
	}
	return b.String()
}

func renderEntry(e model.ScheduleEntry) string {
	s := fmt.Sprintf("%s  %s  %s (%s)", e.Day.Short(), timeRange(e.Start, e.End), e.ProgramName, e.ProviderName)
	if e.Cost != nil {
		s += "  " + money(e.Cost)
	}
	return s
}

// renderSchedule lists a schedule's entries by day and start time, followed
// by its conflicts and name hints.
func renderSchedule(name string, entries []model.ScheduleEntry, conflicts []model.Conflict, hints []schedule.Hint) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(name) + "\n")
	sorted := append([]model.ScheduleEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		return sorted[i].Start < sorted[j].Start
	})
	if len(sorted) == 0 {
		b.WriteString("  (no programs)\n")
	}
	for _, e := range sorted {
		b.WriteString("  " + renderEntry(e) + "\n")
	}
	for _, c := range conflicts {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  conflict on %s: %s %s overlaps %s %s",
			c.Day, c.First.ProgramName, timeRange(c.First.Start, c.First.End),
			c.Second.ProgramName, timeRange(c.Second.Start, c.Second.End))) + "\n")
	}
	for _, h := range hints {
		if h.Level == schedule.HintGood {
			continue
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %s: %s", h.Level, h.Message)) + "\n")
	}
	return b.String()
}

func renderFamily(entries []model.LabeledEntry) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Family") + "\n")
	for _, d := range model.Weekdays {
		var day []model.LabeledEntry
		for _, le := range entries {
			if le.Entry.Day == d {
				day = append(day, le)
			}
		}
		if len(day) == 0 {
			continue
		}
		sort.SliceStable(day, func(i, j int) bool { return day[i].Entry.Start < day[j].Entry.Start })
		b.WriteString(titleStyle.Render(d.String()) + "\n")
		for _, le := range day {
			fmt.Fprintf(&b, "  %s  %s [%s]\n", timeRange(le.Entry.Start, le.Entry.End), le.Entry.ProgramName, le.SourceSchedule)
		}
	}
	return b.String()
}
