// Package observability provides formatted output utilities for verbose CLI mode
// and Prometheus metrics for the server.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-pathway/internal/report"
	"github.com/jonathan/career-pathway/internal/skills"
	"github.com/jonathan/career-pathway/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printNotice(text string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, text)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// PrintReportSummary outputs the headline fields of a normalized report.
func (p *Printer) PrintReportSummary(rep *types.NormalizedReport) {
	if rep == nil {
		return
	}

	var sb strings.Builder
	es := rep.ExecutiveSummary
	sb.WriteString(fmt.Sprintf("Target:   %s\n", rep.ProfileOverview.TargetRole))
	sb.WriteString(fmt.Sprintf("Fit:      %g/%g (%s)\n", es.FitScore.Score, es.FitScore.OutOf, es.FitScore.Description))
	if es.RecommendedPath != "" {
		sb.WriteString(fmt.Sprintf("Path:     %s\n", es.RecommendedPath))
	}
	sb.WriteString(fmt.Sprintf("Gaps:     %d\n", len(rep.SkillsAssessment.Gaps)))
	sb.WriteString(fmt.Sprintf("Strengths: %d\n", len(rep.SkillsAssessment.Strengths)))

	if len(es.KeyFindings) > 0 {
		sb.WriteString("\nKey Findings:\n")
		count := min(len(es.KeyFindings), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(es.KeyFindings[i], 50)))
		}
		if len(es.KeyFindings) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(es.KeyFindings)-3))
		}
	}

	p.printBox("NORMALIZED REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReportDefects outputs the positions the normalizer had to default.
func (p *Printer) PrintReportDefects(diags report.Diagnostics) {
	if diags.Clean() {
		p.printNotice("✅ REPORT MATCHED THE CONTRACT")
		return
	}
	if diags.Malformed() {
		p.printNotice("⚠ MALFORMED REPORT, ALL SECTIONS DEFAULTED")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Defaulted %d positions (missing %d, wrong kind %d, dropped %d)\n\n",
		len(diags), diags.Count(report.DefectMissing), diags.Count(report.DefectWrongKind),
		diags.Count(report.DefectDroppedElement)))

	count := min(len(diags), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("⚠ %s\n  %s\n", diags[i].Kind, diags[i].Path))
	}
	if len(diags) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(diags)-maxItemsToShow))
	}

	p.printBox("REPORT DEFECTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRegistry outputs the reconciled skills grouped by framework.
func (p *Printer) PrintRegistry(reg *skills.Registry) {
	if reg == nil || reg.Len() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total skills: %d\n", reg.Len()))

	for _, fw := range reg.Frameworks() {
		scope := reg.Scope(fw)
		sb.WriteString(fmt.Sprintf("\n%s (%d):\n", fw, len(scope)))
		count := min(len(scope), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %s %s\n", statusMarker(scope[i]), scope[i].Name))
		}
		if len(scope) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(scope)-maxItemsToShow))
		}
	}

	p.printBox("RECONCILED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// statusMarker renders an entry's flags as [R U V] columns, '-' where unset.
func statusMarker(e types.UnifiedSkillEntry) string {
	flag := func(on bool, c string) string {
		if on {
			return c
		}
		return "-"
	}
	return "[" + flag(e.Required, "R") + flag(e.UserHas, "U") + flag(e.Validated, "V") + "]"
}

// PrintRankedSkills outputs the top ranked skills for a framework.
func (p *Printer) PrintRankedSkills(ranked *types.RankedSkills) {
	if ranked == nil || len(ranked.Skills) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Framework: %s\n\n", ranked.Framework))
	for i, e := range ranked.Skills {
		sb.WriteString(fmt.Sprintf("#%d  %s", i+1, e.Name))
		if e.IsGap() {
			sb.WriteString(" (gap)")
		}
		sb.WriteString("\n")
		if e.ImportanceValue != nil {
			sb.WriteString(fmt.Sprintf("    Importance: %d\n", *e.ImportanceValue))
		} else if e.RelevanceValue != nil {
			sb.WriteString(fmt.Sprintf("    Relevance: %d\n", *e.RelevanceValue))
		}
	}

	p.printBox("TOP RANKED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintChartProjection outputs the pie counts and bar levels of a projection.
func (p *Printer) PrintChartProjection(proj *types.ChartProjection) {
	if proj == nil {
		return
	}
	if proj.Empty {
		p.printNotice(fmt.Sprintf("NO SKILLS FOR %s", strings.ToUpper(proj.Framework)))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scale: 0-%d\n", proj.Scale))
	sb.WriteString(fmt.Sprintf("Validated: %d  User only: %d  Required only: %d\n\n",
		proj.Pie.Validated, proj.Pie.UserHasOnly, proj.Pie.RequiredOnly))

	count := min(len(proj.Bar), maxItemsToShow)
	for i := 0; i < count; i++ {
		b := proj.Bar[i]
		sb.WriteString(fmt.Sprintf("%-24s req %d  user %d  val %d\n",
			truncate(b.Skill, 24), b.RequiredLevel, b.UserLevel, b.ValidatedLevel))
	}
	if len(proj.Bar) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more", len(proj.Bar)-maxItemsToShow))
	}

	p.printBox("CHART: "+strings.ToUpper(proj.Framework), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillDiagnostics outputs non-fatal reconciliation findings.
func (p *Printer) PrintSkillDiagnostics(diags skills.Diagnostics) {
	if len(diags) == 0 {
		p.printNotice("✅ NO RECONCILIATION WARNINGS")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(diags)))
	for i, d := range diags {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", d.Kind))
		sb.WriteString(fmt.Sprintf("  %s[%d] %s\n", d.Source, d.Index, truncate(d.Skill, 40)))
		if i < len(diags)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECONCILIATION WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}
