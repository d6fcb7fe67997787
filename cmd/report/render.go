package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	app "github.com/okian/stagetally/internal/app"
	"github.com/okian/stagetally/internal/domain/types"
)

// newTable draws box characters on a terminal and plain ASCII when piped.
func newTable(out io.Writer, title string) table.Writer {
	tbl := table.NewWriter()
	if isTerminal(out) {
		tbl.SetStyle(table.StyleLight)
	} else {
		tbl.SetStyle(table.StyleDefault)
	}
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.SetTitle(title)
	return tbl
}

func renderReport(out io.Writer, rep *app.Report) {
	fmt.Fprintf(out, "%s / %s (as of %s)\n", rep.Group, rep.Member, rep.Today)
	fmt.Fprintf(out, "Total appearances: %s\n", humanize.Comma(int64(rep.TotalCount)))
	if m := rep.Milestone; m != nil {
		fmt.Fprintf(out, "%d more to reach the %s\n", m.Remaining, humanize.Ordinal(m.Next))
		if m.Predicted != nil {
			fmt.Fprintf(out, "Expected at %s %s %s\n", m.Predicted.Date, m.Predicted.Stage, m.Predicted.Time)
		}
	}
	fmt.Fprintln(out)

	if len(rep.PastMilestones) > 0 {
		tbl := newTable(out, "Milestones")
		tbl.AppendHeader(table.Row{"Milestone", "Date", "Stage"})
		for _, r := range rep.PastMilestones {
			tbl.AppendRow(table.Row{humanize.Ordinal(r.Milestone), r.Date, r.Stage})
		}
		fmt.Fprintln(out, tbl.Render())
		fmt.Fprintln(out)
	}

	renderRows(out, "History", rep.History)
	if len(rep.Future) > 0 {
		renderRows(out, "Upcoming", rep.Future)
	}

	tbl := newTable(out, "By stage")
	tbl.AppendHeader(table.Row{"Stage", "Count"})
	for _, s := range rep.StageTally {
		tbl.AppendRow(table.Row{s.Stage, s.Count})
	}
	fmt.Fprintln(out, tbl.Render())
	fmt.Fprintln(out)

	tbl = newTable(out, "By year")
	tbl.AppendHeader(table.Row{"Year", "Count"})
	for _, y := range rep.YearTally {
		tbl.AppendRow(table.Row{y.Year, y.Count})
	}
	fmt.Fprintln(out, tbl.Render())
	fmt.Fprintln(out)

	for _, s := range rep.StageRankings {
		renderEntries(out, "Stage ranking: "+s.Scope, s.Entries)
	}
	for _, y := range rep.YearRankings {
		renderEntries(out, "Year ranking: "+y.Scope, y.Entries)
	}
	renderEntries(out, "Co-appearances", rep.CoAppearance)
}

func renderRows(out io.Writer, title string, rows []app.Row) {
	tbl := newTable(out, title)
	tbl.AppendHeader(table.Row{"#", "Date", "Stage", "Time"})
	for _, r := range rows {
		tbl.AppendRow(table.Row{r.Count, r.Date, r.Stage, r.Time})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d", len(rows))})
	fmt.Fprintln(out, tbl.Render())
	fmt.Fprintln(out)
}

func renderEntries(out io.Writer, title string, entries []types.Entry) {
	tbl := newTable(out, title)
	tbl.AppendHeader(table.Row{"Rank", "Name", "Count"})
	for _, e := range entries {
		tbl.AppendRow(table.Row{e.Rank, e.Name, e.Count})
	}
	fmt.Fprintln(out, tbl.Render())
	fmt.Fprintln(out)
}

func renderGroups(out io.Writer, groups []app.GroupInfo) {
	tbl := newTable(out, "Groups")
	tbl.AppendHeader(table.Row{"Group", "Members", "Alumnae of", "Performances"})
	for _, g := range groups {
		tbl.AppendRow(table.Row{g.Name, strings.Join(g.Members, ", "), g.Base, g.Performances})
	}
	fmt.Fprintln(out, tbl.Render())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
