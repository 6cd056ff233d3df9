package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cadence/pkg/calendar"
	"tableflip.dev/cadence/pkg/catalog"
)

// Week prints the full seven-day board, one section per day, with ghost
// rows for in-flight generation.
func (pp *PrettyPrint) Week(label string, snap calendar.Snapshot) {
	pp.Title(label)
	pp.NewLine()

	for _, day := range snap.Days {
		pp.TitleWithCount(fmt.Sprintf("%s %s", day.Label, day.DateLabel), len(day.Slots))
		pp.Drafts(day.Slots...)

		if ghosts := snap.Ghosts[day.ID]; ghosts > 0 {
			f := color.New(color.Faint, color.Italic)
			if pp.ShowID {
				_, _ = f.Print(spacing)
			}
			_, _ = f.Printf(" generating %d…\n\n", ghosts)
		}
	}

	if len(snap.Unscheduled) > 0 {
		pp.TitleWithCount("Unscheduled", len(snap.Unscheduled))
		pp.Drafts(snap.Unscheduled...)
	}
}

// Seeds prints the signal catalogue as a table, marking selected rows.
func (pp *PrettyPrint) Seeds(seeds []catalog.Seed, selected []string) {
	picked := make(map[string]bool, len(selected))
	for _, id := range selected {
		picked[id] = true
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("", "ID", "SOURCE", "TITLE")
	for _, s := range seeds {
		mark := ""
		if picked[s.ID] {
			mark = "*"
		}
		table.AddRow(mark, s.ID, string(s.Source()), s.Title)
	}
	fmt.Println(table)

	if len(selected) > 0 {
		f := color.New(color.Faint)
		_, _ = f.Printf("\n%d selected\n", len(selected))
	}
}

// Plan summarizes an auto-sort pass.
func (pp *PrettyPrint) Plan(created int) {
	p := color.New()
	switch created {
	case 0:
		_, _ = p.Println("nothing to place, the week is already planned")
	case 1:
		_, _ = p.Println("placed 1 draft")
	default:
		_, _ = p.Printf("placed %d drafts\n", created)
	}
}

// Progress renders a single-line generation progress report.
func (pp *PrettyPrint) Progress(completed, total int, stage string) {
	f := color.New(color.Faint)
	line := fmt.Sprintf("%d/%d", completed, total)
	if stage != "" {
		line = fmt.Sprintf("%s %s", line, stage)
	}
	_, _ = f.Printf("\r%s%s", line, strings.Repeat(" ", 20))
}
