package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/cadence/pkg/draft"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("seeded-2026-01-05-t1  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" draft")
	default:
		_, _ = c.Println(" drafts")
	}
}

// StatusSymbol is the one-character marker shown in front of a draft.
func StatusSymbol(s draft.Status) string {
	switch s {
	case draft.StatusPlaceholder:
		return "◦"
	case draft.StatusStreaming:
		return "~"
	case draft.StatusScheduled:
		return "✓"
	default:
		return "•"
	}
}

func statusPrinter(s draft.Status) *color.Color {
	switch s {
	case draft.StatusPlaceholder:
		return color.New(color.Faint)
	case draft.StatusStreaming:
		return color.New(color.FgHiCyan, color.Italic)
	case draft.StatusScheduled:
		return color.New(color.FgGreen)
	default:
		return color.New()
	}
}

// Drafts prints a day's slot list in time order.
func (pp *PrettyPrint) Drafts(drafts ...*draft.Draft) {
	if len(drafts) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, d := range drafts {
		if pp.ShowID {
			_, _ = y.Print(d.ID)
			pad := len(spacing) - len(d.ID)
			if pad > 0 {
				_, _ = y.Print(strings.Repeat(" ", pad))
			}
		}
		p := statusPrinter(d.Status)
		_, _ = p.Printf("%s %s %s", StatusSymbol(d.Status), d.Time, d.Title)
		if len(d.Platforms) > 0 {
			f := color.New(color.Faint)
			_, _ = f.Printf("  [%s]", strings.Join(d.Platforms, ", "))
		}
		fmt.Println("")
	}
	fmt.Println("")
}
