package generate

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/cadence/pkg/app"
	"tableflip.dev/cadence/pkg/catalog"
	"tableflip.dev/cadence/pkg/printers"
)

// Generate plans the week and drives a full generation run, printing the
// board once the stream drains.
type Generate struct {
	ShowID  bool
	Service *app.Service
	Signals catalog.Signals
	Seeds   []string

	// DraftID limits the run to one draft.
	DraftID string
}

func (g *Generate) Do(ctx context.Context) error {
	if g.Service == nil {
		return errors.New("can not generate, no service")
	}

	pp := printers.PrettyPrint{ShowID: g.ShowID}

	if g.DraftID != "" {
		if err := g.Service.Regenerate(ctx, g.DraftID); err != nil {
			return err
		}
		fmt.Println("")
		pp.Week(g.Service.WeekLabel(), g.Service.Store.Snapshot())
		return nil
	}

	if g.Signals != nil {
		if err := g.Service.LoadSeeds(ctx, g.Signals); err != nil {
			return err
		}
	}
	for _, id := range g.Seeds {
		g.Service.ToggleSeed(id)
	}

	created := g.Service.Plan()
	pp.Plan(created)

	if err := g.Service.Generate(ctx); err != nil {
		return err
	}

	fmt.Println("")
	pp.Week(g.Service.WeekLabel(), g.Service.Store.Snapshot())
	return nil
}
