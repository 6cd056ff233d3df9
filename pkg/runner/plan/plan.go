package plan

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/cadence/pkg/app"
	"tableflip.dev/cadence/pkg/catalog"
	"tableflip.dev/cadence/pkg/printers"
)

// Plan seeds the week with placeholders and prints the resulting board.
type Plan struct {
	ShowID  bool
	Service *app.Service
	Signals catalog.Signals
	Seeds   []string
}

func (p *Plan) Do(ctx context.Context) error {
	if p.Service == nil {
		return errors.New("can not plan, no service")
	}

	if p.Signals != nil {
		if err := p.Service.LoadSeeds(ctx, p.Signals); err != nil {
			return err
		}
	}
	for _, id := range p.Seeds {
		p.Service.ToggleSeed(id)
	}

	created := p.Service.Plan()

	pp := printers.PrettyPrint{ShowID: p.ShowID}
	fmt.Println("")
	pp.Plan(created)
	pp.NewLine()
	pp.Week(p.Service.WeekLabel(), p.Service.Store.Snapshot())
	return nil
}
