package seeds

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/cadence/pkg/app"
	"tableflip.dev/cadence/pkg/catalog"
	"tableflip.dev/cadence/pkg/printers"
)

// Seeds lists the signal catalogue and applies selection toggles.
type Seeds struct {
	Service *app.Service
	Signals catalog.Signals
	Toggle  []string
	Refresh bool
}

func (s *Seeds) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not list seeds, no service")
	}
	if s.Signals == nil {
		return errors.New("can not list seeds, no signals source")
	}

	if s.Refresh {
		if cache, ok := s.Signals.(*catalog.Cache); ok {
			if _, err := cache.Refresh(ctx); err != nil {
				return err
			}
		}
	}
	if err := s.Service.LoadSeeds(ctx, s.Signals); err != nil {
		return err
	}

	for _, id := range s.Toggle {
		s.Service.ToggleSeed(id)
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Seeds(s.Service.Scheduler.Seeds, s.Service.Store.Snapshot().SelectedSeeds)
	return nil
}
