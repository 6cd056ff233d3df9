package ui

import (
	"context"
	"errors"

	"tableflip.dev/cadence/pkg/app"
	"tableflip.dev/cadence/pkg/catalog"
	"tableflip.dev/cadence/pkg/tui/board"
)

// UI opens the interactive week board.
type UI struct {
	Service *app.Service
	Signals catalog.Signals
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("can not open ui, no service")
	}
	if u.Signals != nil {
		if err := u.Service.LoadSeeds(ctx, u.Signals); err != nil {
			return err
		}
	}
	return board.Run(u.Service)
}
