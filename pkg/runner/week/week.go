package week

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/cadence/pkg/app"
	"tableflip.dev/cadence/pkg/printers"
)

// Week prints the active planning board.
type Week struct {
	ShowID  bool
	Service *app.Service
}

func (w *Week) Do(ctx context.Context) error {
	if w.Service == nil {
		return errors.New("can not show week, no service")
	}
	pp := printers.PrettyPrint{ShowID: w.ShowID}
	fmt.Println("")
	pp.Week(w.Service.WeekLabel(), w.Service.Store.Snapshot())
	return nil
}
