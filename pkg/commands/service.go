package commands

import (
	"tableflip.dev/cadence/pkg/app"
	"tableflip.dev/cadence/pkg/catalog"
	"tableflip.dev/cadence/pkg/commands/options"
	"tableflip.dev/cadence/pkg/stream"
)

func buildService(eo *options.EndpointOptions, wo *options.WeekOptions) (*app.Service, error) {
	on, err := wo.GetOn()
	if err != nil {
		return nil, err
	}
	svc := app.New(stream.NewClient(eo.Generate), on)
	svc.Scheduler.BrandProfileID = eo.Brand
	svc.Scheduler.Timezone = on.Location().String()
	if len(eo.Accounts) > 0 {
		svc.Scheduler.Accounts = catalog.Accounts(eo.Accounts)
	}
	return svc, nil
}

// buildSignals wires the signals service behind the local catalogue cache.
// A missing endpoint returns nil so callers can treat seeds as optional.
func buildSignals(eo *options.EndpointOptions) (catalog.Signals, error) {
	if eo.Signals == "" {
		return nil, nil
	}
	return catalog.NewCache(catalog.NewHTTPSignals(eo.Signals), nil, eo.Brand)
}
