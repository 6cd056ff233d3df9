package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// WeekOptions
type WeekOptions struct {
	OnString string
}

func AddWeekArgs(cmd *cobra.Command, o *WeekOptions) {
	cmd.Flags().StringVar(&o.OnString, "week", "",
		`Plan the week containing a date, example: --week="2026-2-28" or --week="2/28".`)
}

// GetOn resolves the target date, defaulting to now.
func (o *WeekOptions) GetOn() (time.Time, error) {
	if o.OnString == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(layoutISO, o.OnString)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, o.OnString)
		if err != nil {
			return time.Time{}, err
		}
		t = t.AddDate(time.Now().Year(), 0, 0)
	}
	return t, nil
}
