package options

import (
	"time"

	"github.com/spf13/cobra"
)

const layoutMonth = "2006-01"

// CalendarOptions
type CalendarOptions struct {
	Month string
	Year  bool
}

func AddCalendarArgs(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().StringVar(&o.Month, "month", "",
		`Month to show, example: --month="2024-01". Defaults to this month.`)
	cmd.Flags().BoolVar(&o.Year, "year", false,
		"Show every month of the year.")
}

func (o *CalendarOptions) GetMonth() (time.Time, error) {
	if o.Month == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation(layoutMonth, o.Month, time.Local)
}
