package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dreams/pkg/dream"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month of then, highlighting days with a dream.
func (pp *PrettyPrint) Calendar(then time.Time, dreams ...*dream.Dream) {
	pp.PrintMonthCount(then, CountByDay(then, dreams...))
}

// CalendarYear prints every month of then's year.
func (pp *PrettyPrint) CalendarYear(then time.Time, dreams ...*dream.Dream) {
	month := time.Date(then.Year(), time.January, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 12; i++ {
		pp.Calendar(month, dreams...)
		month = NextMonth(month)
	}
}

// CountByDay counts dreams per local day of then's month.
func CountByDay(then time.Time, dreams ...*dream.Dream) []int {
	count := make([]int, DaysIn(then))
	for _, d := range dreams {
		local := d.Date.Local()
		if local.Year() == then.Year() && local.Month() == then.Month() {
			count[local.Day()-1]++
		}
	}
	return count
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)
	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < len(count); i++ {
		if count[i] == 0 {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.UTC).Weekday()
}
