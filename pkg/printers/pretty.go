package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dreams/pkg/dream"
)

// DefaultWidth is the wrap width for narrative text.
const DefaultWidth = 80

type PrettyPrint struct {
	ShowID bool
	Width  int
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("01HQ3K5Z7XG9R2N4P6T8V0W2Y4  "))

	moodColors = map[dream.Mood]color.Attribute{
		dream.MoodHappy:     color.FgHiYellow,
		dream.MoodSad:       color.FgBlue,
		dream.MoodScary:     color.FgRed,
		dream.MoodConfusing: color.FgMagenta,
		dream.MoodNeutral:   color.FgWhite,
	}
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return DefaultWidth
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " dream")
	default:
		_, _ = c.Fprintln(pp.out(), " dreams")
	}
}

// Mood renders a mood label in its color.
func Mood(m dream.Mood) string {
	attr, ok := moodColors[m]
	if !ok {
		attr = color.FgWhite
	}
	return color.New(attr).Sprint(m.String())
}

// Surreal renders a surreal level as a short gauge.
func Surreal(l dream.SurrealLevel) string {
	switch l {
	case dream.SurrealLow:
		return "~"
	case dream.SurrealHigh:
		return "~~~"
	default:
		return "~~"
	}
}

// List prints one row per dream. An empty list prints "none".
func (pp *PrettyPrint) List(dreams ...*dream.Dream) {
	if len(dreams) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() / 2)
	tbl.Wrap = true

	for _, d := range dreams {
		status := " "
		if !d.IsProcessed {
			status = "*"
		}
		row := []interface{}{
			faint.Sprint(dream.FormatForDisplay(d.Date.Time)),
			status,
			Mood(d.Mood),
			Surreal(d.SurrealLevel),
			bold.Sprint(d.DisplayTitle()),
			dream.Excerpt(d.Body(), dream.DefaultExcerptLength),
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(d.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Dream prints the full record.
func (pp *PrettyPrint) Dream(d *dream.Dream) {
	w := pp.out()
	faint := color.New(color.Faint)
	italic := color.New(color.Italic)
	label := color.New(color.Bold)

	pp.Title(d.DisplayTitle())
	if pp.ShowID {
		_, _ = faint.Fprintf(w, "%s%s\n", spacing, d.ID)
	}
	_, _ = faint.Fprintf(w, "%s  ", dream.FormatForDisplay(d.Date.Time))
	_, _ = fmt.Fprintf(w, "%s  %s %s\n\n", Mood(d.Mood), Surreal(d.SurrealLevel), d.SurrealLevel)

	if d.IsProcessed {
		_, _ = fmt.Fprintln(w, wordwrap.String(d.ReconstructedContent, pp.width()))
		_, _ = fmt.Fprintln(w)
	} else {
		_, _ = italic.Fprintln(w, "Not processed yet.")
		_, _ = fmt.Fprintln(w)
	}

	if strings.TrimSpace(d.RawContent) != "" {
		_, _ = label.Fprintln(w, "As remembered")
		_, _ = faint.Fprintln(w, wordwrap.String(d.RawContent, pp.width()))
		_, _ = fmt.Fprintln(w)
	}
	if d.AudioURI != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", label.Sprint("Audio:"), d.AudioURI)
	}
	if d.ImageURI != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", label.Sprint("Image:"), d.ImageURI)
	}
	if len(d.Characters) > 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", label.Sprint("Characters:"), strings.Join(d.Characters, ", "))
	}
	if len(d.Symbols) > 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", label.Sprint("Symbols:"), strings.Join(d.Symbols, ", "))
	}
}

// ImagePrompt prints an illustration description.
func (pp *PrettyPrint) ImagePrompt(prompt string) {
	label := color.New(color.Bold)
	_, _ = fmt.Fprintln(pp.out())
	_, _ = label.Fprintln(pp.out(), "Image prompt")
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(prompt, pp.width()))
}

// ShareSignature closes every shared dream.
const ShareSignature = "Shared from Dream Fixer"

// ShareText renders a dream as plain text for sharing outside the journal.
func ShareText(d *dream.Dream) string {
	return d.DisplayTitle() + "\n\n" + d.Body() + "\n\n" + ShareSignature
}

// Share prints the plain share text, without color or wrapping.
func (pp *PrettyPrint) Share(d *dream.Dream) {
	_, _ = fmt.Fprintln(pp.out(), ShareText(d))
}
