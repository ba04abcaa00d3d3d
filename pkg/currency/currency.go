// Package currency renders whole-peso amounts the way the checkout screen
// shows them: no decimals, locale-grouped thousands, leading peso sign.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when no locale is configured or the configured one
// does not parse.
const DefaultLocale = "es-CL"

// Formatter formats amounts for one locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a formatter for the given BCP 47 locale, falling back
// to DefaultLocale on a bad tag.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Group returns the amount with locale grouping and no decimals.
func (f *Formatter) Group(amount int64) string {
	return f.printer.Sprintf("%d", amount)
}

// Display returns the amount prefixed with the peso sign, e.g. "$12.500".
func (f *Formatter) Display(amount int64) string {
	return "$" + f.Group(amount)
}

// DisplayShortfall renders the amount still owed when nothing has been
// entered in the paid field: the full total, negated, e.g. "-$12.500".
func (f *Formatter) DisplayShortfall(total int64) string {
	return "-$" + f.Group(total)
}
