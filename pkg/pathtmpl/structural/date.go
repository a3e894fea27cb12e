package structural

import (
	"time"

	"github.com/araddon/dateparse"
)

// DateParser recognizes free-form date strings. Only the success flag and
// the day/month fields are used.
type DateParser interface {
	TryParse(s string) (day, month int, ok bool)
}

// DateParserFunc adapts a function to DateParser
type DateParserFunc func(s string) (day, month int, ok bool)

// TryParse implements DateParser.
func (f DateParserFunc) TryParse(s string) (int, int, bool) {
	return f(s)
}

// DefaultDateParser parses with dateparse.ParseIn in UTC
func DefaultDateParser() DateParser {
	return DateParserFunc(parseAny)
}

func parseAny(s string) (day, month int, ok bool) {
	defer func() {
		if recover() != nil {
			day, month, ok = 0, 0, false
		}
	}()

	ts, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return 0, 0, false
	}
	// a layout without a year component yields year 0
	if ts.Year() == 0 {
		return 0, 0, false
	}
	return ts.Day(), int(ts.Month()), true
}
