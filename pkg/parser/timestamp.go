package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// UnparsableTimestampError is returned when no known format matches a
// date/time token pair. It carries the original tokens for diagnostics.
type UnparsableTimestampError struct {
	DateToken string
	TimeToken string
}

func (e *UnparsableTimestampError) Error() string {
	return fmt.Sprintf("unparsable timestamp %q %q", e.DateToken, e.TimeToken)
}

// timestampLayouts are the supported (date, time) layout combinations, tried
// in order. Day-first comes before month-first, so an ambiguous date like
// 03/04/25 parses with day-first semantics. Order is load-bearing: the same
// transcript must normalize identically on every run.
var timestampLayouts = []string{
	"02/01/06 3:04 pm",
	"02/01/2006 3:04 pm",
	"01/02/06 3:04 pm",
	"01/02/2006 3:04 pm",
	"02/01/06 15:04",
	"02/01/2006 15:04",
	"01/02/06 15:04",
	"01/02/2006 15:04",
}

// fallbackTimeRe extracts a bare HH:MM from a time token that matched none
// of the full layouts (e.g. one with a mangled meridiem suffix).
var fallbackTimeRe = regexp.MustCompile(`\d{1,2}:\d{2}`)

// meridiemRe matches a meridiem marker glued to the minutes ("10:30pm").
var meridiemRe = regexp.MustCompile(`(\d)\s*([ap]m?)$`)

// unicodeSpaceReplacer scrubs the non-breaking, narrow, thin, and hair space
// variants that chat exporters emit before meridiem markers.
var unicodeSpaceReplacer = strings.NewReplacer(
	" ", " ", // no-break space
	" ", " ", // narrow no-break space
	" ", " ", // thin space
	" ", " ", // hair space
)

// NormalizeTimestamp parses a transcript date/time token pair into a single
// timezone-naive instant. It tries each supported layout in order and falls
// back to extracting a bare HH:MM before giving up with
// *UnparsableTimestampError.
func NormalizeTimestamp(dateToken, timeToken string) (time.Time, error) {
	cleaned := cleanTimeToken(timeToken)
	candidate := dateToken + " " + cleaned

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, candidate); err == nil {
			return ts, nil
		}
	}

	// Last resort: salvage a bare HH:MM and retry, 24-hour layouts first.
	if hhmm := fallbackTimeRe.FindString(cleaned); hhmm != "" && hhmm != cleaned {
		for _, dateLayout := range []string{"02/01/06", "02/01/2006", "01/02/06", "01/02/2006"} {
			if ts, err := time.Parse(dateLayout+" 15:04", dateToken+" "+hhmm); err == nil {
				return ts, nil
			}
		}
	}

	return time.Time{}, &UnparsableTimestampError{DateToken: dateToken, TimeToken: timeToken}
}

// cleanTimeToken scrubs Unicode space variants, collapses internal
// whitespace, lower-cases the meridiem, and inserts a space between the
// minutes and a glued meridiem marker so meridiem-aware layouts match.
func cleanTimeToken(token string) string {
	s := unicodeSpaceReplacer.Replace(token)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToLower(strings.TrimSpace(s))
	// Dotted meridiems ("p.m.") normalize to plain am/pm before the glue check.
	s = strings.ReplaceAll(s, "a.m.", "am")
	s = strings.ReplaceAll(s, "p.m.", "pm")
	s = meridiemRe.ReplaceAllString(s, "$1 $2")
	return s
}
