// Package format turns raw backend values into display text. Every string
// that originates from the backend must go through EscapeHTML before it is
// written into a page, or through Sanitize before it is drawn on a terminal.
package format

import (
	"fmt"
	"html"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
)

// Placeholder is shown wherever a value is absent.
const Placeholder = "—"

// InvalidDate is rendered for timestamps that cannot be parsed.
const InvalidDate = "Invalid Date"

// DefaultDateLayout is the display layout for timestamps.
const DefaultDateLayout = "02.01.2006, 15:04:05"

// isoLayouts are tried in order. Zone-less layouts are interpreted in the
// display location, which is how the backend writes local isoformat() values.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatDate formats an ISO timestamp in local time with DefaultDateLayout.
func FormatDate(iso string) string {
	return FormatDateIn(iso, time.Local, DefaultDateLayout)
}

// FormatDateIn formats an ISO timestamp in loc using layout.
func FormatDateIn(iso string, loc *time.Location, layout string) string {
	if loc == nil {
		loc = time.Local
	}
	t, ok, err := ParseTime(iso, loc)
	if !ok {
		return Placeholder
	}
	if err != nil {
		return InvalidDate
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.In(loc).Format(layout)
}

// ParseTime parses an ISO timestamp. ok is false for empty input.
func ParseTime(iso string, loc *time.Location) (t time.Time, ok bool, err error) {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return time.Time{}, false, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, iso, loc); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, true, fmt.Errorf("unrecognised timestamp %q", iso)
}

// EscapeHTML coerces v to a string and escapes it for HTML text and
// attribute content. nil, including typed nil pointers, yields "".
func EscapeHTML(v any) string {
	return html.EscapeString(Text(v))
}

// Text coerces v to its display string with the same nil rules as EscapeHTML.
func Text(v any) string {
	if isNil(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case *string:
		return *x
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Sanitize strips terminal escape sequences and control characters so a
// backend string cannot move the cursor or recolour the screen.
func Sanitize(v any) string {
	s := ansi.Strip(Text(v))
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// PrettyJSON renders v as two-space indented JSON.
func PrettyJSON(v any) string {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return "Error: " + err.Error()
	}
	return string(b)
}

// Bytes renders a byte count in IEC units.
func Bytes(n float64) string {
	if n < 0 {
		return Placeholder
	}
	return humanize.IBytes(uint64(n))
}

// Ago renders t relative to now, e.g. "3 minutes ago".
func Ago(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return humanize.Time(t)
}

// Count renders an integer with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}
