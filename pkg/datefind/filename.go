package datefind

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reStrictDate = regexp.MustCompile(`(\d{4})[-_]?(\d{2})[-_]?(\d{2})`)
	reEightDigit = regexp.MustCompile(`(20[0-9]{2})(0[1-9]|1[0-2])([0-3][0-9])`)
	reSixDigit   = regexp.MustCompile(`(20[0-9]{2})(0[1-9]|1[0-2])`)
)

// numericPrefixes are camera and app prefixes stripped before the all-digits
// epoch interpretation.
var numericPrefixes = []string{"img", "img_", "image", "picture", "photo"}

// FilenameExtractor derives a date from patterns embedded in the file name.
type FilenameExtractor struct {
	Window Window
}

// Extract tries, in order: a 4-2-2 digit date with optional -/_ separators,
// an 8-digit YYYYMMDD run (then a 6-digit YYYYMM run with day = 1), and
// finally a purely numeric name read as a Unix epoch. The first sub-strategy
// that yields a calendar- and window-valid date wins.
func (e FilenameExtractor) Extract(item Item) (Evidence, bool) {
	name := strings.ToLower(item.Name)

	if t, ok := e.strictDate(name); ok {
		return Evidence{Time: t, Source: SourceFilename}, true
	}
	if t, ok := e.digitRunDate(name); ok {
		return Evidence{Time: t, Source: SourceFilename}, true
	}
	if t, ok := e.numericEpoch(name); ok {
		return Evidence{Time: t, Source: SourceFilename}, true
	}
	return Evidence{}, false
}

func (e FilenameExtractor) strictDate(name string) (time.Time, bool) {
	m := reStrictDate.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return e.calendarDate(year, month, day)
}

func (e FilenameExtractor) digitRunDate(name string) (time.Time, bool) {
	if m := reEightDigit.FindStringSubmatch(name); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if t, ok := e.calendarDate(year, month, day); ok {
			return t, true
		}
	}
	if m := reSixDigit.FindStringSubmatch(name); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if t, ok := e.calendarDate(year, month, 1); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func (e FilenameExtractor) numericEpoch(name string) (time.Time, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	for _, p := range numericPrefixes {
		base = strings.TrimPrefix(base, p)
	}
	if !isAllDigits(base) {
		return time.Time{}, false
	}
	return parseEpoch(base, e.Window)
}

// calendarDate validates the window and real calendar bounds.
func (e FilenameExtractor) calendarDate(year, month, day int) (time.Time, bool) {
	if !e.Window.Contains(year) || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// parseEpoch reads a digit string as a Unix epoch: 9 or 10 digits are
// seconds, 13 digits are milliseconds. Other lengths carry no evidence.
func parseEpoch(digits string, w Window) (time.Time, bool) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	var t time.Time
	switch len(digits) {
	case 9, 10:
		t = time.Unix(n, 0).UTC()
	case 13:
		t = time.UnixMilli(n).UTC()
	default:
		return time.Time{}, false
	}

	if !w.Contains(t.Year()) {
		return time.Time{}, false
	}
	return t, true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
