package datefind

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// reDirDate matches a loose digit run inside a path segment. The groups are
// read as month-day-year; that ordering is a fixed convention, not inferred
// from the values.
var reDirDate = regexp.MustCompile(`(\d{1,2})[-_](\d{1,2})[-_](\d{4})`)

// DirectoryExtractor derives a date from the names of enclosing directories,
// scanning from the segment closest to the file outward.
type DirectoryExtractor struct {
	Window Window
}

func (e DirectoryExtractor) Extract(item Item) (Evidence, bool) {
	segments := strings.Split(item.Dir, string(filepath.Separator))
	for i := len(segments) - 1; i >= 0; i-- {
		m := reDirDate.FindStringSubmatch(segments[i])
		if m == nil {
			continue
		}
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if !e.Window.Contains(year) || month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		return Evidence{Time: t, Source: SourceDirectory}, true
	}
	return Evidence{}, false
}
