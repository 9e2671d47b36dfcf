package datefind

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

func tagLookup(tags map[exif.FieldName]string) func(exif.FieldName) (string, bool) {
	return func(name exif.FieldName) (string, bool) {
		s, ok := tags[name]
		return s, ok
	}
}

func TestExifEvidence(t *testing.T) {
	w := Window{Min: 2000, Max: 2030}

	testCases := []struct {
		name  string
		tags  map[exif.FieldName]string
		want  time.Time
		found bool
	}{
		{
			name: "original capture time preferred",
			tags: map[exif.FieldName]string{
				exif.DateTimeOriginal: "2019:06:15 10:30:00",
				exif.DateTime:         "2024:01:01 00:00:00",
			},
			want:  time.Date(2019, 6, 15, 10, 30, 0, 0, time.Local),
			found: true,
		},
		{
			name: "falls to modification tag when original absent",
			tags: map[exif.FieldName]string{
				exif.DateTime: "2018:02:03 04:05:06",
			},
			want:  time.Date(2018, 2, 3, 4, 5, 6, 0, time.Local),
			found: true,
		},
		{
			name: "malformed original stops the scan even with a valid fallback",
			tags: map[exif.FieldName]string{
				exif.DateTimeOriginal: "not a date",
				exif.DateTime:         "2018:02:03 04:05:06",
			},
			found: false,
		},
		{
			name: "out-of-window original stops the scan",
			tags: map[exif.FieldName]string{
				exif.DateTimeOriginal: "1997:06:15 10:30:00",
				exif.DateTime:         "2018:02:03 04:05:06",
			},
			found: false,
		},
		{
			name:  "no date tags",
			tags:  map[exif.FieldName]string{},
			found: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := exifEvidence(tagLookup(tc.tags), w)
			if ok != tc.found {
				t.Fatalf("found = %v, want %v (evidence %v)", ok, tc.found, ev)
			}
			if !tc.found {
				return
			}
			if ev.Source != SourceExif {
				t.Fatalf("source = %q, want %q", ev.Source, SourceExif)
			}
			if !ev.Time.Equal(tc.want) {
				t.Fatalf("time = %v, want %v", ev.Time, tc.want)
			}
		})
	}
}

func TestExifExtractor_UnreadableContainerIsAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.jpg")
	if err := os.WriteFile(path, []byte("not a jpeg"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	e := ExifExtractor{Window: Window{Min: 2000, Max: 2030}}
	if _, ok := e.Extract(NewItem(path)); ok {
		t.Fatalf("expected no evidence from a corrupt container")
	}
}

func TestExifExtractor_MissingFileIsAbsent(t *testing.T) {
	e := ExifExtractor{Window: Window{Min: 2000, Max: 2030}}
	if _, ok := e.Extract(NewItem(filepath.Join(t.TempDir(), "missing.jpg"))); ok {
		t.Fatalf("expected no evidence from a missing file")
	}
}
