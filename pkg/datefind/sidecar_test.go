package datefind

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSidecarFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestSidecarExtractor_ExactNeighbor(t *testing.T) {
	dir := t.TempDir()
	media := writeSidecarFixture(t, dir, "IMG_1001.jpg", "jpeg bytes")
	writeSidecarFixture(t, dir, "IMG_1001.jpg.json",
		`{"photoTakenTime":{"timestamp":"1609459200"}}`)

	e := SidecarExtractor{Window: Window{Min: 2000, Max: 2030}}
	ev, ok := e.Extract(NewItem(media))
	if !ok {
		t.Fatalf("expected evidence")
	}
	if ev.Source != SourceSidecar {
		t.Fatalf("source = %q, want %q", ev.Source, SourceSidecar)
	}
	want := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	if !ev.Time.Equal(want) {
		t.Fatalf("time = %v, want %v", ev.Time, want)
	}
}

func TestSidecarExtractor_PrefixScanFindsDuplicateVariant(t *testing.T) {
	dir := t.TempDir()
	media := writeSidecarFixture(t, dir, "IMG_1001.jpg", "jpeg bytes")
	writeSidecarFixture(t, dir, "IMG_1001(1).jpg.json",
		`{"creationTime":{"timestamp":"1583883667"}}`)

	e := SidecarExtractor{Window: Window{Min: 2000, Max: 2030}}
	ev, ok := e.Extract(NewItem(media))
	if !ok {
		t.Fatalf("expected evidence via prefix scan")
	}
	if !ev.Time.Equal(time.Unix(1583883667, 0).UTC()) {
		t.Fatalf("unexpected time %v", ev.Time)
	}
}

func TestSidecarExtractor_KeyPriorityAndFallback(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    time.Time
		found   bool
	}{
		{
			name: "photoTakenTime beats creationTime",
			content: `{"creationTime":{"timestamp":"1609459200"},` +
				`"photoTakenTime":{"timestamp":"1583883667"}}`,
			want:  time.Unix(1583883667, 0).UTC(),
			found: true,
		},
		{
			name: "out-of-window key falls through to the next",
			content: `{"photoTakenTime":{"timestamp":"0"},` +
				`"creationTime":{"timestamp":"1609459200"}}`,
			want:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			found: true,
		},
		{
			name:    "video creation time as last resort",
			content: `{"videoCreationTime":{"timestamp":"1613500800"}}`,
			want:    time.Unix(1613500800, 0).UTC(),
			found:   true,
		},
		{
			name:    "non-numeric timestamp skipped",
			content: `{"photoTakenTime":{"timestamp":"soon"}}`,
			found:   false,
		},
		{
			name:    "no recognized keys",
			content: `{"title":"IMG_1001.jpg"}`,
			found:   false,
		},
		{
			name:    "malformed record",
			content: `{not json`,
			found:   false,
		},
	}

	e := SidecarExtractor{Window: Window{Min: 2000, Max: 2030}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			media := writeSidecarFixture(t, dir, "IMG_1001.jpg", "jpeg bytes")
			writeSidecarFixture(t, dir, "IMG_1001.jpg.json", tc.content)

			ev, ok := e.Extract(NewItem(media))
			if ok != tc.found {
				t.Fatalf("found = %v, want %v (evidence %v)", ok, tc.found, ev)
			}
			if tc.found && !ev.Time.Equal(tc.want) {
				t.Fatalf("time = %v, want %v", ev.Time, tc.want)
			}
		})
	}
}

func TestSidecarExtractor_NoSidecarIsAbsent(t *testing.T) {
	dir := t.TempDir()
	media := writeSidecarFixture(t, dir, "IMG_1001.jpg", "jpeg bytes")

	e := SidecarExtractor{Window: Window{Min: 2000, Max: 2030}}
	if _, ok := e.Extract(NewItem(media)); ok {
		t.Fatalf("expected no evidence without a sidecar")
	}
}
