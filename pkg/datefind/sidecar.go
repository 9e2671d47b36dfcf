package datefind

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const sidecarSuffix = ".json"

// sidecarTimestamp is one timestamp entry in a takeout sidecar record.
type sidecarTimestamp struct {
	Timestamp string `json:"timestamp"`
}

// sidecarRecord holds the recognized top-level keys of a sidecar record.
type sidecarRecord struct {
	PhotoTakenTime    *sidecarTimestamp `json:"photoTakenTime"`
	CreationTime      *sidecarTimestamp `json:"creationTime"`
	VideoCreationTime *sidecarTimestamp `json:"videoCreationTime"`
}

// ordered returns the timestamp entries in priority order.
func (r sidecarRecord) ordered() []*sidecarTimestamp {
	return []*sidecarTimestamp{r.PhotoTakenTime, r.CreationTime, r.VideoCreationTime}
}

// SidecarExtractor reads the companion JSON record written next to each
// media file in a takeout export.
type SidecarExtractor struct {
	Window Window
}

func (e SidecarExtractor) Extract(item Item) (Evidence, bool) {
	path, ok := findSidecar(item)
	if !ok {
		return Evidence{}, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Evidence{}, false
	}

	var rec sidecarRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Evidence{}, false
	}

	for _, ts := range rec.ordered() {
		if ts == nil {
			continue
		}
		sec, err := strconv.ParseInt(ts.Timestamp, 10, 64)
		if err != nil {
			continue
		}
		t := time.Unix(sec, 0).UTC()
		// An out-of-window key does not abort the scan; a later key may
		// still hold a plausible date.
		if !e.Window.Contains(t.Year()) {
			continue
		}
		return Evidence{Time: t, Source: SourceSidecar}, true
	}
	return Evidence{}, false
}

// findSidecar locates the companion record. The exact "<name>.<ext>.json"
// neighbor wins; otherwise the first directory entry whose name starts with
// the media file's base name and ends in .json is used, which covers
// duplicate-suffix variants like "name(1).ext.json".
func findSidecar(item Item) (string, bool) {
	exact := item.Path + sidecarSuffix
	if info, err := os.Stat(exact); err == nil && !info.IsDir() {
		return exact, true
	}

	base := strings.TrimSuffix(item.Name, filepath.Ext(item.Name))
	entries, err := os.ReadDir(item.Dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), sidecarSuffix) {
			continue
		}
		if strings.HasPrefix(name, base) {
			return filepath.Join(item.Dir, name), true
		}
	}
	return "", false
}
