package datefind

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Source describes which evidence source produced a date.
//
// The resolver consults sources in this order:
//  1. exif
//  2. sidecar
//  3. filename
//  4. directory
//  5. mtime
type Source string

const (
	SourceExif      Source = "exif"
	SourceSidecar   Source = "sidecar"
	SourceFilename  Source = "filename"
	SourceDirectory Source = "directory"
	SourceMtime     Source = "mtime"
)

// Item is a single media file under consideration. It is immutable once
// built; every derived attribute is computed up front.
type Item struct {
	Path string // source path as discovered by the walker
	Name string // base name, including extension
	Dir  string // containing directory
	Ext  string // lower-cased extension, with leading dot
}

// NewItem derives an Item from a source path.
func NewItem(path string) Item {
	return Item{
		Path: path,
		Name: filepath.Base(path),
		Dir:  filepath.Dir(path),
		Ext:  strings.ToLower(filepath.Ext(path)),
	}
}

// Evidence is a resolved capture date tagged with its originating source.
type Evidence struct {
	Time   time.Time
	Source Source
}

// MinYear is the lower bound of every validity window.
const MinYear = 2000

// Window is the inclusive year range considered plausible for a capture
// date. It is computed once per run and passed down explicitly so the
// extractors stay pure and testable with an injected clock.
type Window struct {
	Min int
	Max int
}

// CurrentWindow returns the window [MinYear..now's calendar year].
func CurrentWindow(now time.Time) Window {
	return Window{Min: MinYear, Max: now.Year()}
}

// Contains reports whether year falls inside the window.
func (w Window) Contains(year int) bool {
	return w.Min <= year && year <= w.Max
}

// Extractor attempts to derive a capture date for an item. The second return
// value reports whether evidence was found; missing tags, malformed fields
// and unreadable files are all "not found", never an error.
type Extractor interface {
	Extract(item Item) (Evidence, bool)
}

// Resolver runs an extractor chain in strict priority order.
type Resolver struct {
	chain []Extractor
	log   zerolog.Logger
}

// NewResolver builds the standard five-source chain for the given window.
func NewResolver(w Window, log zerolog.Logger) *Resolver {
	return &Resolver{
		chain: []Extractor{
			ExifExtractor{Window: w},
			SidecarExtractor{Window: w},
			FilenameExtractor{Window: w},
			DirectoryExtractor{Window: w},
			MtimeExtractor{},
		},
		log: log,
	}
}

// Resolve returns the best available date for an item: the first extractor
// in the chain that reports evidence wins. The mtime extractor terminates
// the standard chain, so Resolve always produces a concrete result.
func (r *Resolver) Resolve(item Item) Evidence {
	for _, ex := range r.chain {
		ev, ok := ex.Extract(item)
		if !ok {
			continue
		}
		r.log.Debug().
			Str("path", item.Path).
			Str("source", string(ev.Source)).
			Time("date", ev.Time).
			Msg("date resolved")
		return ev
	}
	// Only reachable with a custom chain that has no terminal extractor.
	return Evidence{}
}
