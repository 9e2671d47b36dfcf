package datefind

import (
	"bytes"
	"os"
	"time"

	"github.com/jdeng/goheif"
	"github.com/rwcarlsen/goexif/exif"
)

// exifTimeLayout is the textual EXIF datetime format. Values carry no
// timezone and are interpreted as local time.
const exifTimeLayout = "2006:01:02 15:04:05"

// exifDateTags lists the tags consulted, in preference order.
var exifDateTags = []exif.FieldName{exif.DateTimeOriginal, exif.DateTime}

// ExifExtractor reads the capture time embedded in an image container.
type ExifExtractor struct {
	Window Window
}

func (e ExifExtractor) Extract(item Item) (Evidence, bool) {
	f, err := os.Open(item.Path)
	if err != nil {
		return Evidence{}, false
	}
	defer f.Close()

	x, err := decodeExif(f, item.Ext)
	if err != nil {
		return Evidence{}, false
	}

	return exifEvidence(func(name exif.FieldName) (string, bool) {
		tag, err := x.Get(name)
		if err != nil {
			return "", false
		}
		s, err := tag.StringVal()
		if err != nil {
			// Tag present but its value is unusable.
			return "", true
		}
		return s, true
	}, e.Window)
}

// decodeExif parses the EXIF block out of the stream. HEIF containers are
// not understood by goexif, so their EXIF payload is extracted first.
func decodeExif(f *os.File, ext string) (*exif.Exif, error) {
	if ext == ".heic" || ext == ".heif" {
		raw, err := goheif.ExtractExif(f)
		if err != nil {
			return nil, err
		}
		return exif.Decode(bytes.NewReader(raw))
	}
	return exif.Decode(f)
}

// exifEvidence walks the date tags in preference order. The first tag that
// is present wins outright: a value that fails to parse, or an out-of-window
// year, yields no evidence rather than falling through to the next tag.
func exifEvidence(lookup func(exif.FieldName) (string, bool), w Window) (Evidence, bool) {
	for _, name := range exifDateTags {
		s, present := lookup(name)
		if !present {
			continue
		}
		t, err := time.ParseInLocation(exifTimeLayout, s, time.Local)
		if err != nil {
			return Evidence{}, false
		}
		if !w.Contains(t.Year()) {
			return Evidence{}, false
		}
		return Evidence{Time: t, Source: SourceExif}, true
	}
	return Evidence{}, false
}
