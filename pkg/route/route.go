package route

import (
	"fmt"
	"path/filepath"
	"strings"

	"takeoutsort/pkg/datefind"
)

// Bucket names that are not four-digit years.
const (
	BucketSnapchat = "Snapchat"
	BucketUnknown  = "Unknown"
)

// snapchatKeyword routes a file to the Snapchat bucket whenever it appears
// in the file name, without any date resolution.
const snapchatKeyword = "snapchat"

// Decision is where a single file should go. It carries no filesystem side
// effects; placement happens elsewhere.
type Decision struct {
	Bucket   string
	DestPath string

	// Evidence is the resolved date backing a year bucket. It is zero for
	// keyword-routed files, which never reach the resolver.
	Evidence datefind.Evidence
}

// Resolver is the part of the date engine the router depends on.
type Resolver interface {
	Resolve(item datefind.Item) datefind.Evidence
}

// Classify picks a destination bucket for an item.
//
// Files whose name contains the snapchat keyword (case-insensitive) are
// routed to the Snapchat bucket unconditionally. Everything else is routed
// by resolved year; years outside the window land in the Unknown bucket.
//
// The destination keeps the original file name; extension rewriting for
// converted formats is the normalizer's job.
func Classify(item datefind.Item, outputRoot string, w datefind.Window, r Resolver) Decision {
	if strings.Contains(strings.ToLower(item.Name), snapchatKeyword) {
		return Decision{
			Bucket:   BucketSnapchat,
			DestPath: filepath.Join(outputRoot, BucketSnapchat, item.Name),
		}
	}

	ev := r.Resolve(item)
	bucket := BucketUnknown
	if w.Contains(ev.Time.Year()) {
		bucket = fmt.Sprintf("%04d", ev.Time.Year())
	}
	return Decision{
		Bucket:   bucket,
		DestPath: filepath.Join(outputRoot, bucket, item.Name),
		Evidence: ev,
	}
}
