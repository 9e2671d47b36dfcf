package datefind

import (
	"github.com/djherbis/times"
)

// MtimeExtractor reads the file's last-modified time. It is the terminal
// link in the chain: it always reports evidence and applies no window check;
// routing decides what to do with implausible years. A failed stat yields
// the zero time, whose year falls outside any window.
type MtimeExtractor struct{}

func (MtimeExtractor) Extract(item Item) (Evidence, bool) {
	ts, err := times.Stat(item.Path)
	if err != nil {
		return Evidence{Source: SourceMtime}, true
	}
	return Evidence{Time: ts.ModTime(), Source: SourceMtime}, true
}
