package gwaspower

import (
	"io"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// DetermineDelimiterAmong returns the first of allowed that the detector
// considers a consistent delimiter for the reader, or allowed[0] when none
// is. The detector reports its candidates in no particular order, and a
// short table can make other punctuation look as regular as the delimiter.
func DetermineDelimiterAmong(r io.Reader, allowed ...rune) rune {
	if len(allowed) == 0 {
		return DetermineDelimiter(r)
	}

	d := detector.New()
	candidates := make(map[rune]struct{})
	for _, c := range d.DetectDelimiter(r, '"') {
		candidates[rune(c[0])] = struct{}{}
	}

	for _, delim := range allowed {
		if _, ok := candidates[delim]; ok {
			return delim
		}
	}

	return allowed[0]
}

// DelimiterForPath picks the delimiter that a table written to path should
// use: tab for .tsv files, comma otherwise.
func DelimiterForPath(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}

	return ','
}
