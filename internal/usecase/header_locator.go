package usecase

import (
	"bytes"

	"github.com/modulargunworks/catalog/internal/domain"
)

// LocateHeader returns the byte offset of the first line containing every
// marker, so a CSV reader started there sees that line as the header row.
//
// The scan stops after maxLines lines (DefaultMaxScanLines when <= 0) or at
// end of input, whichever comes first, and fails with a *domain.ParseError.
func LocateHeader(data []byte, markers []string, maxLines int) (int, error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxScanLines
	}

	offset := 0
	line := 0
	for offset < len(data) && line < maxLines {
		next := len(data)
		text := data[offset:]
		if end := bytes.IndexByte(text, '\n'); end >= 0 {
			text = text[:end]
			next = offset + end + 1
		}
		line++

		if containsAll(text, markers) {
			return offset, nil
		}
		offset = next
	}

	return 0, &domain.ParseError{
		LinesScanned: line,
		Markers:      markers,
		Err:          domain.ErrHeaderNotFound,
	}
}

func containsAll(line []byte, markers []string) bool {
	if len(markers) == 0 {
		return false
	}
	for _, m := range markers {
		if !bytes.Contains(line, []byte(m)) {
			return false
		}
	}
	return true
}
