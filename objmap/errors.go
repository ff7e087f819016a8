// Package objmap provides a pure Go decoder for Analyze spatial map
// (.obj) files.
package objmap

import (
	"fmt"

	"github.com/robert-malhotra/go-objmap/internal/binary"
	"github.com/robert-malhotra/go-objmap/internal/object"
	"github.com/robert-malhotra/go-objmap/internal/rle"
)

// Decode-time error types, aliased so callers can match them with
// errors.As without importing internal packages.
type (
	// TruncatedInputError reports input that ends before a fixed-width
	// field or record completes.
	TruncatedInputError = binary.TruncatedInputError

	// InvalidEncodingError reports an object name that does not decode
	// under the active name encoding.
	InvalidEncodingError = object.InvalidEncodingError

	// MalformedRLEStreamError reports a voxel payload whose byte count
	// is odd.
	MalformedRLEStreamError = rle.MalformedRLEStreamError

	// RunOverflowError reports a run that would cross a slice boundary.
	RunOverflowError = rle.RunOverflowError

	// EndOfStreamError reports a voxel payload with too few pairs to
	// fill every declared volume.
	EndOfStreamError = rle.EndOfStreamError
)

// IndexOutOfRangeError reports a volume index outside the decoded set.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("volume index %d out of range, map holds %d", e.Index, e.Count)
}
