// Package header handles parsing of the spatial map fixed header.
//
// The header is the entry point of any spatial map, carrying the format
// revision, the voxel grid extents, and the object and volume counts that
// size the two regions following it.
package header

import (
	"fmt"

	"github.com/robert-malhotra/go-objmap/internal/binary"
)

/*
Header layout (all fields 4-byte big-endian unsigned):

Offset  Size  Description
0       4     Version code
4       4     Width in voxels
8       4     Height in voxels
12      4     Depth in voxels
16      4     Object count
20      4     Volume count (version 7 only)

A version code below 20050829 selects version 6, which stores 4 integers
after the code and implies a volume count of 1. Any other code selects
version 7, which stores 5.
*/

// VersionCodeV7 is the lowest version code written by version 7 encoders.
const VersionCodeV7 = 20050829

// Header contains the spatial map geometry and table sizes.
type Header struct {
	// VersionCode is the raw format revision number.
	VersionCode uint32

	// Version is the file version derived from VersionCode (6 or 7).
	Version int

	// Width, Height and Depth are the voxel grid extents. Zero extents
	// are legal and produce empty volumes.
	Width  uint32
	Height uint32
	Depth  uint32

	// ObjectCount is the number of object records following the header.
	ObjectCount uint32

	// VolumeCount is the number of voxel volumes in the RLE payload.
	// Version 6 headers do not store it; it defaults to 1.
	VolumeCount uint32
}

// Read parses the header from the start of the cursor. No range validation
// is applied: extents and counts may be zero or arbitrarily large, and the
// later stages must tolerate that.
func Read(r *binary.Reader) (*Header, error) {
	code, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading version code: %w", err)
	}

	h := &Header{VersionCode: code, Version: 7, VolumeCount: 1}
	ints := 5
	if code < VersionCodeV7 {
		h.Version = 6
		ints = 4
	}

	fields := make([]uint32, ints)
	for i := range fields {
		v, err := r.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("reading header integer %d of %d: %w", i+1, ints, err)
		}
		fields[i] = v
	}

	h.Width, h.Height, h.Depth = fields[0], fields[1], fields[2]
	h.ObjectCount = fields[3]
	if h.Version > 6 {
		h.VolumeCount = fields[4]
	}

	return h, nil
}
