// Package rle expands the run-length encoded voxel payload of an
// Analyze spatial map into dense per-volume buffers.
package rle

import (
	"fmt"

	"github.com/robert-malhotra/go-objmap/internal/binary"
)

/*
Voxel Payload Layout:
Offset  Size  Description
0       1     Run length (voxel count)
1       1     Voxel value
2       ...   Next pair, until every declared volume is filled

Pairs fill each volume slice by slice along the depth axis. A slice
holds height*width voxels in row-major order and every run must end
inside the slice it started in. Whole pairs left over after the last
volume are ignored.
*/

// MalformedRLEStreamError reports a payload whose byte count is odd, so
// the final byte cannot form a (run length, value) pair.
type MalformedRLEStreamError struct {
	Length int   // payload size in bytes
	Offset int64 // absolute offset of the dangling byte
}

func (e *MalformedRLEStreamError) Error() string {
	return fmt.Sprintf("run-length payload of %d bytes leaves a dangling byte at offset %d",
		e.Length, e.Offset)
}

// RunOverflowError reports a run that would write past the end of the
// slice it started in.
type RunOverflowError struct {
	Volume int
	Slice  int
	Offset int64 // absolute offset of the offending pair
	Run    int   // run length in voxels
	Space  int   // unfilled voxels left in the slice
}

func (e *RunOverflowError) Error() string {
	return fmt.Sprintf("volume %d slice %d: run of %d voxels at offset %d overflows slice, %d left",
		e.Volume, e.Slice, e.Run, e.Offset, e.Space)
}

// EndOfStreamError reports a payload with too few pairs to fill every
// declared volume.
type EndOfStreamError struct {
	Volume int
	Slice  int
	Filled int // voxels already written into the slice
	Need   int // voxels per slice
}

func (e *EndOfStreamError) Error() string {
	return fmt.Sprintf("volume %d slice %d: run pairs exhausted after %d of %d voxels",
		e.Volume, e.Slice, e.Filled, e.Need)
}

// Dims describes the geometry one expansion fills.
type Dims struct {
	Width  int
	Height int
	Depth  int

	// Volumes is the number of stacked grids sharing the geometry.
	Volumes int
}

// Expand consumes the rest of r as run pairs and materializes one flat
// buffer per volume. Each buffer is plane-major: slice z occupies
// indexes [z*height*width, (z+1)*height*width), row-major within the
// slice. Runs are consumed from a single forward position across all
// volumes, in stream order.
func Expand(r *binary.Reader, d Dims) ([][]uint8, error) {
	base := r.Offset()
	payload := r.Rest()
	if len(payload)%2 != 0 {
		return nil, &MalformedRLEStreamError{
			Length: len(payload),
			Offset: base + int64(len(payload)-1),
		}
	}

	sliceVoxels := d.Width * d.Height
	volumes := make([][]uint8, d.Volumes)
	pos := 0 // byte index of the next unread pair

	for v := range volumes {
		grid := make([]uint8, sliceVoxels*d.Depth)
		for z := 0; z < d.Depth; z++ {
			plane := grid[z*sliceVoxels : (z+1)*sliceVoxels]
			filled := 0
			for filled < sliceVoxels {
				if pos == len(payload) {
					return nil, &EndOfStreamError{
						Volume: v,
						Slice:  z,
						Filled: filled,
						Need:   sliceVoxels,
					}
				}
				run, value := int(payload[pos]), payload[pos+1]
				if run > sliceVoxels-filled {
					return nil, &RunOverflowError{
						Volume: v,
						Slice:  z,
						Offset: base + int64(pos),
						Run:    run,
						Space:  sliceVoxels - filled,
					}
				}
				for i := 0; i < run; i++ {
					plane[filled+i] = value
				}
				filled += run
				pos += 2
			}
		}
		volumes[v] = grid
	}
	return volumes, nil
}
