package objmap

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Volume is one dense 3-D voxel grid reconstructed from the map
// payload. Voxels are stored plane-major: the slice at depth z occupies
// indexes [z*height*width, (z+1)*height*width), row-major within the
// slice.
type Volume struct {
	data   []uint8
	width  int
	height int
	depth  int
}

// Dims returns the grid extents as (height, width, depth).
func (v *Volume) Dims() (height, width, depth int) {
	return v.height, v.width, v.depth
}

// At returns the voxel at row y, column x, slice z. It panics when the
// coordinates fall outside the grid.
func (v *Volume) At(y, x, z int) uint8 {
	if x < 0 || x >= v.width || y < 0 || y >= v.height || z < 0 || z >= v.depth {
		panic(fmt.Sprintf("objmap: voxel (%d, %d, %d) outside %dx%dx%d grid",
			y, x, z, v.height, v.width, v.depth))
	}
	return v.data[z*v.height*v.width+y*v.width+x]
}

// Slice returns the plane at depth z, sharing the volume's backing
// store. It panics when z falls outside the grid.
func (v *Volume) Slice(z int) []uint8 {
	if z < 0 || z >= v.depth {
		panic(fmt.Sprintf("objmap: slice %d outside depth %d", z, v.depth))
	}
	plane := v.height * v.width
	return v.data[z*plane : (z+1)*plane]
}

// Bytes returns the whole plane-major voxel buffer, sharing the
// volume's backing store.
func (v *Volume) Bytes() []uint8 {
	return v.data
}

// Digest returns a 64-bit content hash of the voxel buffer. Two
// volumes with equal geometry and equal digests hold identical voxels.
func (v *Volume) Digest() uint64 {
	return xxhash.Sum64(v.data)
}
