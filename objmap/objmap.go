package objmap

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/robert-malhotra/go-objmap/internal/binary"
	"github.com/robert-malhotra/go-objmap/internal/header"
	"github.com/robert-malhotra/go-objmap/internal/object"
	"github.com/robert-malhotra/go-objmap/internal/rle"
)

// Object is the per-object metadata stored in the map's object table.
type Object = object.Record

// SpatialMap is a fully decoded spatial map: the header geometry, the
// object table and every voxel volume. Decoding is all-or-nothing, so
// an instance always holds a complete map.
type SpatialMap struct {
	header  *header.Header
	objects []Object
	volumes []*Volume
}

// gzipMagic is the two-byte signature of a gzip stream. Spatial maps
// are often archived compressed, so Decode inflates them transparently.
var gzipMagic = []byte{0x1f, 0x8b}

// Open reads and decodes the spatial map at path.
func Open(path string, opts ...Option) (*SpatialMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map: %w", err)
	}
	defer f.Close()

	return Decode(f, opts...)
}

// Decode reads all of r and decodes it as a spatial map.
func Decode(r io.Reader, opts ...Option) (*SpatialMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	return DecodeBytes(data, opts...)
}

// DecodeBytes decodes a spatial map held in memory. The returned map
// does not retain data.
func DecodeBytes(data []byte, opts ...Option) (*SpatialMap, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return decode(data, o)
}

func decode(data []byte, o *options) (*SpatialMap, error) {
	if bytes.HasPrefix(data, gzipMagic) {
		inflated, err := inflate(data)
		if err != nil {
			return nil, fmt.Errorf("decompressing map: %w", err)
		}
		o.logger.Debug().
			Int("compressed", len(data)).
			Int("inflated", len(inflated)).
			Msg("inflated gzip container")
		data = inflated
	}

	r := binary.NewReader(data)

	hdr, err := header.Read(r)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	o.logger.Debug().
		Uint32("version_code", hdr.VersionCode).
		Int("version", hdr.Version).
		Uint32("width", hdr.Width).
		Uint32("height", hdr.Height).
		Uint32("depth", hdr.Depth).
		Uint32("objects", hdr.ObjectCount).
		Uint32("volumes", hdr.VolumeCount).
		Msg("header decoded")

	cfg := object.Config{FloatOrder: o.floatOrder, NameEncoding: o.nameEncoding}
	objects, err := object.ReadTable(r, int(hdr.ObjectCount), cfg)
	if err != nil {
		return nil, fmt.Errorf("reading object table: %w", err)
	}

	grids, err := rle.Expand(r, rle.Dims{
		Width:   int(hdr.Width),
		Height:  int(hdr.Height),
		Depth:   int(hdr.Depth),
		Volumes: int(hdr.VolumeCount),
	})
	if err != nil {
		return nil, fmt.Errorf("expanding voxel data: %w", err)
	}

	volumes := make([]*Volume, len(grids))
	for i, grid := range grids {
		volumes[i] = &Volume{
			data:   grid,
			width:  int(hdr.Width),
			height: int(hdr.Height),
			depth:  int(hdr.Depth),
		}
	}
	o.logger.Debug().
		Int("objects", len(objects)).
		Int("volumes", len(volumes)).
		Msg("map decoded")

	return &SpatialMap{header: hdr, objects: objects, volumes: volumes}, nil
}

// inflate decompresses a gzip container into memory.
func inflate(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// Version returns the map format version, 6 or 7.
func (m *SpatialMap) Version() int {
	return m.header.Version
}

// VersionCode returns the raw format revision stamp from the header.
func (m *SpatialMap) VersionCode() uint32 {
	return m.header.VersionCode
}

// Width returns the voxel grid width in voxels.
func (m *SpatialMap) Width() int {
	return int(m.header.Width)
}

// Height returns the voxel grid height in voxels.
func (m *SpatialMap) Height() int {
	return int(m.header.Height)
}

// Depth returns the number of slices along the depth axis.
func (m *SpatialMap) Depth() int {
	return int(m.header.Depth)
}

// Objects returns the object table in file order. The background
// object, when present, is the first entry.
func (m *SpatialMap) Objects() []Object {
	return m.objects
}

// NumVolumes returns the number of decoded volumes.
func (m *SpatialMap) NumVolumes() int {
	return len(m.volumes)
}

// Volume returns the decoded volume at index i.
func (m *SpatialMap) Volume(i int) (*Volume, error) {
	if i < 0 || i >= len(m.volumes) {
		return nil, &IndexOutOfRangeError{Index: i, Count: len(m.volumes)}
	}
	return m.volumes[i], nil
}
