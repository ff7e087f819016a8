// Package object parses the per-object metadata table that follows the
// file header in an Analyze spatial map.
package object

import (
	stdbinary "encoding/binary"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/robert-malhotra/go-objmap/internal/binary"
)

/*
Object Record Layout (152 bytes, integers big-endian):
Offset  Size  Description
0       32    Name (NUL-terminated, unused tail undefined)
32      4     Display flag
36      1     Copy flag
37      1     Mirror
38      1     Status
39      1     Neighbors used
40      4     Shades
44      24    Color ramp start/end triples (6 x int32, RGB order)
68      12    Rotation (x, y, z int32)
80      12    Shift (x, y, z int32)
92      12    Center (x, y, z int32)
104     12    Inverse rotation (x, y, z int32)
116     12    Inverse shift (x, y, z int32)
128     12    Bounding box min/max (6 x int16, x y z order)
140     4     Opacity (float32)
144     4     Opacity thickness
148     4     Blend factor (float32)
*/

// Record sizes in bytes.
const (
	NameSize   = 32
	RecordSize = 152
)

// InvalidEncodingError reports an object name whose bytes before the
// first NUL do not form valid text under the active name encoding.
type InvalidEncodingError struct {
	Index  int   // record position in the object table
	Offset int64 // absolute offset of the name slot
	Name   []byte
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("object %d: name at offset %d is not valid text: %q",
		e.Index, e.Offset, e.Name)
}

// Config carries the decode policies that vary by caller.
type Config struct {
	// FloatOrder is the byte order used for the opacity and blend
	// factor fields. Must be non-nil.
	FloatOrder stdbinary.ByteOrder

	// NameEncoding, when set, decodes name bytes through the given
	// character set. When nil, names must be valid UTF-8.
	NameEncoding encoding.Encoding
}

// Record is the metadata stored for one object in the table.
type Record struct {
	// Name is the object label, taken from a fixed 32-byte slot up to
	// the first NUL.
	Name string

	DisplayFlag int32
	CopyFlag    uint8
	Mirror      uint8
	Status      uint8
	NUsed       uint8
	Shades      int32

	// Color ramp endpoints, one channel per field.
	StartRed, StartGreen, StartBlue int32
	EndRed, EndGreen, EndBlue       int32

	XRot, YRot, ZRot          int32
	XShift, YShift, ZShift    int32
	XCenter, YCenter, ZCenter int32

	// Inverse transform counterparts of the rotation and shift triples.
	InvXRot, InvYRot, InvZRot       int32
	InvXShift, InvYShift, InvZShift int32

	// Bounding box extents, in voxels.
	MinX, MinY, MinZ int16
	MaxX, MaxY, MaxZ int16

	Opacity      float32
	OpacityThick int32
	BlendFactor  float32
}

// ReadTable parses count consecutive records from r. The cursor is left
// positioned at the first byte after the table.
func ReadTable(r *binary.Reader, count int, cfg Config) ([]Record, error) {
	records := make([]Record, count)
	for i := range records {
		if err := readRecord(r, i, cfg, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// readRecord decodes a single 152-byte record into rec, field by field
// in layout order.
func readRecord(r *binary.Reader, index int, cfg Config, rec *Record) error {
	start := r.Offset()

	raw, err := r.ReadFixedString(NameSize)
	if err != nil {
		return fmt.Errorf("reading object record %d name: %w", index, err)
	}
	name, err := decodeName(raw, cfg.NameEncoding)
	if err != nil {
		return &InvalidEncodingError{Index: index, Offset: start, Name: raw}
	}
	rec.Name = name

	if rec.DisplayFlag, err = r.ReadInt32(); err != nil {
		return fmt.Errorf("reading object record %d display flag: %w", index, err)
	}

	flags := []*uint8{&rec.CopyFlag, &rec.Mirror, &rec.Status, &rec.NUsed}
	for _, f := range flags {
		if *f, err = r.ReadUint8(); err != nil {
			return fmt.Errorf("reading object record %d flags: %w", index, err)
		}
	}

	if rec.Shades, err = r.ReadInt32(); err != nil {
		return fmt.Errorf("reading object record %d shades: %w", index, err)
	}

	// The color ramp and transform fields are consecutive int32 triples
	// in R, G, B or x, y, z order.
	scalars := []*int32{
		&rec.StartRed, &rec.StartGreen, &rec.StartBlue,
		&rec.EndRed, &rec.EndGreen, &rec.EndBlue,
		&rec.XRot, &rec.YRot, &rec.ZRot,
		&rec.XShift, &rec.YShift, &rec.ZShift,
		&rec.XCenter, &rec.YCenter, &rec.ZCenter,
		&rec.InvXRot, &rec.InvYRot, &rec.InvZRot,
		&rec.InvXShift, &rec.InvYShift, &rec.InvZShift,
	}
	for _, f := range scalars {
		if *f, err = r.ReadInt32(); err != nil {
			return fmt.Errorf("reading object record %d transforms: %w", index, err)
		}
	}

	bounds := []*int16{&rec.MinX, &rec.MinY, &rec.MinZ, &rec.MaxX, &rec.MaxY, &rec.MaxZ}
	for _, f := range bounds {
		if *f, err = r.ReadInt16(); err != nil {
			return fmt.Errorf("reading object record %d bounding box: %w", index, err)
		}
	}

	if rec.Opacity, err = r.ReadFloat32(cfg.FloatOrder); err != nil {
		return fmt.Errorf("reading object record %d opacity: %w", index, err)
	}
	if rec.OpacityThick, err = r.ReadInt32(); err != nil {
		return fmt.Errorf("reading object record %d opacity thickness: %w", index, err)
	}
	if rec.BlendFactor, err = r.ReadFloat32(cfg.FloatOrder); err != nil {
		return fmt.Errorf("reading object record %d blend factor: %w", index, err)
	}
	return nil
}

// decodeName converts the name prefix before the first NUL into a
// string. Bytes after the NUL never reach this point and are not
// validated.
func decodeName(raw []byte, enc encoding.Encoding) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	if enc != nil {
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("name %q is not valid UTF-8", raw)
	}
	return string(raw), nil
}
