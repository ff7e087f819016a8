package rle

import (
	"bytes"
	"errors"
	"testing"

	binpkg "github.com/robert-malhotra/go-objmap/internal/binary"
)

func TestExpandSingleSlice(t *testing.T) {
	// One 2x2 slice filled by a single full-width run.
	r := binpkg.NewReader([]byte{4, 7})

	vols, err := Expand(r, Dims{Width: 2, Height: 2, Depth: 1, Volumes: 1})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(vols) != 1 {
		t.Fatalf("expected 1 volume, got %d", len(vols))
	}
	if want := []uint8{7, 7, 7, 7}; !bytes.Equal(vols[0], want) {
		t.Errorf("expected %v, got %v", want, vols[0])
	}
}

func TestExpandRunOrder(t *testing.T) {
	tests := []struct {
		name    string
		dims    Dims
		payload []byte
		want    [][]uint8
	}{
		{
			name:    "runs concatenate row-major within slice",
			dims:    Dims{Width: 2, Height: 2, Depth: 1, Volumes: 1},
			payload: []byte{3, 1, 1, 2},
			want:    [][]uint8{{1, 1, 1, 2}},
		},
		{
			name:    "slices fill along depth in order",
			dims:    Dims{Width: 2, Height: 2, Depth: 2, Volumes: 1},
			payload: []byte{4, 1, 2, 2, 2, 3},
			want:    [][]uint8{{1, 1, 1, 1, 2, 2, 3, 3}},
		},
		{
			name:    "volumes consume pairs forward in stream order",
			dims:    Dims{Width: 2, Height: 1, Depth: 1, Volumes: 2},
			payload: []byte{2, 5, 2, 6},
			want:    [][]uint8{{5, 5}, {6, 6}},
		},
		{
			name:    "zero-length run consumes a pair and writes nothing",
			dims:    Dims{Width: 2, Height: 2, Depth: 1, Volumes: 1},
			payload: []byte{0, 9, 4, 7},
			want:    [][]uint8{{7, 7, 7, 7}},
		},
		{
			name:    "pairs after the last volume are ignored",
			dims:    Dims{Width: 1, Height: 1, Depth: 1, Volumes: 1},
			payload: []byte{1, 9, 1, 8, 1, 7},
			want:    [][]uint8{{9}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vols, err := Expand(binpkg.NewReader(tt.payload), tt.dims)
			if err != nil {
				t.Fatalf("Expand failed: %v", err)
			}
			if len(vols) != len(tt.want) {
				t.Fatalf("expected %d volumes, got %d", len(tt.want), len(vols))
			}
			for i := range tt.want {
				if !bytes.Equal(vols[i], tt.want[i]) {
					t.Errorf("volume %d: expected %v, got %v", i, tt.want[i], vols[i])
				}
			}
		})
	}
}

func TestExpandZeroGeometry(t *testing.T) {
	tests := []struct {
		name string
		dims Dims
	}{
		{"zero width", Dims{Width: 0, Height: 3, Depth: 2, Volumes: 1}},
		{"zero height", Dims{Width: 3, Height: 0, Depth: 2, Volumes: 1}},
		{"zero depth", Dims{Width: 3, Height: 3, Depth: 0, Volumes: 1}},
		{"zero volumes", Dims{Width: 2, Height: 2, Depth: 2, Volumes: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Payload is present but nothing should need it.
			vols, err := Expand(binpkg.NewReader([]byte{4, 1}), tt.dims)
			if err != nil {
				t.Fatalf("Expand failed: %v", err)
			}
			if len(vols) != tt.dims.Volumes {
				t.Fatalf("expected %d volumes, got %d", tt.dims.Volumes, len(vols))
			}
			for i, vol := range vols {
				if len(vol) != 0 {
					t.Errorf("volume %d: expected empty grid, got %d voxels", i, len(vol))
				}
			}
		})
	}
}

func TestExpandOddPayload(t *testing.T) {
	// Consume a 4-byte prefix first so the reported offset is absolute.
	r := binpkg.NewReader([]byte{0, 0, 0, 0, 2, 1, 9})
	if _, err := r.ReadUint32(); err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}

	_, err := Expand(r, Dims{Width: 1, Height: 1, Depth: 1, Volumes: 1})
	if err == nil {
		t.Fatal("expected malformed stream error, got nil")
	}

	var malErr *MalformedRLEStreamError
	if !errors.As(err, &malErr) {
		t.Fatalf("expected MalformedRLEStreamError, got %T: %v", err, err)
	}
	if malErr.Length != 3 {
		t.Errorf("expected payload length 3, got %d", malErr.Length)
	}
	if malErr.Offset != 6 {
		t.Errorf("expected dangling byte at offset 6, got %d", malErr.Offset)
	}
}

func TestExpandRunOverflow(t *testing.T) {
	// A run of 5 cannot fit a 2x2 slice.
	r := binpkg.NewReader([]byte{4, 1, 5, 2})

	_, err := Expand(r, Dims{Width: 2, Height: 2, Depth: 2, Volumes: 1})
	if err == nil {
		t.Fatal("expected overflow error, got nil")
	}

	var ovErr *RunOverflowError
	if !errors.As(err, &ovErr) {
		t.Fatalf("expected RunOverflowError, got %T: %v", err, err)
	}
	if ovErr.Volume != 0 || ovErr.Slice != 1 {
		t.Errorf("expected volume 0 slice 1, got volume %d slice %d", ovErr.Volume, ovErr.Slice)
	}
	if ovErr.Run != 5 || ovErr.Space != 4 {
		t.Errorf("expected run 5 with space 4, got run %d space %d", ovErr.Run, ovErr.Space)
	}
	if ovErr.Offset != 2 {
		t.Errorf("expected offending pair at offset 2, got %d", ovErr.Offset)
	}
}

func TestExpandRunOverflowMidSlice(t *testing.T) {
	// Three voxels already written, run of 2 would cross into the next slice.
	r := binpkg.NewReader([]byte{3, 1, 2, 2})

	_, err := Expand(r, Dims{Width: 2, Height: 2, Depth: 1, Volumes: 1})

	var ovErr *RunOverflowError
	if !errors.As(err, &ovErr) {
		t.Fatalf("expected RunOverflowError, got %T: %v", err, err)
	}
	if ovErr.Run != 2 || ovErr.Space != 1 {
		t.Errorf("expected run 2 with space 1, got run %d space %d", ovErr.Run, ovErr.Space)
	}
}

func TestExpandEndOfStream(t *testing.T) {
	tests := []struct {
		name    string
		dims    Dims
		payload []byte
		volume  int
		slice   int
		filled  int
	}{
		{
			name:    "empty payload",
			dims:    Dims{Width: 2, Height: 2, Depth: 1, Volumes: 1},
			payload: nil,
			volume:  0, slice: 0, filled: 0,
		},
		{
			name:    "slice partially filled",
			dims:    Dims{Width: 2, Height: 2, Depth: 1, Volumes: 1},
			payload: []byte{2, 3},
			volume:  0, slice: 0, filled: 2,
		},
		{
			name:    "second volume starves",
			dims:    Dims{Width: 2, Height: 1, Depth: 1, Volumes: 2},
			payload: []byte{2, 5},
			volume:  1, slice: 0, filled: 0,
		},
		{
			name:    "only zero-length runs",
			dims:    Dims{Width: 1, Height: 1, Depth: 1, Volumes: 1},
			payload: []byte{0, 1, 0, 2},
			volume:  0, slice: 0, filled: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(binpkg.NewReader(tt.payload), tt.dims)
			if err == nil {
				t.Fatal("expected end-of-stream error, got nil")
			}

			var eosErr *EndOfStreamError
			if !errors.As(err, &eosErr) {
				t.Fatalf("expected EndOfStreamError, got %T: %v", err, err)
			}
			if eosErr.Volume != tt.volume || eosErr.Slice != tt.slice {
				t.Errorf("expected volume %d slice %d, got volume %d slice %d",
					tt.volume, tt.slice, eosErr.Volume, eosErr.Slice)
			}
			if eosErr.Filled != tt.filled {
				t.Errorf("expected %d voxels filled, got %d", tt.filled, eosErr.Filled)
			}
		})
	}
}
