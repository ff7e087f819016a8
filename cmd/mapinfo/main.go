// Diagnostic tool for inspecting Analyze spatial maps
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/robert-malhotra/go-objmap/objmap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: mapinfo <file.obj>")
		os.Exit(1)
	}

	filename := os.Args[1]
	fmt.Printf("=== %s ===\n\n", filename)

	m, err := objmap.Open(filename, objmap.WithLogger(newLogger()))
	if err != nil {
		fmt.Printf("ERROR: failed to decode map: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Format version: %d (code %d)\n", m.Version(), m.VersionCode())
	fmt.Printf("Geometry: %d wide, %d high, %d deep\n", m.Width(), m.Height(), m.Depth())
	fmt.Printf("Objects: %d\n", len(m.Objects()))
	fmt.Printf("Volumes: %d\n\n", m.NumVolumes())

	for i, obj := range m.Objects() {
		fmt.Printf("Object %d: %q\n", i, obj.Name)
		fmt.Printf("  Display: %d  Mirror: %d  Shades: %d\n",
			obj.DisplayFlag, obj.Mirror, obj.Shades)
		fmt.Printf("  Color ramp: (%d, %d, %d) -> (%d, %d, %d)\n",
			obj.StartRed, obj.StartGreen, obj.StartBlue,
			obj.EndRed, obj.EndGreen, obj.EndBlue)
		fmt.Printf("  Bounds: (%d, %d, %d) - (%d, %d, %d)\n",
			obj.MinX, obj.MinY, obj.MinZ, obj.MaxX, obj.MaxY, obj.MaxZ)
		fmt.Printf("  Opacity: %g  Blend: %g\n", obj.Opacity, obj.BlendFactor)
	}
	if len(m.Objects()) > 0 {
		fmt.Println()
	}

	for i := 0; i < m.NumVolumes(); i++ {
		vol, err := m.Volume(i)
		if err != nil {
			fmt.Printf("ERROR: reading volume %d: %v\n", i, err)
			os.Exit(1)
		}

		labelled := 0
		for _, v := range vol.Bytes() {
			if v != 0 {
				labelled++
			}
		}
		h, w, d := vol.Dims()
		fmt.Printf("Volume %d: %dx%dx%d, %d of %d voxels labelled, digest %016x\n",
			i, h, w, d, labelled, len(vol.Bytes()), vol.Digest())
	}
}

// newLogger routes decode traces to a rotated debug log so stdout
// stays clean for the report itself.
func newLogger() zerolog.Logger {
	lj := &lumberjack.Logger{
		Filename:   filepath.Join("debug", "mapinfo.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		LocalTime:  true,
	}
	return zerolog.New(lj).With().Timestamp().Logger()
}
