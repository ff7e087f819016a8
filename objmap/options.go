package objmap

import (
	"encoding/binary"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
)

// Option configures decoding.
type Option func(*options)

type options struct {
	floatOrder   binary.ByteOrder
	nameEncoding encoding.Encoding
	logger       zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		floatOrder: binary.BigEndian,
		logger:     zerolog.Nop(),
	}
}

// WithFloatByteOrder sets the byte order of the floating-point object
// fields (opacity and blend factor). Integer fields are always
// big-endian, but several writers emitted floats in their host order,
// so maps authored on little-endian workstations need
// binary.LittleEndian here.
func WithFloatByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order != nil {
			o.floatOrder = order
		}
	}
}

// WithNameEncoding decodes object names through the given character
// set instead of requiring UTF-8, e.g. charmap.ISO8859_1 for maps
// labeled with Latin-1 text.
func WithNameEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.nameEncoding = enc
	}
}

// WithLogger emits decode progress to the given logger. Defaults to a
// no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}
