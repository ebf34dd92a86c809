package gwt

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the frame format wrapped around the text.
type Compression uint8

const (
	// CompressionNone writes plain text.
	CompressionNone Compression = iota
	// CompressionZstd writes a Zstandard frame.
	CompressionZstd
	// CompressionLZ4 writes an LZ4 frame.
	CompressionLZ4
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the file extension of c, or "none".
func (c Compression) String() string {
	switch c {
	case CompressionZstd:
		return "zst"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CompressionFor picks the compression from a file or blob name.
func CompressionFor(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(name, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// compressor wraps w. Closing the result flushes the frame but does not
// close w.
func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

// decompressor sniffs the frame magic of r and returns a plain-text reader.
func decompressor(r io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(r)
	magic, _ := br.Peek(4)

	switch {
	case bytes.Equal(magic, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	case bytes.Equal(magic, lz4Magic):
		return lz4.NewReader(br), func() {}, nil
	default:
		return br, func() {}, nil
	}
}
