package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/erraggy/normjson/normerrors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies how a document's bytes were compressed
type Compression string

const (
	// CompressionNone means the document was read as is
	CompressionNone Compression = ""
	// CompressionGzip is a gzip stream (.gz)
	CompressionGzip Compression = "gzip"
	// CompressionZstd is a Zstandard frame (.zst)
	CompressionZstd Compression = "zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// detectCompression sniffs the leading magic bytes of data
func detectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// decompress inflates data when it is gzip or zstd compressed. The inflated
// size is held to limit so a small archive cannot expand without bound.
func decompress(data []byte, limit int64) ([]byte, Compression, error) {
	compression := detectCompression(data)

	var (
		r   io.Reader
		err error
	)
	switch compression {
	case CompressionGzip:
		var zr *gzip.Reader
		zr, err = gzip.NewReader(bytes.NewReader(data))
		if err == nil {
			defer func() { _ = zr.Close() }()
			r = zr
		}
	case CompressionZstd:
		var dec *zstd.Decoder
		dec, err = zstd.NewReader(bytes.NewReader(data))
		if err == nil {
			defer dec.Close()
			r = dec
		}
	default:
		return data, CompressionNone, nil
	}
	if err != nil {
		return nil, compression, &normerrors.ParseError{Message: fmt.Sprintf("invalid %s stream", compression), Cause: err}
	}

	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, compression, &normerrors.ParseError{Message: fmt.Sprintf("decompressing %s", compression), Cause: err}
	}
	if limit > 0 && int64(len(out)) > limit {
		return nil, compression, inputTooLarge(limit, int64(len(out)))
	}
	return out, compression, nil
}
