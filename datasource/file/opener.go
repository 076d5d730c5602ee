package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Codec describes how the bytes of a file are encoded on disk
type Codec int

const (
	// None reads files as plain text
	None Codec = iota
	// LZ4 decodes files written in the lz4 frame format
	LZ4
	// Zstd decodes files written in the zstandard format
	Zstd
	// Auto picks a Codec from the file extension (.lz4 or .zst), falling back to None
	Auto
)

// String returns a textual representation of this Codec
func (c Codec) String() string {
	switch c {
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	case Auto:
		return "auto"
	default:
		return "none"
	}
}

// CodecForPath returns the Codec suggested by a file's extension
func CodecForPath(path string) Codec {
	switch filepath.Ext(path) {
	case ".lz4":
		return LZ4
	case ".zst", ".zstd":
		return Zstd
	default:
		return None
	}
}

type decodedFile struct {
	io.Reader
	f       *os.File
	release func()
}

// Close releases the decoder (if any) and the underlying file handle
func (df *decodedFile) Close() error {
	if df.release != nil {
		df.release()
	}
	return df.f.Close()
}

// Open opens a file for reading, decoding its contents according to codec
func Open(path string, codec Codec) (io.ReadCloser, error) {
	if codec == Auto {
		codec = CodecForPath(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch codec {
	case None:
		return f, nil
	case LZ4:
		return &decodedFile{Reader: lz4.NewReader(f), f: f}, nil
	case Zstd:
		dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			f.Close()
			return nil, err
		}
		return &decodedFile{Reader: dec, f: f, release: dec.Close}, nil
	default:
		f.Close()
		return nil, fmt.Errorf("unknown codec %d", codec)
	}
}
