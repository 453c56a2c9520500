// Package terra reads and writes terrain heightfield files.
//
// A terra file is a gzip stream of row-major float32 height samples in
// big-endian (network) byte order. The sample count is not stored; readers
// consume samples until the stream ends.
package terra

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// Extension is the file extension of heightfield files, without the dot.
const Extension = "terra"

// ErrDecode is returned for heightfield streams that cannot be read.
// Streams that merely end early are not errors.
var ErrDecode = errors.New("terra: decode failed")

// ByteOrder is the byte order of height samples.
var ByteOrder = binary.BigEndian

const sampleSize = 4

// Decode reads height samples from a gzip-compressed stream.
//
// A trailing partial sample (1-3 bytes) is dropped, as is anything after a
// compressed stream that ends without its trailer; the samples decoded up to
// that point are returned without error. Every other failure wraps ErrDecode.
func Decode(r io.Reader) ([]float32, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: opening gzip stream: %w", ErrDecode, err)
	}
	defer zr.Close()

	br := bufio.NewReaderSize(zr, 64*1024)

	var heights []float32
	var buf [sampleSize]byte
	for {
		_, err := io.ReadFull(br, buf[:])
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return heights, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: after %d samples: %w", ErrDecode, len(heights), err)
		}
		heights = append(heights, math.Float32frombits(ByteOrder.Uint32(buf[:])))
	}
}

// DecodeFile reads a heightfield file from disk.
func DecodeFile(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes height samples as a gzip-compressed stream.
func Encode(w io.Writer, heights []float32) error {
	zw := gzip.NewWriter(w)
	bw := bufio.NewWriterSize(zw, 64*1024)

	var buf [sampleSize]byte
	for _, h := range heights {
		ByteOrder.PutUint32(buf[:], math.Float32bits(h))
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return zw.Close()
}

// EncodeFile writes a heightfield file, replacing path atomically.
func EncodeFile(path string, heights []float32) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".terra-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := Encode(tmp, heights); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	success = true
	return nil
}

// Flat returns resolution*resolution samples all set to height.
func Flat(resolution int, height float32) []float32 {
	heights := make([]float32, resolution*resolution)
	for i := range heights {
		heights[i] = height
	}
	return heights
}
