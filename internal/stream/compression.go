// internal/stream/compression.go
package stream

import (
	"bufio"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
)

// Encoding names the compression layer detected on a source.
type Encoding string

const (
	EncodingIdentity Encoding = "identity"
	EncodingGzip     Encoding = "gzip"
	EncodingZlib     Encoding = "zlib"
	EncodingBrotli   Encoding = "br"
)

// Pools for decompression readers; a run may open many sources.
var (
	gzipReaderPool = sync.Pool{
		New: func() interface{} {
			return new(gzip.Reader)
		},
	}

	brotliReaderPool = sync.Pool{
		New: func() interface{} {
			return brotli.NewReader(nil)
		},
	}
)

// emptyReader is used to release pooled readers from their last source.
var emptyReader = strings.NewReader("")

func getGzipReader(r io.Reader) (*gzip.Reader, error) {
	zr := gzipReaderPool.Get().(*gzip.Reader)
	if err := zr.Reset(r); err != nil {
		gzipReaderPool.Put(zr)
		return nil, err
	}
	return zr, nil
}

func putGzipReader(zr *gzip.Reader) {
	// Reset on an empty reader returns io.EOF, which is expected here.
	_ = zr.Reset(emptyReader)
	gzipReaderPool.Put(zr)
}

func getBrotliReader(r io.Reader) *brotli.Reader {
	br := brotliReaderPool.Get().(*brotli.Reader)
	_ = br.Reset(r)
	return br
}

func putBrotliReader(br *brotli.Reader) {
	_ = br.Reset(emptyReader)
	brotliReaderPool.Put(br)
}

// closeWrapper closes the decoder and the underlying source, and hands
// pooled readers back.
type closeWrapper struct {
	io.Reader
	decoder      io.Closer
	source       io.Closer
	poolCallback func()
}

func (w *closeWrapper) Close() error {
	var errDecoder error
	if w.decoder != nil {
		errDecoder = w.decoder.Close()
	}
	if w.poolCallback != nil {
		w.poolCallback()
		w.poolCallback = nil
	}
	return errors.Join(errDecoder, w.source.Close())
}

// detectEncoding picks the decoder for a source. gzip is recognised by its
// magic bytes; brotli and raw zlib carry no reliable magic and are chosen by
// file extension. Anything else is read as plain text.
func detectEncoding(name string, head []byte) Encoding {
	if len(head) >= 2 && head[0] == 0x1f && head[1] == 0x8b {
		return EncodingGzip
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".br":
		return EncodingBrotli
	case ".zz", ".zlib":
		return EncodingZlib
	}
	return EncodingIdentity
}

// newDecoder wraps src with the decompressor matching its content or name.
// The returned ReadCloser owns src.
func newDecoder(name string, src io.ReadCloser) (io.ReadCloser, Encoding, error) {
	buffered := bufio.NewReader(src)
	head, err := buffered.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = src.Close()
		return nil, "", fmt.Errorf("failed to inspect %s: %w", name, err)
	}

	enc := detectEncoding(name, head)
	w := &closeWrapper{source: src}

	switch enc {
	case EncodingGzip:
		zr, err := getGzipReader(buffered)
		if err != nil {
			_ = src.Close()
			return nil, "", fmt.Errorf("gzip initialization error: %w", err)
		}
		w.Reader, w.decoder = zr, zr
		w.poolCallback = func() { putGzipReader(zr) }

	case EncodingZlib:
		zr, err := zlib.NewReader(buffered)
		if err != nil {
			_ = src.Close()
			return nil, "", fmt.Errorf("zlib initialization error: %w", err)
		}
		w.Reader, w.decoder = zr, zr

	case EncodingBrotli:
		br := getBrotliReader(buffered)
		w.Reader = br
		w.poolCallback = func() { putBrotliReader(br) }

	default:
		w.Reader = buffered
	}
	return w, enc, nil
}
