package document

import (
	"bytes"
	"errors"
	"math"
	"os"
	"unicode/utf8"

	"github.com/azario0/prototypes-txt-reader/internal/log"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var errIsDir = errors.New("is a directory")

// Load maps path read-only, decodes it as UTF-8 and indexes its lines.
// The mapping is released before Load returns; the Document owns a heap copy.
// An empty file yields an empty document.
func Load(path string) (*Document, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is chosen by the user
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &IOError{Op: "open", Path: path, Err: errIsDir}
	}
	size := info.Size()
	if size == 0 {
		log.Debug(log.CatDoc, "empty file", "path", path)
		return build(path, "", 0), nil
	}
	if size > math.MaxInt {
		return nil, &IOError{Op: "mmap", Path: path, Err: errors.New("file too large")}
	}

	data, release, err := mapFile(f, int(size))
	if err != nil {
		return nil, &IOError{Op: "mmap", Path: path, Err: err}
	}
	defer func() {
		if err := release(); err != nil {
			log.ErrorErr(log.CatDoc, "unmap failed", err, "path", path)
		}
	}()

	doc, err := decode(path, data)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatDoc, "loaded", "path", path, "bytes", size,
		"chars", doc.Len(), "lines", doc.LineCount(), "id", doc.ID())
	return doc, nil
}

// decode validates data and copies it off the mapping.
func decode(path string, data []byte) (*Document, error) {
	byteLen := len(data)
	skip := 0
	if bytes.HasPrefix(data, utf8BOM) {
		skip = len(utf8BOM)
	}
	body := data[skip:]
	if !utf8.Valid(body) {
		return nil, &DecodeError{Path: path, Offset: skip + firstInvalid(body)}
	}
	return build(path, string(body), byteLen), nil
}

func firstInvalid(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
