//go:build !unix

package document

import (
	"os"

	"golang.org/x/exp/mmap"
)

func mapFile(f *os.File, size int) ([]byte, func() error, error) {
	r, err := mmap.Open(f.Name())
	if err != nil {
		return nil, nil, err
	}
	buf := make([]byte, r.Len())
	if _, err := r.ReadAt(buf, 0); err != nil {
		_ = r.Close()
		return nil, nil, err
	}
	return buf, r.Close, nil
}
