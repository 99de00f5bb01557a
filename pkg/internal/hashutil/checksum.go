package hashutil

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
)

// Reader hashes everything read through it
type Reader struct {
	r io.Reader
	h hash.Hash
}

// NewReader wraps r with a SHA256 hash
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, h: sha256.New()}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		_, _ = r.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the checksum of the bytes read so far as "sha256:<hex>"
func (r *Reader) Sum() string {
	return format(r.h.Sum(nil))
}

func format(sum []byte) string {
	return fmt.Sprintf("sha256:%x", sum)
}
