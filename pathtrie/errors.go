package pathtrie

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicatePath = errors.New("path already holds a value")
	ErrKeyType       = errors.New("interface key types are not encodable")

	ErrTruncated    = errors.New("truncated data")
	ErrChecksum     = errors.New("checksum mismatch")
	ErrVersion      = errors.New("unsupported format version")
	ErrMalformed    = errors.New("malformed data")
	ErrDuplicateKey = errors.New("duplicate sibling key")
)

// PathError records a failed operation on a particular path.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func pathErr[K comparable](op string, path []K, err error) error {
	return &PathError{op, formatPath(path), err}
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// DecodeError describes malformed encoded data. Off is the offset into Data
// where decoding stopped.
type DecodeError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func decodeErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DecodeError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Error() string {
	const prefixLen = 32
	const suffixLen = 16
	var buf strings.Builder

	fmt.Fprintf(&buf, "decode at %d: %s", e.Off, e.Msg)
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}

	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		fmt.Fprintf(&buf, ": (%d) %x", n, e.Data)
	} else {
		fmt.Fprintf(&buf, ": (%d) %x...%x", n, e.Data[:prefixLen], e.Data[n-suffixLen:])
	}
	return buf.String()
}

// formatPath renders a path as "/k1/k2/...", the root path as "/".
func formatPath[K comparable](path []K) string {
	if len(path) == 0 {
		return "/"
	}
	var buf strings.Builder
	for _, key := range path {
		buf.WriteByte('/')
		fmt.Fprint(&buf, key)
	}
	return buf.String()
}
