package bitbuffer

import "fmt"

// The buffer passes for a generic binary stream: it is always seekable,
// readable and writable, and the stream operations that make no sense for
// pure binary storage exist but fail predictably instead of being absent.

// Readable reports whether the stream supports reading. Always true.
func (b *Buffer) Readable() bool { return true }

// Writable reports whether the stream supports writing. Always true.
func (b *Buffer) Writable() bool { return true }

// Seekable reports whether the stream supports seeking. Always true.
func (b *Buffer) Seekable() bool { return true }

// Truncate always fails with ErrUnsupported. Use SetLength to change the
// used extent.
func (b *Buffer) Truncate(int64) error {
	return fmt.Errorf("%w: truncate", ErrUnsupported)
}

// ReadLine always fails with ErrUnsupported: the buffer is not
// line-oriented.
func (b *Buffer) ReadLine() ([]byte, error) {
	return nil, fmt.Errorf("%w: the buffer is not line-oriented", ErrUnsupported)
}

// ReadLines always fails with ErrUnsupported.
func (b *Buffer) ReadLines() ([][]byte, error) {
	return nil, fmt.Errorf("%w: the buffer is not line-oriented", ErrUnsupported)
}

// WriteLines always fails with ErrUnsupported.
func (b *Buffer) WriteLines([][]byte) error {
	return fmt.Errorf("%w: the buffer is not line-oriented", ErrUnsupported)
}
