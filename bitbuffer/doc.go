// Package bitbuffer implements a growable byte buffer addressed at bit
// granularity.
//
// A Buffer couples contiguous byte storage with a single bit-level cursor
// shared by reads and writes, so serialization code can pack fields that are
// not byte-aligned (3-bit flags, variable-width integers) without tracking
// bit offsets itself. Storage either belongs to the buffer and grows on
// demand (New), or wraps a caller-supplied slice of fixed size (Wrap).
//
// Bit Ordering:
//   - Within each byte, bit offsets count from the least significant bit
//   - The bit at stream offset n lives at bit n%8 of byte n/8
//
// Basic usage:
//
//	buf := bitbuffer.New(16)
//	_ = buf.WriteBit(true)
//	_ = buf.WriteByte(0xA5)
//	_, _ = buf.Seek(0, io.SeekStart)
//	bit, ok := buf.ReadBit()
//
// A Buffer also implements io.Reader, io.Writer and io.Seeker, so it can
// stand in wherever a generic binary stream is expected. The line-oriented
// and truncation operations of that world exist but always fail with
// ErrUnsupported: the buffer is pure binary.
//
// Buffer is NOT thread-safe. Multiple goroutines must not access the same
// Buffer concurrently without external synchronization.
package bitbuffer
