package bitbuffer

import (
	"fmt"
	"io"
)

var _ io.ReadWriteSeeker = (*Buffer)(nil)

// hasData reports whether at least one byte remains readable.
func (b *Buffer) hasData() bool {
	return b.Position() < b.Length()
}

// ReadByte returns the next byte and advances the cursor by 8 bits. The
// second result is false when no data remains; exhaustion is not an error.
func (b *Buffer) ReadByte() (byte, bool) {
	if !b.hasData() {
		return 0, false
	}
	if b.BitAligned() {
		value := b.storage[b.Position()]
		b.bitPosition += 8
		return value, true
	}
	return b.readByteMisaligned(), true
}

// readByteMisaligned assembles a byte from the high bits of the current
// byte and the low bits of the next one, split at the in-byte offset r.
// The next byte may sit past the end of storage; its bits read as zero.
func (b *Buffer) readByteMisaligned() byte {
	r := b.bitPosition & 7
	value := b.storage[b.Position()] >> r
	b.bitPosition += 8
	if next := b.bitPosition >> 3; next < len(b.storage) {
		value |= b.storage[next] << (8 - r)
	}
	return value
}

// ReadBit returns the bit under the cursor and advances it by one. The
// second result is false when the cursor has reached the bit length.
func (b *Buffer) ReadBit() (bool, bool) {
	if b.bitPosition >= b.bitLength {
		return false, false
	}
	bit := b.storage[b.Position()]>>(b.bitPosition&7)&1 != 0
	b.bitPosition++
	return bit, true
}

// WriteByte stores one byte at the cursor, growing storage as needed, and
// advances the cursor by 8 bits.
func (b *Buffer) WriteByte(value byte) error {
	if b.BitAligned() {
		if b.Position() >= len(b.storage) {
			if err := b.grow(1); err != nil {
				return err
			}
		}
		b.storage[b.Position()] = value
		b.bitPosition += 8
	} else {
		if b.Position()+1 >= len(b.storage) {
			if err := b.grow(1); err != nil {
				return err
			}
		}
		b.writeByteMisaligned(value)
	}
	b.updateLength()
	return nil
}

// writeByteMisaligned splits value across the two bytes under the cursor:
// the low 8-r bits land in the current byte's high bits, the remaining r
// bits in the next byte's low bits. Sibling bits of both bytes survive.
func (b *Buffer) writeByteMisaligned(value byte) {
	r := b.bitPosition & 7
	p := b.Position()
	b.storage[p] = b.storage[p]&(0xFF>>(8-r)) | value<<r
	b.storage[p+1] = b.storage[p+1]&(0xFF<<r) | value>>(8-r)
	b.bitPosition += 8
}

// WriteBit sets or clears the single bit under the cursor and advances it
// by one. Storage grows by a byte when the cursor sits exactly at the
// aligned capacity boundary.
func (b *Buffer) WriteBit(bit bool) error {
	if b.BitAligned() && b.Position() == len(b.storage) {
		if err := b.grow(1); err != nil {
			return err
		}
	}
	p, r := b.Position(), b.bitPosition&7
	if bit {
		b.storage[p] |= 1 << r
	} else {
		b.storage[p] &^= 1 << r
	}
	b.bitPosition++
	b.updateLength()
	return nil
}

// Read fills p with up to len(p) bytes from the cursor, honoring its bit
// alignment. It implements io.Reader: a reader with nothing left returns
// 0, io.EOF.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !b.hasData() {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) {
		value, ok := b.ReadByte()
		if !ok {
			break
		}
		p[n] = value
		n++
	}
	return n, nil
}

// Write stores all of p at the cursor, growing storage as needed. It
// implements io.Writer. Aligned writes copy in one pass; misaligned writes
// split every byte at the in-byte offset.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	pos := b.Position()
	if b.BitAligned() {
		if pos+len(p) > len(b.storage) {
			if err := b.grow(len(p)); err != nil {
				return 0, err
			}
		}
		copy(b.storage[pos:], p)
		b.bitPosition += len(p) * 8
	} else {
		if pos+len(p)+1 > len(b.storage) {
			if err := b.grow(len(p)); err != nil {
				return 0, err
			}
		}
		for _, value := range p {
			b.writeByteMisaligned(value)
		}
	}
	b.updateLength()
	return len(p), nil
}

// Seek moves the cursor to a byte offset relative to the start, the current
// position or the end of storage, per the io.Seeker whence constants. The
// offset is scaled to bits and the result clamped into [0, Capacity()*8].
// It returns the new cursor position in whole bytes.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset * 8
	case io.SeekCurrent:
		target = int64(b.bitPosition) + offset*8
	case io.SeekEnd:
		target = (int64(len(b.storage)) + offset) * 8
	default:
		return 0, fmt.Errorf("%w: unknown seek whence %d", ErrInvalidArgument, whence)
	}
	limit := int64(len(b.storage)) * 8
	b.bitPosition = int(min(max(target, 0), limit))
	return int64(b.Position()), nil
}
