package bitbuffer

import (
	"errors"
	"fmt"
)

// Version is the current version of the library.
const Version = "0.1.0"

const (
	// MinCapacity is the smallest storage size New will allocate.
	MinCapacity = 16

	// DefaultGrowthFactor multiplies the capacity on each growth event.
	DefaultGrowthFactor = 2.0

	// growthFloor is the smallest capacity a growth event may produce.
	growthFloor = 256

	// Once storage reaches capThreshold bytes, growth jumps straight to
	// capLimit, the practical limit for a 32-bit length.
	capThreshold = 1 << 30
	capLimit     = 1<<31 - 1
)

var (
	// ErrInvalidArgument is returned when a caller supplies an
	// out-of-domain value: a negative length or position, an unknown
	// seek whence, an empty wrap target, an undersized capacity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported is returned when an operation is structurally
	// disallowed for the buffer's mode or nature: growing a fixed
	// buffer, truncation, line-oriented I/O.
	ErrUnsupported = errors.New("unsupported operation")
)

// Buffer is a byte store addressed and mutated at bit granularity.
//
// The cursor (a bit position) and the high-water bit length are tracked
// independently of the storage capacity, so the cursor may sit anywhere in
// [0, Capacity()*8] regardless of how much has been written.
type Buffer struct {
	storage      []byte
	bitPosition  int
	bitLength    int
	resizable    bool
	growthFactor float64
}

// New creates an empty resizable buffer. The effective initial capacity is
// at least MinCapacity bytes.
func New(capacity int) *Buffer {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	return &Buffer{
		storage:      make([]byte, capacity),
		resizable:    true,
		growthFactor: DefaultGrowthFactor,
	}
}

// Wrap creates a fixed-size buffer over caller-supplied storage. The data is
// treated as fully used: the bit length covers the whole slice, with the
// cursor at 0. The capacity can never change; writes that fit within it are
// allowed.
func Wrap(data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: wrap target must have nonzero length", ErrInvalidArgument)
	}
	return &Buffer{
		storage:      data,
		bitLength:    len(data) * 8,
		growthFactor: DefaultGrowthFactor,
	}, nil
}

// Resizable reports whether the buffer owns growable storage.
func (b *Buffer) Resizable() bool {
	return b.resizable
}

// GrowthFactor returns the multiplier applied to the capacity on growth.
func (b *Buffer) GrowthFactor() float64 {
	return b.growthFactor
}

// SetGrowthFactor sets the growth multiplier, clamped to >= 1.0.
func (b *Buffer) SetGrowthFactor(factor float64) {
	if factor < 1.0 {
		factor = 1.0
	}
	b.growthFactor = factor
}

// Capacity returns the size of the underlying storage in bytes.
func (b *Buffer) Capacity() int {
	return len(b.storage)
}

// SetCapacity resizes the underlying storage. The new capacity must not be
// smaller than Length(), and the buffer must be resizable. Shrinking clamps
// the cursor to the new bit capacity.
func (b *Buffer) SetCapacity(value int) error {
	if value < b.Length() {
		return fmt.Errorf("%w: capacity %d smaller than current length %d", ErrInvalidArgument, value, b.Length())
	}
	return b.setCapacity(value)
}

// setCapacity replaces storage with a fresh allocation of the given size,
// carrying over the overlapping bytes. The old storage is untouched until
// the copy completes, so a failed resize leaves the buffer as it was.
func (b *Buffer) setCapacity(value int) error {
	if !b.resizable {
		return fmt.Errorf("%w: buffer is not resizable", ErrUnsupported)
	}
	replacement := make([]byte, value)
	copy(replacement, b.storage[:min(value, len(b.storage))])
	if limit := value * 8; b.bitPosition > limit {
		b.bitPosition = limit
	}
	b.storage = replacement
	return nil
}

// grow enlarges storage by at least delta bytes. Small buffers at least
// double (scaled by the growth factor) and never end below growthFloor;
// buffers at capThreshold or beyond jump to capLimit.
func (b *Buffer) grow(delta int) error {
	target := len(b.storage) + delta
	var next int
	if len(b.storage) >= capThreshold {
		next = max(target, capLimit)
	} else {
		next = max(target, growthFloor, int(float64(len(b.storage))*b.growthFactor))
	}
	return b.setCapacity(next)
}

// Length returns the used extent in bytes: the high-water bit length
// rounded up to whole bytes.
func (b *Buffer) Length() int {
	n := b.bitLength >> 3
	if b.bitLength&7 != 0 {
		n++
	}
	return n
}

// SetLength forces the used extent to the given byte count, growing the
// storage if needed and clamping the cursor down to the new bit length.
func (b *Buffer) SetLength(value int) error {
	if value < 0 {
		return fmt.Errorf("%w: cannot set a negative length", ErrInvalidArgument)
	}
	if value > len(b.storage) {
		if err := b.grow(value - len(b.storage)); err != nil {
			return err
		}
	}
	b.bitLength = value * 8
	if b.bitPosition > b.bitLength {
		b.bitPosition = b.bitLength
	}
	return nil
}

// BitLength returns the high-water mark of bits ever written or extended to.
func (b *Buffer) BitLength() int {
	return b.bitLength
}

// Position returns the cursor in whole bytes.
func (b *Buffer) Position() int {
	return b.bitPosition >> 3
}

// SetPosition moves the cursor to a byte offset.
func (b *Buffer) SetPosition(value int) error {
	if value < 0 {
		return fmt.Errorf("%w: cannot set a negative position", ErrInvalidArgument)
	}
	return b.SetBitPosition(value * 8)
}

// BitPosition returns the raw bit cursor.
func (b *Buffer) BitPosition() int {
	return b.bitPosition
}

// SetBitPosition moves the cursor to a bit offset. The cursor may point past
// Length(); it is clamped to the bit capacity. Subsequent writes extend the
// bit length, subsequent reads report exhaustion.
func (b *Buffer) SetBitPosition(value int) error {
	if value < 0 {
		return fmt.Errorf("%w: cannot set a negative position", ErrInvalidArgument)
	}
	b.bitPosition = min(value, len(b.storage)*8)
	return nil
}

// BitAligned reports whether the cursor sits on a byte boundary.
func (b *Buffer) BitAligned() bool {
	return b.bitPosition&7 == 0
}

// Bytes returns the live storage up to Length(). Mutations through the
// returned slice are visible to the buffer and vice versa.
func (b *Buffer) Bytes() []byte {
	return b.storage[:b.Length()]
}

// Contents returns a snapshot copy of the used bytes.
func (b *Buffer) Contents() []byte {
	snapshot := make([]byte, b.Length())
	copy(snapshot, b.storage)
	return snapshot
}

// updateLength raises the high-water mark to the cursor after a write.
func (b *Buffer) updateLength() {
	if b.bitPosition > b.bitLength {
		b.bitLength = b.bitPosition
	}
}
