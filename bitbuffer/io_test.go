package bitbuffer

import (
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadByteAligned(t *testing.T) {
	buf := New(16)
	require.NoError(t, buf.WriteByte(0xA5))
	require.NoError(t, buf.WriteByte(0x3C))

	_, err := buf.Seek(0, io.SeekStart)
	require.NoError(t, err)

	value, ok := buf.ReadByte()
	require.True(t, ok)
	require.Equal(t, byte(0xA5), value)

	value, ok = buf.ReadByte()
	require.True(t, ok)
	require.Equal(t, byte(0x3C), value)
}

func TestWriteByteMisalignedSplit(t *testing.T) {
	buf := New(16)
	require.NoError(t, buf.SetBitPosition(4))
	require.NoError(t, buf.WriteByte(0xAB))

	// Low nibble of 0xAB fills the high half of byte 0, the high nibble
	// lands in the low half of byte 1.
	require.Equal(t, 2, buf.Length())
	require.Equal(t, []byte{0xB0, 0x0A}, buf.Contents())
	require.Equal(t, 12, buf.BitPosition())
}

func TestReadByteMisaligned(t *testing.T) {
	buf, err := Wrap([]byte{0xB0, 0x0A})
	require.NoError(t, err)
	require.NoError(t, buf.SetBitPosition(4))

	value, ok := buf.ReadByte()
	require.True(t, ok)
	require.Equal(t, byte(0xAB), value)
}

func TestMisalignedWritePreservesSiblingBits(t *testing.T) {
	buf, err := Wrap([]byte{0xFF, 0xFF, 0xFF})
	require.NoError(t, err)
	require.NoError(t, buf.SetBitPosition(4))
	require.NoError(t, buf.WriteByte(0x00))

	// Bits 0-3 of byte 0 and bits 4-7 of byte 1 must survive.
	require.Equal(t, []byte{0x0F, 0xF0, 0xFF}, buf.Contents())
}

func TestByteRoundTripAllAlignments(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for offset := 0; offset < 8; offset++ {
		payload := make([]byte, 32)
		_, err := rng.Read(payload)
		require.NoError(t, err)

		buf := New(16)
		require.NoError(t, buf.SetBitPosition(offset))
		for _, value := range payload {
			require.NoError(t, buf.WriteByte(value))
		}

		require.NoError(t, buf.SetBitPosition(offset))
		for i, want := range payload {
			got, ok := buf.ReadByte()
			require.True(t, ok, "offset %d: exhausted at byte %d", offset, i)
			require.Equal(t, want, got, "offset %d: byte %d", offset, i)
		}
	}
}

func TestBitRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	payload := make([]bool, 77)
	for i := range payload {
		payload[i] = rng.Intn(2) == 1
	}

	buf := New(16)
	for _, bit := range payload {
		require.NoError(t, buf.WriteBit(bit))
	}
	require.Equal(t, 77, buf.BitLength())
	require.Equal(t, 10, buf.Length())

	require.NoError(t, buf.SetBitPosition(0))
	for i, want := range payload {
		got, ok := buf.ReadBit()
		require.True(t, ok, "exhausted at bit %d", i)
		require.Equal(t, want, got, "bit %d", i)
	}
}

func TestBitScenario(t *testing.T) {
	// Seek to bit 3, write 1,0,1,1,0, read them back. The high-water bit
	// is 8, so the buffer reports a single used byte.
	buf := New(16)
	require.NoError(t, buf.SetBitPosition(3))

	for _, bit := range []bool{true, false, true, true, false} {
		require.NoError(t, buf.WriteBit(bit))
	}
	require.Equal(t, 8, buf.BitLength())
	require.Equal(t, 1, buf.Length())

	require.NoError(t, buf.SetBitPosition(3))
	for i, want := range []bool{true, false, true, true, false} {
		got, ok := buf.ReadBit()
		require.True(t, ok, "exhausted at bit %d", i)
		require.Equal(t, want, got, "bit %d", i)
	}
}

func TestGrowthPreservesData(t *testing.T) {
	// 3000 bytes into a 16-byte buffer forces the capacity through
	// 256, 512, 1024, 2048 and 4096.
	buf := New(16)
	for i := 0; i < 3000; i++ {
		require.NoError(t, buf.WriteByte(byte(i*7+1)))
	}
	require.GreaterOrEqual(t, buf.Capacity(), 3000)
	require.Equal(t, 3000, buf.Length())

	require.NoError(t, buf.SetPosition(0))
	for i := 0; i < 3000; i++ {
		got, ok := buf.ReadByte()
		require.True(t, ok, "exhausted at byte %d", i)
		require.Equal(t, byte(i*7+1), got, "byte %d", i)
	}
}

func TestGrowthFloor(t *testing.T) {
	buf := New(16)
	for i := 0; i <= 16; i++ {
		require.NoError(t, buf.WriteByte(0x55))
	}
	require.Equal(t, growthFloor, buf.Capacity())
}

func TestFixedBufferRejectsGrowth(t *testing.T) {
	buf, err := Wrap(make([]byte, 4))
	require.NoError(t, err)

	// Overwriting the four bytes in place is fine.
	for i := 0; i < 4; i++ {
		require.NoError(t, buf.WriteByte(byte(i)))
	}

	// The fifth byte would need capacity 5.
	err = buf.WriteByte(0xFF)
	require.ErrorIs(t, err, ErrUnsupported)
	require.Equal(t, 32, buf.BitPosition())
	require.Equal(t, 4, buf.Capacity())

	err = buf.SetLength(5)
	require.ErrorIs(t, err, ErrUnsupported)
	require.NoError(t, buf.SetLength(4))
}

func TestFixedBufferRejectsMisalignedSpill(t *testing.T) {
	buf, err := Wrap(make([]byte, 4))
	require.NoError(t, err)

	// A misaligned byte in the last storage byte spills into byte 4.
	require.NoError(t, buf.SetBitPosition(25))
	err = buf.WriteByte(0xFF)
	require.ErrorIs(t, err, ErrUnsupported)
	require.Equal(t, 25, buf.BitPosition())
}

func TestSeek(t *testing.T) {
	buf := New(16) // 128 bits of capacity

	tests := []struct {
		name   string
		offset int64
		whence int
		want   int64
	}{
		{"absolute", 3, io.SeekStart, 3},
		{"relative forward", 2, io.SeekCurrent, 5},
		{"relative backward", -4, io.SeekCurrent, 1},
		{"from end", -4, io.SeekEnd, 12},
		{"absolute clamps low", -5, io.SeekStart, 0},
		{"absolute clamps high", 100, io.SeekStart, 16},
		{"relative clamps low", -100, io.SeekCurrent, 0},
		{"end clamps high", 5, io.SeekEnd, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buf.Seek(tt.offset, tt.whence)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.want, int64(buf.Position()))
		})
	}
}

func TestSeekInvalidWhence(t *testing.T) {
	buf := New(16)
	_, err := buf.Seek(0, 42)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReadExhaustion(t *testing.T) {
	buf := New(16)

	_, ok := buf.ReadByte()
	require.False(t, ok)
	_, ok = buf.ReadBit()
	require.False(t, ok)

	require.NoError(t, buf.WriteByte(0x01))
	_, err := buf.Seek(0, io.SeekStart)
	require.NoError(t, err)

	_, ok = buf.ReadByte()
	require.True(t, ok)
	_, ok = buf.ReadByte()
	require.False(t, ok)
}

func TestBulkReadBounded(t *testing.T) {
	buf, err := Wrap([]byte{1, 2, 3, 4})
	require.NoError(t, err)

	into := make([]byte, 10)
	n, err := buf.Read(into)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{1, 2, 3, 4}, into[:n])

	_, err = buf.Read(into)
	require.ErrorIs(t, err, io.EOF)
}

func TestBulkWriteMisaligned(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x23, 0x45, 0x67}

	buf := New(16)
	require.NoError(t, buf.SetBitPosition(3))
	n, err := buf.Write(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.Equal(t, 9, buf.Length()) // 3+64 bits round up

	require.NoError(t, buf.SetBitPosition(3))
	into := make([]byte, len(payload))
	n, err = buf.Read(into)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.Equal(t, payload, into)
}

func TestStandardStreamUse(t *testing.T) {
	payload := []byte("raw binary substrate")

	buf := New(16)
	n, err := buf.Write(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	_, err = buf.Seek(0, io.SeekStart)
	require.NoError(t, err)

	out, err := io.ReadAll(buf)
	require.NoError(t, err)
	require.Equal(t, payload, out)
}
