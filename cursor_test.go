package winlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorReadBytes(t *testing.T) {
	c := NewCursor([]byte("abcdef"))
	b, err := c.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), b)
	assert.Equal(t, 3, c.Pos())

	b, err = c.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte("def"), b)
	assert.False(t, c.More())

	_, err = c.ReadBytes(1)
	assert.ErrorIs(t, err, ErrShortRead)
}

func TestCursorShortReadIsExact(t *testing.T) {
	c := NewCursor([]byte("ab"))
	_, err := c.ReadBytes(3)
	assert.ErrorIs(t, err, ErrShortRead)
	// A failed read must not advance the cursor.
	assert.Equal(t, 0, c.Pos())
}

func TestCursorRest(t *testing.T) {
	c := NewCursor([]byte("abcdef"))
	_, err := c.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("cdef"), c.Rest())
	assert.False(t, c.More())
	assert.Empty(t, c.Rest())
}

func TestCursorReadString(t *testing.T) {
	c := NewCursor([]byte("hello.obj       "))
	s, err := c.ReadString(16)
	require.NoError(t, err)
	assert.Equal(t, "hello.obj       ", s)

	c = NewCursor([]byte{0xff, 0xfe, 0xfd})
	_, err = c.ReadString(3)
	assert.Error(t, err)
}

func TestCursorReadInt(t *testing.T) {
	c := NewCursor([]byte("1361157466  42        -1    x     "))
	n, err := c.ReadInt(12)
	require.NoError(t, err)
	assert.Equal(t, int64(1361157466), n)

	n, err = c.ReadInt(10)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = c.ReadInt(6)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), n)

	_, err = c.ReadInt(6)
	assert.Error(t, err)
}

func TestCursorReadUint32(t *testing.T) {
	c := NewCursor([]byte{0x00, 0x01, 0x02, 0x03, 0xff})
	n, err := c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00010203), n)

	_, err = c.ReadUint32()
	assert.ErrorIs(t, err, ErrShortRead)
}

func TestCursorReadCString(t *testing.T) {
	c := NewCursor([]byte("foo.obj\x00bar.obj\x00baz"))
	s, err := c.ReadCString()
	require.NoError(t, err)
	assert.Equal(t, "foo.obj", s)

	s, err = c.ReadCString()
	require.NoError(t, err)
	assert.Equal(t, "bar.obj", s)

	_, err = c.ReadCString()
	assert.ErrorIs(t, err, ErrUnterminated)
}

func TestCursorCStringAt(t *testing.T) {
	c := NewCursor([]byte("foo.obj\x00bar.obj\x00"))
	s, err := c.CStringAt(8)
	require.NoError(t, err)
	assert.Equal(t, "bar.obj", s)
	// Offset-addressed lookups must not disturb the cursor.
	assert.Equal(t, 0, c.Pos())

	s, err = c.CStringAt(0)
	require.NoError(t, err)
	assert.Equal(t, "foo.obj", s)

	_, err = c.CStringAt(99)
	assert.ErrorIs(t, err, ErrSeek)
}

func TestCursorSeek(t *testing.T) {
	c := NewCursor([]byte("abcdef"))
	require.NoError(t, c.Seek(4))
	b, err := c.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("ef"), b)

	assert.ErrorIs(t, c.Seek(7), ErrSeek)
	assert.ErrorIs(t, c.Seek(-1), ErrSeek)
}

func TestCursorSubIsZeroCopy(t *testing.T) {
	data := []byte("abcdef")
	c := NewCursor(data)
	sub, err := c.Sub(3)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Size())
	assert.Equal(t, 3, c.Pos())

	// The sub-view borrows the parent's buffer rather than copying it.
	data[0] = 'Z'
	b, err := sub.ReadBytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("Z"), b)
}

func TestCursorSubRest(t *testing.T) {
	c := NewCursor([]byte("abcdef"))
	_, err := c.ReadBytes(2)
	require.NoError(t, err)
	sub := c.SubRest()
	assert.Equal(t, 4, sub.Size())
	assert.False(t, c.More())

	// Parent and sub advance independently.
	b, err := sub.ReadBytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("cdef"), b)
}

func TestCursorSubTooLong(t *testing.T) {
	c := NewCursor([]byte("ab"))
	_, err := c.Sub(5)
	assert.ErrorIs(t, err, ErrShortRead)
}
