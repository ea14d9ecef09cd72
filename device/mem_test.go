package device

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMem_ReadWrite(t *testing.T) {
	m := NewMem(8)
	require.NoError(t, m.Write(2, []byte{1, 2}))
	got, err := m.Read(0, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 1, 2}, got)
	require.Equal(t, 1, m.Writes)
	require.Equal(t, 1, m.Reads)

	got[0] = 9
	require.Equal(t, byte(0), m.Buf[0], "Read must return a copy")

	_, err = m.Read(6, 4)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestMem_TornWrite(t *testing.T) {
	m := NewMem(8)
	m.TornWrite = 2
	err := m.Write(0, []byte{1, 2, 3, 4})
	require.ErrorIs(t, err, io.ErrShortWrite)
	require.Equal(t, []byte{1, 2, 0, 0}, m.Buf[:4])
	require.Zero(t, m.Writes)

	require.NoError(t, m.Write(0, []byte{5, 6, 7, 8}))
	require.Equal(t, []byte{5, 6, 7, 8}, m.Buf[:4])
}

func TestMem_InjectedErrors(t *testing.T) {
	boom := errors.New("boom")
	m := &Mem{Buf: make([]byte, 4), ReadErr: boom, WriteErr: boom, SyncErr: boom}
	_, err := m.Read(0, 1)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, m.Write(0, []byte{1}), boom)
	require.ErrorIs(t, m.Sync(), boom)
}

func TestMemSet_Open(t *testing.T) {
	m := NewMem(4)
	set := MemSet{"/dev/env0": m}

	a, err := set.Open("/dev/env0", false)
	require.NoError(t, err)
	require.Same(t, m, a)
	require.NoError(t, a.Close())
	require.Equal(t, 1, m.Closes)

	_, err = set.Open("/dev/missing", false)
	require.Error(t, err)
}
