//go:build linux
// +build linux

package txtime_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-txtime/txtime"
)

func TestAttachReleaseTime_SingleRecord(t *testing.T) {
	const release = uint64(1_700_000_000_000_275_000)
	oob := txtime.NewAttacher().AttachReleaseTime(nil, release)
	require.Len(t, oob, unix.CmsgSpace(8))

	msgs, err := unix.ParseSocketControlMessage(oob)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, int32(unix.SOL_SOCKET), msgs[0].Header.Level)
	assert.Equal(t, int32(unix.SCM_TXTIME), msgs[0].Header.Type)
	require.Len(t, msgs[0].Data, 8)
	assert.Equal(t, release, binary.NativeEndian.Uint64(msgs[0].Data))
}

func TestAttachReleaseTime_ReusesBuffer(t *testing.T) {
	a := txtime.NewAttacher()
	buf := make([]byte, 0, 64)
	first := a.AttachReleaseTime(buf, 1)
	second := a.AttachReleaseTime(first[:0], 2)
	assert.Same(t, &first[0], &second[0])

	msgs, err := unix.ParseSocketControlMessage(second)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, uint64(2), binary.NativeEndian.Uint64(msgs[0].Data))
}
