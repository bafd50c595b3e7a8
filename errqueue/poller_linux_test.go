//go:build linux
// +build linux

package errqueue

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-txtime/api"
)

// cmsg builds one control message carrying data.
func cmsg(level, typ int32, data []byte) []byte {
	b := make([]byte, unix.CmsgSpace(len(data)))
	h := (*unix.Cmsghdr)(unsafe.Pointer(&b[0]))
	h.Level = level
	h.Type = typ
	h.SetLen(unix.CmsgLen(len(data)))
	copy(b[unix.CmsgLen(0):], data)
	return b
}

// extendedErr lays r out as the kernel does.
func extendedErr(r api.CompletionRecord) []byte {
	ee := unix.SockExtendedErr{
		Errno:  r.Errno,
		Origin: uint8(r.Origin),
		Type:   r.Type,
		Code:   uint8(r.Code),
		Info:   uint32(r.Timestamp),
		Data:   uint32(r.Timestamp >> 32),
	}
	return append([]byte(nil), unsafe.Slice((*byte)(unsafe.Pointer(&ee)), unsafe.Sizeof(ee))...)
}

func TestDecodeExtendedErr_Fields(t *testing.T) {
	want := api.CompletionRecord{Errno: 125, Origin: api.OriginTxTime, Type: 0, Code: api.CodeTxTimeMissed, Timestamp: 0x1234_5678_9abc_def0}
	got, ok := decodeExtendedErr(extendedErr(want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestDecodeExtendedErr_TimestampHalves(t *testing.T) {
	ee := unix.SockExtendedErr{Origin: unix.SO_EE_ORIGIN_TXTIME, Code: unix.SO_EE_CODE_TXTIME_MISSED, Data: 1, Info: 0}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&ee)), unsafe.Sizeof(ee))

	rec, ok := decodeExtendedErr(raw)
	require.True(t, ok)
	assert.Equal(t, uint64(4294967296), rec.Timestamp)
	assert.True(t, rec.TxTimeDrop())
}

func TestDecodeExtendedErr_Short(t *testing.T) {
	_, ok := decodeExtendedErr(make([]byte, sizeofExtendedErr-1))
	assert.False(t, ok)
}

func TestPollCompletion_NothingPending(t *testing.T) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	require.NoError(t, err)
	defer unix.Close(fd)

	rec, err := NewPoller().PollCompletion(fd)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestParseNotification_TxTime(t *testing.T) {
	want := api.CompletionRecord{Errno: 125, Origin: api.OriginTxTime, Code: api.CodeTxTimeMissed, Timestamp: 1 << 32}
	oob := cmsg(unix.SOL_PACKET, unix.PACKET_TX_TIMESTAMP, extendedErr(want))

	got, err := parseNotification(oob)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseNotification_PrefersTxTime(t *testing.T) {
	other := api.CompletionRecord{Origin: api.OriginLocal, Errno: 90}
	drop := api.CompletionRecord{Origin: api.OriginTxTime, Code: api.CodeTxTimeInvalidParam, Timestamp: 7}
	oob := append(cmsg(unix.SOL_IP, unix.IP_RECVERR, extendedErr(other)), cmsg(unix.SOL_IP, unix.IP_RECVERR, extendedErr(drop))...)

	got, err := parseNotification(oob)
	require.NoError(t, err)
	assert.Equal(t, drop, got)
}

func TestParseNotification_OtherOriginReturned(t *testing.T) {
	other := api.CompletionRecord{Origin: api.OriginICMP, Errno: 111}
	got, err := parseNotification(cmsg(unix.SOL_IP, unix.IP_RECVERR, extendedErr(other)))
	require.NoError(t, err)
	assert.Equal(t, other, got)
}

func TestParseNotification_SkipsTimestamping(t *testing.T) {
	// struct scm_timestamping: three timespecs.
	stamps := make([]byte, 3*int(unsafe.Sizeof(unix.Timespec{})))
	for i := range stamps {
		stamps[i] = 0xA5
	}
	unreachable := api.CompletionRecord{Origin: api.OriginICMP6, Errno: 113, Type: 1}
	oob := append(cmsg(unix.SOL_SOCKET, unix.SO_TIMESTAMPING, stamps), cmsg(unix.SOL_IPV6, unix.IPV6_RECVERR, extendedErr(unreachable))...)

	got, err := parseNotification(oob)
	require.NoError(t, err)
	assert.Equal(t, unreachable, got)
}

func TestParseNotification_OnlyTimestamping(t *testing.T) {
	oob := cmsg(unix.SOL_SOCKET, unix.SO_TIMESTAMPING, make([]byte, 3*int(unsafe.Sizeof(unix.Timespec{}))))
	_, err := parseNotification(oob)
	assert.ErrorIs(t, err, api.ErrMalformedNotification)
}

func TestParseNotification_Malformed(t *testing.T) {
	_, err := parseNotification(nil)
	assert.ErrorIs(t, err, api.ErrMalformedNotification)

	_, err = parseNotification(cmsg(unix.SOL_IP, unix.IP_RECVERR, []byte{1, 2, 3}))
	assert.ErrorIs(t, err, api.ErrMalformedNotification)
}
