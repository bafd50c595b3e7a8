package txtime_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/hioload-txtime/api"
	"github.com/momentics/hioload-txtime/txtime"
)

func TestHtons_WireBytes(t *testing.T) {
	var got [2]byte
	binary.NativeEndian.PutUint16(got[:], txtime.Htons(api.EtherTypeUADP))
	assert.Equal(t, [2]byte{0xB6, 0x2C}, got, "UADP EtherType must hit the wire big-endian")
}

func TestHtons_RoundTrip(t *testing.T) {
	for _, v := range []uint16{0, 1, 0x0800, 0x86DD, 0xFFFF} {
		assert.Equal(t, v, txtime.Htons(txtime.Htons(v)))
	}
}
