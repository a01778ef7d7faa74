package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// exampleAnswer is example.com IN A 127.0.0.1 with a TTL of 60.
var exampleAnswer = []byte{
	0x07, 0x65, 0x78, 0x61, 0x6D, 0x70, 0x6C, 0x65, // "example"
	0x03, 0x63, 0x6F, 0x6D, // "com"
	0x00,       // terminator
	0x00, 0x01, // type A
	0x00, 0x01, // class IN
	0x00, 0x00, 0x00, 0x3C, // ttl 60
	0x00, 0x04, // rdlength
	0x7F, 0x00, 0x00, 0x01, // 127.0.0.1
}

func exampleRecord(t *testing.T) domain.ARecord {
	t.Helper()
	addr, err := domain.ParseIPv4Address("127.0.0.1")
	require.NoError(t, err)
	rec, err := domain.NewARecord("example.com", domain.RRClassIN, 60, addr)
	require.NoError(t, err)
	return rec
}

func TestEncodeResourceRecord(t *testing.T) {
	got, err := EncodeResourceRecord(exampleRecord(t).ResourceRecord())
	require.NoError(t, err)
	assert.Equal(t, exampleAnswer, got)
}

func TestEncodeResourceRecord_RDLengthMismatch(t *testing.T) {
	rr := exampleRecord(t).ResourceRecord()
	rr.RDLength = 6
	_, err := EncodeResourceRecord(rr)
	assert.ErrorIs(t, err, domain.ErrRDataLength)
}

func TestDecodeResourceRecord(t *testing.T) {
	rr, n, err := DecodeResourceRecord(exampleAnswer, 0)
	require.NoError(t, err)
	assert.Equal(t, len(exampleAnswer), n)
	assert.Equal(t, exampleRecord(t).ResourceRecord(), rr)
}

func TestDecodeResourceRecord_Truncated(t *testing.T) {
	for cut := 0; cut < len(exampleAnswer); cut++ {
		_, _, err := DecodeResourceRecord(exampleAnswer[:cut], 0)
		assert.ErrorIs(t, err, ErrMalformedMessage, "cut at %d", cut)
	}
}
