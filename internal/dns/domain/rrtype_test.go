package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRRType_IsValid(t *testing.T) {
	assert.True(t, RRTypeA.IsValid())
	assert.False(t, RRType(0).IsValid())
	assert.False(t, RRType(28).IsValid())
}

func TestRRType_String(t *testing.T) {
	cases := []struct {
		rrtype RRType
		want   string
	}{
		{RRTypeA, "A"},
		{28, "TYPE28"},
		{65535, "TYPE65535"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.rrtype.String())
	}
}

func TestParseRRType(t *testing.T) {
	for _, s := range []string{"A", "a"} {
		rt, err := ParseRRType(s)
		assert.NoError(t, err)
		assert.Equal(t, RRTypeA, rt)
	}
	for _, s := range []string{"AAAA", "MX", "CNAME", "", "TYPE1"} {
		_, err := ParseRRType(s)
		assert.ErrorIs(t, err, ErrUnsupportedRecordType, s)
	}
}
