package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRCode_String(t *testing.T) {
	cases := []struct {
		code RCode
		want string
	}{
		{RCodeNoError, "NOERROR"},
		{RCodeFormErr, "FORMERR"},
		{RCodeServFail, "SERVFAIL"},
		{RCodeNXDomain, "NXDOMAIN"},
		{RCodeNotImp, "NOTIMP"},
		{RCodeRefused, "REFUSED"},
		{9, "UNKNOWN(9)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.code.String())
	}
}
