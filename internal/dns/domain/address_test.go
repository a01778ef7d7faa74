package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIPv4Address(t *testing.T) {
	tests := []struct {
		input   string
		want    IPv4Address
		wantErr bool
	}{
		{input: "1.2.3.4", want: IPv4Address{1, 2, 3, 4}},
		{input: "127.0.0.1", want: IPv4Address{127, 0, 0, 1}},
		{input: "255.255.255.255", want: IPv4Address{255, 255, 255, 255}},
		{input: "0.0.0.0", want: IPv4Address{}},
		{input: "256.1.1.1", wantErr: true},
		{input: "1.2.3", wantErr: true},
		{input: "1.2.3.4.5", wantErr: true},
		{input: "1..3.4", wantErr: true},
		{input: "a.b.c.d", wantErr: true},
		{input: "-1.2.3.4", wantErr: true},
		{input: "+1.2.3.4", wantErr: true},
		{input: "0001.2.3.4", wantErr: true},
		{input: "", wantErr: true},
		{input: " 1.2.3.4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIPv4Address(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddressLiteral)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}
