package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Name
		wantErr bool
	}{
		{name: "simple", input: "example.com", want: "example.com"},
		{name: "trailing dot", input: "example.com.", want: "example.com"},
		{name: "whitespace", input: "  www.example.com\t", want: "www.example.com"},
		{name: "case preserved", input: "WwW.Example.COM", want: "WwW.Example.COM"},
		{name: "root", input: ".", want: ""},
		{name: "empty component", input: "a..b", wantErr: true},
		{name: "leading dot", input: ".example.com", wantErr: true},
		{name: "double trailing dot", input: "example.com..", wantErr: true},
		{name: "only dots", input: "..", wantErr: true},
		{name: "label too long", input: strings.Repeat("a", 64) + ".com", wantErr: true},
		{name: "label at limit", input: strings.Repeat("a", 63) + ".com", want: Name(strings.Repeat("a", 63) + ".com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidName))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestName_Canonical(t *testing.T) {
	assert.Equal(t, Name("example.com"), Name("example.com.").Canonical())
	assert.Equal(t, Name("example.com"), Name("example.com").Canonical())
	assert.True(t, Name(".").Canonical().IsRoot())
}

func TestName_Labels(t *testing.T) {
	labels, err := Name("www.example.com").Labels()
	require.NoError(t, err)
	assert.Equal(t, []string{"www", "example", "com"}, labels)

	labels, err = Name("").Labels()
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestName_Labels_TotalLength(t *testing.T) {
	// four 63-byte labels encode to 4*64+1 = 257 bytes
	label := strings.Repeat("x", 63)
	tooLong := Name(strings.Join([]string{label, label, label, label}, "."))
	_, err := tooLong.Labels()
	assert.ErrorIs(t, err, ErrInvalidName)

	// three 63-byte labels plus a 61-byte label encode to exactly 255 bytes
	fits := Name(strings.Join([]string{label, label, label, strings.Repeat("y", 61)}, "."))
	_, err = fits.Labels()
	assert.NoError(t, err)
}

func TestNameFromLabels(t *testing.T) {
	n, err := NameFromLabels([]string{"example", "com"})
	require.NoError(t, err)
	assert.Equal(t, Name("example.com"), n)

	n, err = NameFromLabels(nil)
	require.NoError(t, err)
	assert.True(t, n.IsRoot())

	_, err = NameFromLabels([]string{"exa.mple", "com"})
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NameFromLabels([]string{"", "com"})
	assert.ErrorIs(t, err, ErrInvalidName)
}
