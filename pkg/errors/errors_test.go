package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithContext(t *testing.T) {
	base := New("connection refused")
	wrapped := WithContext(WithContext(base, "dial"), "probe pod")

	assert.Equal(t, "probe pod: dial: connection refused", wrapped.Error())
	assert.Equal(t, base, RootCause(wrapped))
}

func TestGetPrintableMessage(t *testing.T) {
	friendly := NewFriendlyError("The pod %q is unknown.", "pod-1")

	tests := []struct {
		name string
		err  error
		exp  string
	}{
		{
			name: "Plain",
			err:  New("boom"),
			exp:  "boom",
		},
		{
			name: "Friendly",
			err:  friendly,
			exp:  `The pod "pod-1" is unknown.`,
		},
		{
			name: "WrappedFriendly",
			err:  WithContext(friendly, "discover pod"),
			exp:  `The pod "pod-1" is unknown.`,
		},
		{
			name: "WrappedPlain",
			err:  WithContext(New("boom"), "dial"),
			exp:  "dial: boom",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, GetPrintableMessage(test.err))
		})
	}
}
