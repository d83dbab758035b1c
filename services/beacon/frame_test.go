package beacon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFrameLayout(t *testing.T) {
	got, err := BuildFrame(DefaultName, DefaultCompanyID, refPayload)
	require.NoError(t, err)

	want := []byte{
		// Flags: LE general discoverable, no BR/EDR.
		0x02, 0x01, 0x06,
		// Complete local name "EnvBcn".
		0x07, 0x09, 'E', 'n', 'v', 'B', 'c', 'n',
		// Manufacturer data: company 0x0059 LE + 14-byte payload.
		0x11, 0xFF, 0x59, 0x00,
	}
	want = append(want, refBytes...)
	assert.Equal(t, want, got)
	assert.LessOrEqual(t, len(got), FrameCapacity)
}

func TestBuildFrameDeterministic(t *testing.T) {
	a, err := BuildFrame(DefaultName, DefaultCompanyID, refPayload)
	require.NoError(t, err)
	b, err := BuildFrame(DefaultName, DefaultCompanyID, refPayload)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildFrameExactFit(t *testing.T) {
	// flags(3) + name(2+8) + manufacturer data(18) = 31: exactly full.
	got, err := BuildFrame("EnvBcn01", DefaultCompanyID, refPayload)
	require.NoError(t, err)
	assert.Len(t, got, FrameCapacity)
}

func TestBuildFrameOverflow(t *testing.T) {
	// One byte past the budget must fail cleanly, not truncate.
	_, err := BuildFrame("EnvBeacon", DefaultCompanyID, refPayload)
	assert.ErrorIs(t, err, ErrFrameOverflow)

	_, err = BuildFrame(strings.Repeat("x", 40), DefaultCompanyID, refPayload)
	assert.ErrorIs(t, err, ErrFrameOverflow)
}
