package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	testCases := []struct {
		d        time.Duration
		expected string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{2*time.Minute + 3*time.Second, "2m 3.00s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h 2m 3.00s"},
		{26*time.Hour + 4*time.Minute + 5*time.Second, "1d 2h 4m 5.00s"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatTime(tc.d))
	}
}

func TestDecorateText_KeepsMessage(t *testing.T) {
	for _, msgType := range []MessageType{DefaultMessage, SuccessMessage, ErrorMessage, StatusMessage} {
		assert.Contains(t, DecorateText("resizing", msgType), "resizing")
	}
	assert.Equal(t, "plain", DecorateText("plain", DefaultMessage))
}

func TestMath(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 5))
	assert.Equal(2, Min(5, 2))
	assert.Equal(5, Max(2, 5))
	assert.Equal(5, Max(5, 2))
	assert.Equal(1.5, Min(1.5, 2.5))
	assert.Equal(3, Abs(-3))
	assert.Equal(3, Abs(3))
	assert.Equal(0.5, Abs(-0.5))
	assert.Equal(1, Clamp(-4, 1, 20))
	assert.Equal(20, Clamp(40, 1, 20))
	assert.Equal(8, Clamp(8, 1, 20))
}
