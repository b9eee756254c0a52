package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "405,000", FormatAmount(405000))
	assert.Equal(t, "1,500,000", FormatAmount(1500000))
	assert.Equal(t, "999", FormatAmount(999))
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "461,111", FormatAmount(461110.5))
}

func TestFormatRange(t *testing.T) {
	got := FormatRange(405000, 495000, 450000)
	assert.Equal(t, "₹ 405,000 - 495,000 (Center: 450,000)", got)
}
