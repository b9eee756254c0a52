package prediction

import (
	"fmt"
	"math"
	"strconv"
)

// FormatAmount renders a salary figure with thousands separators, no
// decimals: 405000 -> "405,000". Fractional figures round for display only.
func FormatAmount(v float64) string {
	s := strconv.FormatInt(int64(math.Round(v)), 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatRange is the audit-log representation of a prediction band.
func FormatRange(salaryMin, salaryMax, center float64) string {
	return fmt.Sprintf("₹ %s - %s (Center: %s)", FormatAmount(salaryMin), FormatAmount(salaryMax), FormatAmount(center))
}
