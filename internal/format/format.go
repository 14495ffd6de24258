// Package format renders numbers for human-readable CLI output.
package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // a shared printer is the usual x/text/message pattern.
var printer = message.NewPrinter(language.English)

// Number formats an integer with thousand separators: 18248 becomes "18,248".
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Float formats f rounded to precision decimals with thousand separators:
// Float(1234.567, 2) returns "1,234.57". Non-finite values print as-is.
func Float(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if precision < 0 {
		precision = 0
	}
	s := strconv.FormatFloat(f, 'f', precision, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return strconv.FormatFloat(f, 'f', precision, 64)
	}
	out := Number(n)
	if hasFrac {
		out += "." + frac
	}
	if neg && strings.Trim(out, "0.,") != "" {
		out = "-" + out
	}
	return out
}

// Emissions formats kg CO2e with one decimal: "1,700.0 kg CO2e".
func Emissions(kg float64) string {
	return Float(kg, 1) + " kg CO2e"
}

// Percent formats a percentage with one decimal: "42.5%".
func Percent(p float64) string {
	return Float(p, 1) + "%"
}

// Score formats a 0-10 score with two decimals.
func Score(s float64) string {
	return Float(s, 2)
}
