package domain

import "fmt"

// FormatAmount serializes an amount in minor currency units as a decimal
// string with exactly two fractional digits, the wire format the order API
// expects for all currency values.
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
