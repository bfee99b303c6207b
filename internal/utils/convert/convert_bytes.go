package convert

import "strconv"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// HumanBytes formats a size with a binary unit: "512 B", "1.5 KB", "3.0 MB".
// Sizes past the largest unit stay in TB.
func HumanBytes(n int) string {
	if n < 1024 {
		return strconv.Itoa(n) + " B"
	}
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	return strconv.FormatFloat(size, 'f', 1, 64) + " " + byteUnits[unit]
}
