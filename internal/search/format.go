package search

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count in the largest unit (1024 steps, up to TB)
// that keeps the value at or above 1, with two decimals.
func FormatSize(bytes int64) string {
	v := float64(bytes)
	unit := 0
	for v >= 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", v, sizeUnits[unit])
}

const timeLayout = "2006-01-02 15:04"

func workspaceMetadata(members int) string {
	if members == 1 {
		return "1 member"
	}
	return fmt.Sprintf("%d members", members)
}

func commandMetadata(typ, description string) string {
	if description == "" {
		return typ
	}
	return typ + ": " + description
}
