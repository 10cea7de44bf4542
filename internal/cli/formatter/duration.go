package formatter

import (
	"fmt"
	"time"
)

// FormatDuration renders d as HH:MM. Hours are not wrapped at 24 and
// seconds are dropped.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	hours := int64(d / time.Hour)
	minutes := int64((d - time.Duration(hours)*time.Hour) / time.Minute)
	return fmt.Sprintf("%s%02d:%02d", sign, hours, minutes)
}
