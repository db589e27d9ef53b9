// Package format provides shared string and time formatting utilities.
package format

import "time"

// DecomposeDuration splits a duration into whole days, hours, and minutes
// using truncating integer arithmetic. Seconds are discarded, never rounded
// up, so 23h59m59s reports 0 days, 23 hours, 59 minutes.
func DecomposeDuration(d time.Duration) (days, hours, minutes int) {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d / time.Minute)
	days = totalMinutes / (24 * 60)
	hours = (totalMinutes / 60) % 24
	minutes = totalMinutes % 60
	return days, hours, minutes
}
