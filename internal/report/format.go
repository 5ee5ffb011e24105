package report

import "fmt"

// Microsecond-scaled unit constants.
const (
	MicrosPerSecond int64 = 1_000_000
	MicrosPerMinute int64 = 60 * MicrosPerSecond
	MicrosPerHour   int64 = 60 * MicrosPerMinute
	MicrosPerDay    int64 = 24 * MicrosPerHour
)

const microsPerMilli int64 = 1_000

// Raw renders elapsed microseconds as fixed-point seconds with exactly
// six fractional digits, e.g. "1.001034s". The scaling is pure integer
// arithmetic; no floating point is involved.
func Raw(elapsedUS int64) string {
	return fmt.Sprintf("%d.%06ds", elapsedUS/MicrosPerSecond, elapsedUS%MicrosPerSecond)
}

// Human renders elapsed microseconds as a days/hours/minutes/seconds
// breakdown, showing only the units needed: "S.SSSs" under a minute,
// "MMm S.SSSs" under an hour, "HHh MMm S.SSSs" under a day, and
// "Dd HHh MMm S.SSSs" from a day up. Hours and minutes are zero-padded
// to two digits, days are not, and seconds always carry exactly three
// fractional digits.
//
// The value is rounded half-up to whole milliseconds first and only
// then decomposed, so a rounded 59.9995s carries into "01m 0.000s" and
// the same carry rule holds at every unit boundary.
func Human(elapsedUS int64) string {
	ms := (elapsedUS + microsPerMilli/2) / microsPerMilli

	const (
		msPerSecond = 1_000
		msPerMinute = 60 * msPerSecond
		msPerHour   = 60 * msPerMinute
		msPerDay    = 24 * msPerHour
	)

	days := ms / msPerDay
	ms %= msPerDay
	hours := ms / msPerHour
	ms %= msPerHour
	minutes := ms / msPerMinute
	ms %= msPerMinute
	seconds := ms / msPerSecond
	millis := ms % msPerSecond

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %02dh %02dm %d.%03ds", days, hours, minutes, seconds, millis)
	case hours > 0:
		return fmt.Sprintf("%02dh %02dm %d.%03ds", hours, minutes, seconds, millis)
	case minutes > 0:
		return fmt.Sprintf("%02dm %d.%03ds", minutes, seconds, millis)
	default:
		return fmt.Sprintf("%d.%03ds", seconds, millis)
	}
}
