package constants

const (
	// Unit conversions for stored millisecond totals
	MillisPerSecond  = 1000
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute

	// Weekly chart spans Sunday through Saturday
	DaysPerWeek = 7
)
