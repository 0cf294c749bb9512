package xp

// Default stat names
const (
	StatApproaches   = "Approaches"
	StatNumbers      = "Numbers"
	StatInstadates   = "Instadates"
	StatDates        = "Dates"
	StatClosures     = "Closures"
	StatFieldReports = "Field Reports"
	StatSocialEvents = "Social Events"
	StatWorkouts     = "Workouts"
	StatColdShowers  = "Cold Showers"
	StatMeditation   = "Meditation"
	StatJournaling   = "Journaling"
	StatCourseWork   = "Course Modules"
	StatReading      = "Reading"
	StatGratitude    = "Gratitude"
)

// MaxStatCount bounds a single stat count in one submission. The HTTP layer
// enforces the same bound on request bodies.
const MaxStatCount = 1_000_000

// Error messages
const (
	ErrMsgReadWeights    = "failed to read stat weight file"
	ErrMsgParseWeights   = "failed to parse stat weight file"
	ErrMsgEmptyWeights   = "stat weight table is empty"
	ErrMsgNegativeWeight = "stat weight must not be negative"
)
