package xpevent

// Error messages
const (
	ErrMsgCreateEvent   = "failed to create xp event"
	ErrMsgGetEvent      = "failed to get xp event"
	ErrMsgListActive    = "failed to list active xp events"
	ErrMsgEndEvent      = "failed to end xp event"
	ErrMsgListStarts    = "failed to list unannounced xp event starts"
	ErrMsgListEnds      = "failed to list unannounced xp event ends"
	ErrMsgMarkAnnounced = "failed to mark xp event announced"
)

// Log messages
const (
	LogMsgEventCreated   = "Global XP event created"
	LogMsgEventEnded     = "Global XP event ended early"
	LogMsgEventStarted   = "Global XP event started"
	LogMsgEventFinished  = "Global XP event finished"
	LogMsgAnnounceFailed = "Failed to mark xp event announcement"
)
