package discord

import "time"

// Embed colors
const (
	ColorLevelUp   = 0x2ecc71 // Green
	ColorArchetype = 0x9b59b6 // Purple
	ColorDuel      = 0xe67e22 // Orange
	ColorEvent     = 0x3498db // Blue
	ColorEventEnd  = 0x95a5a6 // Gray
)

const (
	FooterText = "EDM Bot"

	// DedupCacheSize bounds the number of remembered announcements
	DedupCacheSize = 1024
	// DedupTTL covers the publisher's retry window
	DedupTTL = 30 * time.Minute
)

// Embed titles and formats
const (
	TitleLevelUp         = "Level Up!"
	TitleArchetype       = "Archetype Evolved"
	TitleDuelWon         = "Duel Finished"
	TitleDuelDraw        = "Duel Ended in a Draw"
	TitleEventStarted    = "XP Event Started"
	TitleEventEnded      = "XP Event Ended"
	FmtLevelUp           = "<@%s> reached **level %d** (%s)"
	FmtClassChange       = "New class: **%s** (was %s)"
	FmtArchetype         = "<@%s> evolved from **%s** to **%s**"
	FmtDuelWinner        = "<@%s> won the duel against <@%s>"
	FmtDuelDraw          = "<@%s> and <@%s> were both penalized for imbalance"
	FmtDuelXP            = "<@%s>: %s XP"
	FmtEventBody         = "**%s**: %.2fx XP until %s"
	FmtEventEndedBody    = "**%s** is over"
	FmtEventFactionScope = "Faction: %s"
	FieldPerfect         = "Perfect balance"
	FieldXPGained        = "XP gained"
	ValuePerfectYes      = "Both stayed in the window"
	TimeLayout           = "Jan 2 15:04 MST"
)

// Log messages
const (
	LogMsgAnnouncerStarted   = "Discord announcer connected"
	LogMsgAnnouncerStopped   = "Discord announcer closed"
	LogMsgAnnouncementSent   = "Announcement sent"
	LogMsgAnnouncementFailed = "Failed to send announcement"
	LogMsgDuplicateSkipped   = "Duplicate announcement skipped"
	LogMsgPayloadInvalid     = "Announcement payload could not be decoded"
)

// Error messages
const (
	ErrMsgCreateSession = "error creating Discord session"
	ErrMsgOpenSession   = "error opening connection"
	ErrMsgMissingConfig = "discord token and channel id are required"
)
