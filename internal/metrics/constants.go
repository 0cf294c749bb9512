package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameXPAwarded          = "xp_awarded_total"
	MetricNameMultiplier         = "xp_multiplier"
	MetricNameSecondaryAwards    = "secondary_awards_total"
	MetricNameBoostsUnlocked     = "multiplier_boosts_unlocked_total"
	MetricNameLevelUps           = "level_ups_total"
	MetricNameArchetypeEvolved   = "archetype_evolutions_total"
	MetricNameDuelsCreated       = "duels_created_total"
	MetricNameDuelPenalties      = "duel_penalties_total"
	MetricNameDuelsCompleted     = "duels_completed_total"
	MetricNameXPEventTransitions = "xp_event_transitions_total"
	MetricNameSweepRuns          = "sweep_runs_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextXPAwarded          = "Total XP awarded after multipliers"
	HelpTextMultiplier         = "Composite multiplier applied to awarded XP"
	HelpTextSecondaryAwards    = "Secondary XP award attempts by outcome"
	HelpTextBoostsUnlocked     = "Total multiplier boosts unlocked"
	HelpTextLevelUps           = "Total level ups"
	HelpTextArchetypeEvolved   = "Total raw archetype label changes"
	HelpTextDuelsCreated       = "Total duels created"
	HelpTextDuelPenalties      = "Total duel balance penalties"
	HelpTextDuelsCompleted     = "Total duels completed by outcome"
	HelpTextXPEventTransitions = "Global XP event start and end announcements"
	HelpTextSweepRuns          = "Periodic sweep runs by job and result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelSource   = "source"
	LabelCategory = "category"
	LabelOutcome  = "outcome"
	LabelTo       = "to"
	LabelKind     = "kind"
	LabelPerfect  = "perfect"
	LabelPhase    = "phase"
	LabelJob      = "job"
	LabelResult   = "result"
)

// Label values
const (
	OutcomeGranted = "granted"
	PhaseStarted   = "started"
	PhaseEnded     = "ended"
	ResultOK       = "ok"
	ResultError    = "error"
	UnmatchedPath  = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// MultiplierBuckets spans 1.0 up to the default 5.0 cap
var MultiplierBuckets = []float64{1, 1.05, 1.1, 1.15, 1.25, 1.5, 2, 3, 4, 5}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
