package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Progression Metrics
var (
	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
		[]string{LabelSource},
	)

	MultiplierApplied = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameMultiplier,
			Help:    HelpTextMultiplier,
			Buckets: MultiplierBuckets,
		},
		[]string{LabelSource},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	ArchetypeEvolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameArchetypeEvolved,
			Help: HelpTextArchetypeEvolved,
		},
		[]string{LabelTo},
	)
)

// Economy Metrics
var (
	SecondaryAwards = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSecondaryAwards,
			Help: HelpTextSecondaryAwards,
		},
		[]string{LabelCategory, LabelOutcome},
	)

	BoostsUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBoostsUnlocked,
			Help: HelpTextBoostsUnlocked,
		},
	)
)

// Duel Metrics
var (
	DuelsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDuelsCreated,
			Help: HelpTextDuelsCreated,
		},
	)

	DuelPenalties = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDuelPenalties,
			Help: HelpTextDuelPenalties,
		},
	)

	DuelsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDuelsCompleted,
			Help: HelpTextDuelsCompleted,
		},
		[]string{LabelKind, LabelPerfect},
	)
)

// Background Metrics
var (
	XPEventTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPEventTransitions,
			Help: HelpTextXPEventTransitions,
		},
		[]string{LabelPhase},
	)

	SweepRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSweepRuns,
			Help: HelpTextSweepRuns,
		},
		[]string{LabelJob, LabelResult},
	)
)
