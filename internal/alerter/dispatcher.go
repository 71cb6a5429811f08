package alerter

import (
	"context"

	"github.com/google/uuid"
	"github.com/netspec/prtg-reporter/internal/config"
	"github.com/netspec/prtg-reporter/internal/notifier"
	"github.com/netspec/prtg-reporter/internal/opsgenie"
	"github.com/netspec/prtg-reporter/internal/prtg"
	"github.com/netspec/prtg-reporter/internal/report"
	"github.com/rs/zerolog"
)

// SensorSource fetches the current unhealthy sensors
type SensorSource interface {
	FetchSensors(ctx context.Context) ([]prtg.Sensor, error)
}

// AlertCreator raises the aggregated alert
type AlertCreator interface {
	CreateAlert(ctx context.Context, alert opsgenie.Alert) error
}

// FailureNotifier delivers a failure notice to every chat channel
type FailureNotifier interface {
	Broadcast(ctx context.Context, message string) []notifier.Delivery
}

// State is a step of a dispatcher run
type State string

const (
	StateFetching          State = "fetching"
	StateClassifying       State = "classifying"
	StateComposing         State = "composing"
	StateAlerting          State = "alerting"
	StateDone              State = "done"
	StateEscalatingFailure State = "escalating_failure"
)

// Outcome is the terminal state a run reached
type Outcome int

const (
	// OutcomeDone means the alert was created
	OutcomeDone Outcome = iota
	// OutcomeEscalated means fetch or alert creation failed and the failure
	// was sent to chat
	OutcomeEscalated
)

func (o Outcome) String() string {
	if o == OutcomeDone {
		return "done"
	}
	return "escalated"
}

// Result describes a finished run
type Result struct {
	RunID       string
	Outcome     Outcome
	FailedStage State // StateFetching or StateAlerting when escalated
	Buckets     report.Buckets
	Report      string
	Err         error
	Deliveries  []notifier.Delivery
}

// Dispatcher runs fetch, classify, compose and alert once, escalating to
// chat when fetch or alert creation fails
type Dispatcher struct {
	cfg      *config.Config
	source   SensorSource
	alerts   AlertCreator
	notifier FailureNotifier
	filter   *report.Filter
	logger   zerolog.Logger
	newRunID func() string
}

// NewDispatcher creates a dispatcher over the given collaborators
func NewDispatcher(cfg *config.Config, source SensorSource, alerts AlertCreator, notifier FailureNotifier, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		source:   source,
		alerts:   alerts,
		notifier: notifier,
		filter:   report.NewFilter(cfg.PRTG.Exclusions),
		logger:   logger.With().Str("component", "dispatcher").Logger(),
		newRunID: uuid.NewString,
	}
}

// Run performs one reporting pass. Failures are handled here and reported
// through the Result; Run never returns an error.
func (d *Dispatcher) Run(ctx context.Context) Result {
	res := Result{RunID: d.newRunID()}
	log := d.logger.With().Str("run_id", res.RunID).Logger()
	title := d.cfg.Opsgenie.Title

	log.Info().Msgf("Beginning %s", title)

	// Fetch sensors from PRTG
	d.enter(log, StateFetching)
	log.Info().Msg("Gathering PRTG sensors...")
	sensors, err := d.source.FetchSensors(ctx)
	if err != nil {
		return d.escalate(ctx, log, res, StateFetching, ServicePRTG, err)
	}
	log.Info().Int("sensor_count", len(sensors)).Msg("Sensors gathered")

	// Drop excluded sensors and bucket the rest by status
	d.enter(log, StateClassifying)
	res.Buckets = report.Classify(sensors, d.filter)
	log.Info().
		Int("unknown", len(res.Buckets.Unknown)).
		Int("down", len(res.Buckets.Down)).
		Int("down_acknowledged", len(res.Buckets.DownAcknowledged)).
		Int("down_partial", len(res.Buckets.DownPartial)).
		Msg("Sensors filtered")

	// Render the report
	d.enter(log, StateComposing)
	res.Report = report.Compose(res.Buckets)

	// Create the Opsgenie alert
	d.enter(log, StateAlerting)
	log.Info().Msg("Sending alert to Opsgenie...")
	alert := opsgenie.NewAlert(d.cfg.Opsgenie, res.Report, map[string]string{"run_id": res.RunID})
	if err := d.alerts.CreateAlert(ctx, alert); err != nil {
		return d.escalate(ctx, log, res, StateAlerting, ServiceOpsgenie, err)
	}

	d.enter(log, StateDone)
	log.Info().Msg("Opsgenie alert sent")
	log.Info().Msgf("End of %s", title)
	res.Outcome = OutcomeDone
	return res
}

func (d *Dispatcher) escalate(ctx context.Context, log zerolog.Logger, res Result, stage State, service string, err error) Result {
	d.enter(log, StateEscalatingFailure)

	message := FailureMessage(d.cfg.Opsgenie.Title, service, err)
	log.Error().
		Err(err).
		Str("stage", string(stage)).
		Msg(message)

	res.Outcome = OutcomeEscalated
	res.FailedStage = stage
	res.Err = err
	// The notice still goes out when the run was interrupted
	res.Deliveries = d.notifier.Broadcast(context.WithoutCancel(ctx), message)

	log.Info().Msgf("End of %s", d.cfg.Opsgenie.Title)
	return res
}

func (d *Dispatcher) enter(log zerolog.Logger, s State) {
	log.Debug().Str("state", string(s)).Msg("State transition")
}
