// Package monitor runs the adjustment/evaluation cycle against the
// configured collaborators.
package monitor

import (
	"context"
	"strings"
	"sync"
	"time"

	"ratewatch/internal/adapters"
	"ratewatch/internal/config"
	"ratewatch/internal/domain"
	"ratewatch/internal/setpoint"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators one cycle sequences. Recorder and Alerts are
// optional and may be nil.
type Deps struct {
	Snapshot *config.Snapshot
	Model    *setpoint.Model
	Parser   *setpoint.Parser
	Applier  *setpoint.Applier

	Mailbox  adapters.Mailbox
	Mailer   adapters.Mailer
	Fetcher  adapters.PageFetcher
	Rates    adapters.RateParser
	Store    adapters.SnapshotStore
	Audit    adapters.AuditLog
	Recorder adapters.ObservationRecorder
	Alerts   adapters.AlertSuppressor

	Log logrus.FieldLogger
	Now func() time.Time
}

// Cycle is the adjustment session orchestrator. One Run walks
// mail -> parse -> apply -> (persist -> confirm -> audit commit) ->
// fetch -> evaluate -> notify. Every collaborator failure is stage-local:
// it ends that stage's remaining work, logs, and lets the rest of the cycle
// proceed where its inputs still exist. Nothing here retries; the external
// scheduling trigger is the retry mechanism.
type Cycle struct {
	deps Deps

	mu      sync.Mutex
	lastObs map[string]domain.Observation
}

func NewCycle(deps Deps) *Cycle {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Cycle{deps: deps}
}

// Run executes one full cycle. A mail-read failure skips adjustment
// processing but never prevents rate evaluation.
func (c *Cycle) Run(ctx context.Context) {
	execID := uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.processAdjustments(ctx, execID)
	c.evaluateRates(ctx, execID)
}

func (c *Cycle) processAdjustments(ctx context.Context, execID string) {
	log := c.deps.Log

	replies, err := c.deps.Mailbox.ReadUnread(ctx)
	if err != nil {
		log.WithError(err).Errorf("Mailbox read failed, skipping adjustments; execID: %s", execID)
		return
	}
	if len(replies) == 0 {
		return
	}

	var muts []domain.Mutation
	for _, reply := range replies {
		muts = append(muts, c.deps.Parser.Parse(reply)...)
	}

	changes, changed := c.deps.Applier.Apply(c.deps.Model, muts)
	if !changed {
		log.Infof("No setpoint adjustments applied from %d replies; execID: %s", len(replies), execID)
		return
	}
	log.Infof("%d setpoint adjustments applied; execID: %s", len(changes), execID)

	now := c.deps.Now()

	persisted := true
	if err = c.deps.Store.Save(c.deps.Snapshot); err != nil {
		persisted = false
		log.WithError(err).Error("Failed to persist configuration snapshot")
	}

	if err = c.deps.Mailer.Send(confirmationSubject(now), confirmationBody(changes)); err != nil {
		log.WithError(err).Error("Failed to send confirmation email")
	}

	// Committing without a persisted file would audit a change that is not
	// on disk, so the commit stage depends on the persist stage.
	if persisted {
		if err = c.deps.Audit.Commit(auditMessage(now, changes)); err != nil {
			log.WithError(err).Error("Failed to commit audit record")
		}
	}
}

func (c *Cycle) evaluateRates(ctx context.Context, execID string) {
	log := c.deps.Log

	markup, err := c.deps.Fetcher.FetchPage(ctx)
	if err != nil {
		log.WithError(err).Errorf("Failed to fetch exchange rates; execID: %s", execID)
		return
	}

	observations, err := c.deps.Rates.ParseRates(markup)
	if err != nil {
		log.WithError(err).Error("Failed to parse exchange rates")
		return
	}
	if len(observations) == 0 {
		log.Error("No rates found in the page content")
		return
	}
	c.lastObs = observations

	if c.deps.Recorder != nil {
		if err = c.deps.Recorder.Record(ctx, c.deps.Now(), observations); err != nil {
			log.WithError(err).Warn("Failed to record observations")
		}
	}

	for _, entry := range c.deps.Model.Entries() {
		if obs, ok := observations[entry.Name]; ok {
			log.Infof("Rate for %s: %s", entry.Name, describeObservation(obs))
		} else {
			log.Infof("No rate found for %s", entry.Name)
		}
	}

	violations := setpoint.Evaluate(c.deps.Model, observations)
	if len(violations) == 0 {
		return
	}

	notify := violations
	if c.deps.Alerts != nil {
		notify = notify[:0:0]
		for _, v := range violations {
			if c.deps.Alerts.Suppressed(v) {
				log.Infof("Suppressing repeat alert: %s", v)
				continue
			}
			notify = append(notify, v)
		}
	}
	if len(notify) == 0 {
		return
	}

	if err = c.deps.Mailer.Send(alertSubject(c.deps.Now()), alertBody(notify)); err != nil {
		log.WithError(err).Error("Failed to send alert email")
		return
	}
	log.Info("Alert email sent successfully")

	if c.deps.Alerts != nil {
		for _, v := range notify {
			c.deps.Alerts.MarkNotified(v)
		}
	}
}

// Setpoints returns a copy of the current currency entries for concurrent
// readers such as the status API.
func (c *Cycle) Setpoints() []*domain.CurrencyEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deps.Model.SnapshotEntries()
}

// LatestObservations returns the last successfully parsed observation set.
func (c *Cycle) LatestObservations() map[string]domain.Observation {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]domain.Observation, len(c.lastObs))
	for name, obs := range c.lastObs {
		rates := make(map[domain.RateType]*float64, len(obs.Rates))
		for rt, v := range obs.Rates {
			if v != nil {
				val := *v
				rates[rt] = &val
			} else {
				rates[rt] = nil
			}
		}
		out[name] = domain.Observation{Rates: rates, Time: obs.Time}
	}
	return out
}

func describeObservation(obs domain.Observation) string {
	var b strings.Builder
	for i, rt := range domain.RateTypes() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(rt))
		b.WriteByte('=')
		if v := obs.Rates[rt]; v != nil {
			b.WriteString(domain.FormatRate(*v))
		} else {
			b.WriteString("n/a")
		}
	}
	b.WriteString(", time=")
	b.WriteString(obs.Time)
	return b.String()
}
