package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ratewatch/internal/adapters"
	"ratewatch/internal/adapters/cache"
	"ratewatch/internal/adapters/httpclient"
	"ratewatch/internal/adapters/imapbox"
	"ratewatch/internal/adapters/postgres"
	"ratewatch/internal/adapters/scrape"
	"ratewatch/internal/adapters/smtp"
	"ratewatch/internal/adapters/store"
	"ratewatch/internal/api"
	"ratewatch/internal/config"
	"ratewatch/internal/monitor"
	"ratewatch/internal/setpoint"

	"github.com/sirupsen/logrus"
)

// Run wires the application components and executes either a single cycle
// (the default, for an external scheduler) or interval mode. Only a
// configuration-load failure is returned; everything later is stage-local.
func Run(configPath string) error {
	snap, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(snap.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	log := logrus.StandardLogger()

	email, err := snap.RuntimeEmail()
	if err != nil {
		return err
	}

	model, err := setpoint.NewModel(snap.Currencies)
	if err != nil {
		return err
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetchTimeout := time.Duration(snap.Monitoring.TimeoutSeconds) * time.Second
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}

	deps := monitor.Deps{
		Snapshot: snap,
		Model:    model,
		Parser:   setpoint.NewParser(log),
		Applier:  setpoint.NewApplier(log),
		Mailbox:  imapbox.NewMailbox(email, log),
		Mailer:   smtp.NewMailer(email),
		Fetcher:  httpclient.NewRatePageClient(&http.Client{Timeout: fetchTimeout}, snap.Monitoring.URL),
		Rates:    scrape.NewTableParser(),
		Store:    store.NewFileStore(configPath),
		Audit:    store.NewGitAuditLog(configPath, snap.Audit),
		Log:      log,
	}

	// Observation history is optional plumbing: failing to reach the
	// database degrades to running without the recorder.
	if snap.Database.URL != "" {
		deps.Recorder = buildRecorder(ctx, snap.Database.URL, log)
	}

	interval := time.Duration(snap.Monitoring.IntervalSeconds) * time.Second
	if interval <= 0 {
		cycle := monitor.NewCycle(deps)
		cycle.Run(ctx)
		return nil
	}

	if ttl := time.Duration(snap.Monitoring.SuppressTTLSeconds) * time.Second; ttl > 0 {
		alertCache, cacheErr := cache.NewAlertCache(1024, ttl)
		if cacheErr != nil {
			log.WithError(cacheErr).Error("Failed to create alert cache, repeat alerts will not be suppressed")
		} else {
			deps.Alerts = alertCache
			defer alertCache.Close()
		}
	}

	cycle := monitor.NewCycle(deps)
	scheduler := monitor.NewScheduler(cycle, interval)
	if startErr := scheduler.Start(ctx); startErr != nil {
		return startErr
	}
	defer func() {
		if sdErr := scheduler.Shutdown(); sdErr != nil {
			log.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	log.Infof("Running every %s", interval)

	if snap.Status.Port != "" {
		return api.Start(ctx, snap.Status.Port, api.NewRouter(cycle))
	}

	<-ctx.Done()
	return nil
}

func buildRecorder(ctx context.Context, url string, log logrus.FieldLogger) adapters.ObservationRecorder {
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := postgres.Migrate(startupCtx, url); err != nil {
		log.WithError(err).Error("Observation history migration failed, recording disabled")
		return nil
	}
	pool, err := postgres.CreatePoolAndPing(startupCtx, url)
	if err != nil {
		log.WithError(err).Error("Observation history connection failed, recording disabled")
		return nil
	}
	// The pool lives for the process; one-shot runs exit right after the
	// cycle and interval runs hold it until shutdown.
	return postgres.NewObservationRepository(pool)
}
