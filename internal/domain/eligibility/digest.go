package eligibility

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Digest periodically runs the report and logs a one-line summary.
type Digest struct {
	svc     *Service
	logger  zerolog.Logger
	timeout time.Duration
	cron    *cron.Cron
}

func NewDigest(svc *Service, logger zerolog.Logger) *Digest {
	return &Digest{
		svc:     svc,
		logger:  logger.With().Str("component", "eligibility_digest").Logger(),
		timeout: 2 * time.Minute,
		cron:    cron.New(),
	}
}

// Start schedules the digest on a standard five-field cron expression.
func (d *Digest) Start(spec string) error {
	if _, err := d.cron.AddFunc(spec, func() { d.Run(context.Background()) }); err != nil {
		return err
	}
	d.cron.Start()
	d.logger.Info().Str("schedule", spec).Msg("eligibility digest scheduled")
	return nil
}

// Stop halts scheduling and waits for a running digest to finish or ctx to expire.
func (d *Digest) Stop(ctx context.Context) {
	select {
	case <-d.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Run produces one digest immediately.
func (d *Digest) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	rep, err := d.svc.Report(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("eligibility digest failed")
		return
	}

	counts := rep.ReasonCounts()
	evt := d.logger.Info().
		Int("total", rep.Total).
		Int("eligible", rep.EligibleCount).
		Int("available_doctors", rep.AvailableDoctors).
		Dur("took", time.Since(start))
	reasons := zerolog.Dict()
	for _, r := range AllReasons {
		reasons = reasons.Int(r, counts[r])
	}
	evt.Dict("reasons", reasons).Msg("eligibility digest")

	for _, r := range rep.Results {
		if !r.Eligible {
			d.logger.Debug().
				Str("patient_id", r.PatientID.String()).
				Strs("reasons", r.Reasons).
				Msg("patient not eligible")
		}
	}
}
