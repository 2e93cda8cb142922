// Package check is the application layer over the pure validators in pkg/.
// It owns the wall clock, logging, metrics and tracing, and fans batches out
// over a bounded worker pool.
package check

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"sweid/pkg/helgdagar"
	"sweid/pkg/orgnummer"
	"sweid/pkg/personnummer"
)

const outcomeValid = "valid"

var tracer = otel.Tracer("sweid/internal/check")

// Clock supplies "today". It is the only source of wall time for the
// validators.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Recorder receives check outcomes. *metrics.Metrics satisfies it.
type Recorder interface {
	RecordCheck(kind, outcome string)
	RecordBatch(seconds float64)
}

type noopRecorder struct{}

func (noopRecorder) RecordCheck(string, string) {}
func (noopRecorder) RecordBatch(float64)        {}

// Service validates and formats identifiers against an injected clock.
type Service struct {
	clock             Clock
	logger            *slog.Logger
	recorder          Recorder
	allowCoordination bool
	workers           int
}

type Option func(*Service)

func WithClock(clock Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(recorder Recorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

// WithCoordinationNumbers sets whether personnummer checks accept
// samordningsnummer. Default true.
func WithCoordinationNumbers(allow bool) Option {
	return func(s *Service) {
		s.allowCoordination = allow
	}
}

// WithWorkers bounds concurrent checks in CheckBatch. Default 4.
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.workers = n
	}
}

func New(opts ...Option) (*Service, error) {
	svc := &Service{
		clock:             SystemClock,
		logger:            slog.Default(),
		recorder:          noopRecorder{},
		allowCoordination: true,
		workers:           4,
	}

	for _, opt := range opts {
		opt(svc)
	}

	if svc.clock == nil {
		return nil, fmt.Errorf("clock is required")
	}
	if svc.logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if svc.recorder == nil {
		return nil, fmt.Errorf("metrics recorder is required")
	}
	if svc.workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", svc.workers)
	}

	return svc, nil
}

// Today returns the service clock's current date.
func (s *Service) Today() time.Time {
	return s.clock.Now()
}

// Check validates a single identifier. The error is non-nil only for an
// unknown kind; rejected identifiers are reported in the Result.
func (s *Service) Check(ctx context.Context, kind Kind, input string) (Result, error) {
	if err := kind.validate(); err != nil {
		return Result{}, err
	}

	_, span := tracer.Start(ctx, "check.Check", trace.WithAttributes(attribute.String("kind", string(kind))))
	defer span.End()

	result := s.check(kind, input, s.clock.Now())
	span.SetAttributes(attribute.Bool("valid", result.Valid))
	return result, nil
}

// CheckBatch validates inputs concurrently. Results keep the input order and
// share one "today" read at the start of the run.
func (s *Service) CheckBatch(ctx context.Context, kind Kind, inputs []string) ([]Result, error) {
	if err := kind.validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "check.CheckBatch", trace.WithAttributes(
		attribute.String("kind", string(kind)),
		attribute.String("run_id", runID),
		attribute.Int("batch.size", len(inputs)),
	))
	defer span.End()

	started := time.Now()
	today := s.clock.Now()
	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.check(kind, input, today)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch aborted")
		s.logger.WarnContext(ctx, "batch aborted",
			slog.String("run_id", runID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("batch %s: %w", runID, err)
	}

	invalid := 0
	for _, r := range results {
		if !r.Valid {
			invalid++
		}
	}

	elapsed := time.Since(started)
	s.recorder.RecordBatch(elapsed.Seconds())
	s.logger.InfoContext(ctx, "batch checked",
		slog.String("run_id", runID),
		slog.String("kind", string(kind)),
		slog.Int("total", len(results)),
		slog.Int("invalid", invalid),
		slog.Duration("elapsed", elapsed),
	)

	return results, nil
}

// Format serializes a valid identifier. style applies to personnummer only;
// organisation numbers always format as NNNNNN-NNNN.
func (s *Service) Format(ctx context.Context, kind Kind, input string, style personnummer.Style) (string, error) {
	if err := kind.validate(); err != nil {
		return "", err
	}

	_, span := tracer.Start(ctx, "check.Format", trace.WithAttributes(attribute.String("kind", string(kind))))
	defer span.End()

	var (
		out string
		err error
	)
	switch kind {
	case KindPersonnummer:
		out, err = personnummer.Format(input, s.clock.Now(), style, s.personnummerOptions()...)
	case KindOrgnummer:
		out, err = orgnummer.Format(input)
	}

	if err != nil {
		span.SetStatus(codes.Error, "invalid identifier")
		s.logger.DebugContext(ctx, "format rejected",
			slog.String("kind", string(kind)),
			slog.String("reason", reasonOf(kind, err)),
		)
		return "", err
	}
	return out, nil
}

// Holidays returns the Swedish holidays of year.
func (s *Service) Holidays(year int) []helgdagar.Holiday {
	return helgdagar.Year(year)
}

// IsBusinessDay reports whether date is a Swedish business day.
func (s *Service) IsBusinessDay(date time.Time) bool {
	return helgdagar.IsBusinessDay(date)
}

func (s *Service) check(kind Kind, input string, today time.Time) Result {
	var result Result
	switch kind {
	case KindPersonnummer:
		result = s.checkPersonnummer(input, today)
	case KindOrgnummer:
		result = s.checkOrgnummer(input)
	}

	outcome := outcomeValid
	if !result.Valid {
		outcome = result.Reason
	}
	s.recorder.RecordCheck(string(kind), outcome)
	return result
}

func (s *Service) checkPersonnummer(input string, today time.Time) Result {
	result := Result{Input: input, Kind: KindPersonnummer}

	p, err := personnummer.Parse(input, today, s.personnummerOptions()...)
	if err != nil {
		result.Reason = reasonOf(KindPersonnummer, err)
		// Raw personnummer never reach the logs.
		s.logger.Debug("personnummer rejected", slog.String("reason", result.Reason))
		return result
	}

	result.Valid = true
	result.Normalized = p.Long()
	result.Personnummer = &PersonDetails{
		Year:               p.Year(),
		Month:              p.Month(),
		Day:                p.Day(),
		SequenceNumber:     p.SequenceNumber(),
		CheckDigit:         p.CheckDigit(),
		Gender:             p.Gender().String(),
		CoordinationNumber: p.IsCoordinationNumber(),
		Short:              p.Short(today),
		Age:                p.AgeAt(today),
	}
	s.logger.Debug("personnummer accepted", slog.String("personnummer", p.Masked()))
	return result
}

func (s *Service) checkOrgnummer(input string) Result {
	result := Result{Input: input, Kind: KindOrgnummer}

	o, err := orgnummer.Parse(input)
	if err != nil {
		result.Reason = reasonOf(KindOrgnummer, err)
		s.logger.Debug("orgnummer rejected", slog.String("reason", result.Reason))
		return result
	}

	result.Valid = true
	result.Normalized = o.String()
	result.Orgnummer = &OrgDetails{
		GroupDigit: o.GroupDigit(),
		Type:       string(o.Type()),
		CheckDigit: o.CheckDigit(),
	}
	s.logger.Debug("orgnummer accepted", slog.String("orgnummer", o.String()))
	return result
}

func (s *Service) personnummerOptions() []personnummer.Option {
	return []personnummer.Option{personnummer.WithCoordinationNumbers(s.allowCoordination)}
}

func reasonOf(kind Kind, err error) string {
	switch kind {
	case KindPersonnummer:
		if r, ok := personnummer.ReasonOf(err); ok {
			return r.String()
		}
	case KindOrgnummer:
		if r, ok := orgnummer.ReasonOf(err); ok {
			return r.String()
		}
	}
	return "unknown"
}
