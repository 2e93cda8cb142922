package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v3"

	"sweid/internal/check"
	"sweid/internal/platform/config"
	"sweid/internal/platform/metrics"
	"sweid/pkg/personnummer"
	platformstrings "sweid/pkg/platform/strings"
)

// errRejected signals that at least one input was invalid. main maps it to
// exit status 1 without logging.
var errRejected = errors.New("one or more identifiers rejected")

type app struct {
	cfg      config.Config
	logger   *slog.Logger
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	registry *prometheus.Registry
	service  *check.Service
}

func newApp(cfg config.Config, logger *slog.Logger, in io.Reader, out, errOut io.Writer) *app {
	return &app{
		cfg:      cfg,
		logger:   logger,
		in:       in,
		out:      out,
		errOut:   errOut,
		registry: prometheus.NewRegistry(),
	}
}

func (a *app) command() *cli.Command {
	today := ""
	if !a.cfg.Today.IsZero() {
		today = a.cfg.Today.Format(time.DateOnly)
	}

	return &cli.Command{
		Name:      "sweid",
		Usage:     "Validate Swedish personnummer and organisationsnummer, list Swedish holidays",
		Version:   "1.0.0",
		Writer:    a.out,
		ErrWriter: a.errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "today",
				Value: today,
				Usage: "Pin the current date (YYYY-MM-DD) used for century inference and separators",
			},
			&cli.BoolFlag{
				Name:  "allow-coordination",
				Value: a.cfg.AllowCoordinationNumber,
				Usage: "Accept coordination numbers (samordningsnummer)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: int64(a.cfg.BatchWorkers),
				Usage: "Concurrent checks in batch mode",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Write Prometheus metrics to stderr on exit",
			},
		},
		Before: a.setup,
		After:  a.dumpMetrics,
		Commands: []*cli.Command{
			{
				Name:    "personnummer",
				Aliases: []string{"pnr"},
				Usage:   "Personal identity numbers",
				Commands: []*cli.Command{
					a.validCommand(check.KindPersonnummer),
					a.parseCommand(check.KindPersonnummer),
					{
						Name:      "format",
						Usage:     "Print identifiers in short or long form",
						ArgsUsage: "ID...",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "style",
								Aliases: []string{"s"},
								Value:   "short",
								Usage:   "Output style: 'short' (YYMMDD-SSSC) or 'long' (YYYYMMDDSSSC)",
							},
						},
						Action: func(ctx context.Context, cmd *cli.Command) error {
							style, err := personnummer.ParseStyle(cmd.String("style"))
							if err != nil {
								return err
							}
							return a.runFormat(ctx, check.KindPersonnummer, style, cmd.Args().Slice())
						},
					},
				},
			},
			{
				Name:    "orgnummer",
				Aliases: []string{"org"},
				Usage:   "Organisation numbers",
				Commands: []*cli.Command{
					a.validCommand(check.KindOrgnummer),
					a.parseCommand(check.KindOrgnummer),
					{
						Name:      "format",
						Usage:     "Print identifiers as NNNNNN-NNNN",
						ArgsUsage: "ID...",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return a.runFormat(ctx, check.KindOrgnummer, personnummer.Short, cmd.Args().Slice())
						},
					},
				},
			},
			{
				Name:      "batch",
				Usage:     "Check newline separated identifiers from stdin, one JSON result per line",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Value:   "pnr",
						Usage:   "Identifier kind: 'pnr' or 'org'",
					},
					&cli.BoolFlag{
						Name:    "unique",
						Aliases: []string{"u"},
						Usage:   "Check each distinct identifier once",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					kind, err := check.ParseKind(cmd.String("kind"))
					if err != nil {
						return err
					}
					return a.runBatch(ctx, kind, cmd.Bool("unique"))
				},
			},
			{
				Name:      "holidays",
				Usage:     "List Swedish holidays for a year",
				ArgsUsage: "[YEAR]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return a.runHolidays(cmd.Args().First())
				},
			},
			{
				Name:      "businessday",
				Usage:     "Report whether a date is a Swedish business day",
				ArgsUsage: "[YYYY-MM-DD]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return a.runBusinessDay(cmd.Args().First())
				},
			},
		},
	}
}

func (a *app) validCommand(kind check.Kind) *cli.Command {
	return &cli.Command{
		Name:      "valid",
		Usage:     "Print valid or the rejection reason for each identifier",
		ArgsUsage: "ID...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.runValid(ctx, kind, cmd.Args().Slice())
		},
	}
}

func (a *app) parseCommand(kind check.Kind) *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Print the decoded fields of each identifier as JSON",
		ArgsUsage: "ID...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.runParse(ctx, kind, cmd.Args().Slice())
		},
	}
}

// setup builds the check service from the root flags.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	clock := check.SystemClock
	if raw := cmd.String("today"); raw != "" {
		today, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return ctx, fmt.Errorf("--today must be YYYY-MM-DD: %w", err)
		}
		clock = check.FixedClock(today)
	}

	svc, err := check.New(
		check.WithClock(clock),
		check.WithLogger(a.logger),
		check.WithMetrics(metrics.New(a.cfg.MetricsNamespace, a.registry)),
		check.WithCoordinationNumbers(cmd.Bool("allow-coordination")),
		check.WithWorkers(int(cmd.Int("workers"))),
	)
	if err != nil {
		return ctx, err
	}
	a.service = svc
	return ctx, nil
}

func (a *app) dumpMetrics(_ context.Context, cmd *cli.Command) error {
	if !cmd.Bool("metrics") {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.errOut, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func (a *app) runValid(ctx context.Context, kind check.Kind, inputs []string) error {
	if len(inputs) == 0 {
		return errors.New("at least one identifier is required")
	}

	rejected := false
	for _, input := range inputs {
		result, err := a.service.Check(ctx, kind, input)
		if err != nil {
			return err
		}
		if result.Valid {
			fmt.Fprintf(a.out, "%s\tvalid\n", input)
			continue
		}
		rejected = true
		fmt.Fprintf(a.out, "%s\tinvalid\t%s\n", input, result.Reason)
	}

	if rejected {
		return errRejected
	}
	return nil
}

func (a *app) runParse(ctx context.Context, kind check.Kind, inputs []string) error {
	if len(inputs) == 0 {
		return errors.New("at least one identifier is required")
	}

	results := make([]check.Result, 0, len(inputs))
	for _, input := range inputs {
		result, err := a.service.Check(ctx, kind, input)
		if err != nil {
			return err
		}
		results = append(results, result)
	}
	return a.writeResults(results)
}

func (a *app) runFormat(ctx context.Context, kind check.Kind, style personnummer.Style, inputs []string) error {
	if len(inputs) == 0 {
		return errors.New("at least one identifier is required")
	}

	rejected := false
	for _, input := range inputs {
		out, err := a.service.Format(ctx, kind, input, style)
		if err != nil {
			rejected = true
			fmt.Fprintf(a.errOut, "%s: %v\n", input, err)
			continue
		}
		fmt.Fprintln(a.out, out)
	}

	if rejected {
		return errRejected
	}
	return nil
}

func (a *app) runBatch(ctx context.Context, kind check.Kind, unique bool) error {
	inputs, err := platformstrings.ReadLines(a.in, unique)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	results, err := a.service.CheckBatch(ctx, kind, inputs)
	if err != nil {
		return err
	}
	return a.writeResults(results)
}

// writeResults emits JSON lines and returns errRejected if any result is invalid.
func (a *app) writeResults(results []check.Result) error {
	enc := json.NewEncoder(a.out)
	rejected := false
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if !r.Valid {
			rejected = true
		}
	}
	if rejected {
		return errRejected
	}
	return nil
}

func (a *app) runHolidays(arg string) error {
	year := a.service.Today().Year()
	if arg != "" {
		y, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid year %q", arg)
		}
		year = y
	}

	for _, h := range a.service.Holidays(year) {
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", h.DateString(), h.Name, h.Kind)
	}
	return nil
}

func (a *app) runBusinessDay(arg string) error {
	date := a.service.Today()
	if arg != "" {
		d, err := time.Parse(time.DateOnly, arg)
		if err != nil {
			return fmt.Errorf("invalid date %q: must be YYYY-MM-DD", arg)
		}
		date = d
	}

	fmt.Fprintln(a.out, a.service.IsBusinessDay(date))
	return nil
}
