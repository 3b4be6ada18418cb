package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sarchlab/pdptw/catalog"
	"github.com/sarchlab/pdptw/config"
	"github.com/sarchlab/pdptw/datarecording"
	"github.com/sarchlab/pdptw/generator"
	"github.com/sarchlab/pdptw/hooking"
	"github.com/sarchlab/pdptw/scenario"
)

type generateOptions struct {
	problemClass string
	instances    int
	seed         int64
	seedStep     int64
	record       string
	recordDSN    string
	metricsFile  string
}

var genOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate random scenarios and list them.",
	Long: "`generate --instances N` draws N scenarios. Instance i uses the " +
		"seed `seed + i*seed-step` and is named after it. Scenarios equal " +
		"to an earlier one are reported as duplicates.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}

		if err := setupLogging(level); err != nil {
			return err
		}

		opts := genOpts
		if opts.recordDSN == "" {
			opts.recordDSN = cfg.DatabaseURL
		}

		return runGenerate(cfg, opts, cmd.OutOrStdout())
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genOpts.problemClass, "problem-class", "uniform",
		"problem class of the generated scenarios")
	f.IntVar(&genOpts.instances, "instances", 1,
		"number of scenarios to generate")
	f.Int64Var(&genOpts.seed, "seed", 0, "seed of the first instance")
	f.Int64Var(&genOpts.seedStep, "seed-step", 1,
		"seed increment between instances")
	f.StringVar(&genOpts.record, "record", "",
		"record a manifest into <record>.sqlite3")
	f.StringVar(&genOpts.recordDSN, "record-dsn", "",
		"record a manifest into a PostgreSQL database; "+
			"defaults to database_url of the config")
	f.StringVar(&genOpts.metricsFile, "metrics-file", "",
		"write catalog counters to a Prometheus text file")
}

func runGenerate(cfg config.Config, opts generateOptions, out io.Writer) error {
	if opts.instances < 0 {
		return fmt.Errorf("invalid number of instances: %d", opts.instances)
	}

	g := generator.NewBuilder(scenario.ProblemClassID(opts.problemClass))
	if err := config.ApplyGenerator(cfg, g); err != nil {
		return err
	}

	recorder, err := openRecorder(opts)
	if err != nil {
		return err
	}

	cb := catalog.MakeBuilder()
	if recorder != nil {
		defer recorder.Close()
		cb = cb.WithRecorder(recorder)
	}

	c := cb.Build()
	c.AcceptHook(hooking.NewLogHook(log.Logger, zerolog.DebugLevel))
	defer c.Flush()

	reg := prometheus.NewRegistry()
	if opts.metricsFile != "" {
		h, err := hooking.NewMetricsHook(reg, "catalog_events_total",
			"Scenarios offered to the catalog, by outcome.")
		if err != nil {
			return err
		}

		c.AcceptHook(h)
	}

	for i := range opts.instances {
		seed := opts.seed + int64(i)*opts.seedStep

		s, err := g.Generate(
			rand.New(rand.NewSource(seed)),
			strconv.FormatInt(seed, 10),
		)
		if err != nil {
			return err
		}

		id, added := c.Add(s)

		status := "added"
		if !added {
			status = "duplicate"
		}

		fmt.Fprintf(out, "%s\t%s\t%s\n", id, status, s)
	}

	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	return nil
}

func openRecorder(opts generateOptions) (datarecording.DataRecorder, error) {
	switch {
	case opts.record != "" && opts.recordDSN != "":
		return nil, errors.New("--record and --record-dsn are exclusive")
	case opts.record != "":
		return datarecording.New(opts.record), nil
	case opts.recordDSN != "":
		return datarecording.NewPostgres(opts.recordDSN)
	default:
		return nil, nil
	}
}
