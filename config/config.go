// Package config loads scenario settings and generator parameters.
//
// Values are resolved in this order, each step overriding the previous one:
// built-in defaults, the YAML file, and PDPTW_* environment variables. A .env
// file in the working directory is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/pdptw/event"
	"github.com/sarchlab/pdptw/generator"
	"github.com/sarchlab/pdptw/scenario"
	"github.com/sarchlab/pdptw/stopcondition"
	"github.com/sarchlab/pdptw/units"
)

// ErrInvalidConfig is returned when a configuration value cannot be parsed.
var ErrInvalidConfig = errors.New("config: invalid value")

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PDPTW_"

// Config holds the settings that drive scenario generation.
type Config struct {
	LogLevel       string    `yaml:"log_level"`
	DatabaseURL    string    `yaml:"database_url"`
	DistanceUnit   string    `yaml:"distance_unit"`
	SpeedUnit      string    `yaml:"speed_unit"`
	TimeUnit       string    `yaml:"time_unit"`
	TickSize       int64     `yaml:"tick_size"`
	ScenarioLength int64     `yaml:"scenario_length"`
	StopCondition  string    `yaml:"stop_condition"`
	Generator      Generator `yaml:"generator"`
}

// Generator holds the parameters of the random scenario generator.
type Generator struct {
	Vehicles         int     `yaml:"vehicles"`
	VehicleCapacity  int     `yaml:"vehicle_capacity"`
	VehicleSpeed     float64 `yaml:"vehicle_speed"`
	Parcels          int     `yaml:"parcels"`
	ServiceDuration  int64   `yaml:"service_duration"`
	TimeWindowLength int64   `yaml:"time_window_length"`
	AreaSize         float64 `yaml:"area_size"`
}

// Default returns the configuration that matches the default scenario
// settings and the default generator parameters.
func Default() Config {
	s := scenario.DefaultSettings()

	return Config{
		LogLevel:       "info",
		DistanceUnit:   s.DistanceUnit.Symbol(),
		SpeedUnit:      s.SpeedUnit.Symbol(),
		TimeUnit:       s.TimeUnit.Symbol(),
		TickSize:       s.TickSize,
		ScenarioLength: s.TimeWindow.End,
		StopCondition:  s.StopCondition.String(),
		Generator: Generator{
			Vehicles:         generator.DefaultVehicles,
			VehicleCapacity:  generator.DefaultVehicleCapacity,
			VehicleSpeed:     generator.DefaultVehicleSpeed,
			Parcels:          generator.DefaultParcels,
			ServiceDuration:  generator.DefaultServiceDuration,
			TimeWindowLength: generator.DefaultTimeWindowLength,
			AreaSize:         generator.DefaultAreaSize,
		},
	}
}

// Load builds the configuration. An empty path skips the YAML file.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	log.Debug().Str("file", path).Msg("configuration loaded")

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.DistanceUnit, "DISTANCE_UNIT")
	setString(&cfg.SpeedUnit, "SPEED_UNIT")
	setString(&cfg.TimeUnit, "TIME_UNIT")
	setString(&cfg.StopCondition, "STOP_CONDITION")

	g := &cfg.Generator

	return errors.Join(
		setInt64(&cfg.TickSize, "TICK_SIZE"),
		setInt64(&cfg.ScenarioLength, "SCENARIO_LENGTH"),
		setInt(&g.Vehicles, "VEHICLES"),
		setInt(&g.VehicleCapacity, "VEHICLE_CAPACITY"),
		setFloat(&g.VehicleSpeed, "VEHICLE_SPEED"),
		setInt(&g.Parcels, "PARCELS"),
		setInt64(&g.ServiceDuration, "SERVICE_DURATION"),
		setInt64(&g.TimeWindowLength, "TIME_WINDOW_LENGTH"),
		setFloat(&g.AreaSize, "AREA_SIZE"),
	)
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || v == "" {
		return "", false
	}

	return v, true
}

func setString(dst *string, key string) {
	if v, ok := lookupEnv(key); ok {
		*dst = v
	}
}

func setInt64(dst *int64, key string) error {
	v, ok := lookupEnv(key)
	if !ok {
		return nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, EnvPrefix, key, v)
	}

	*dst = n

	return nil
}

func setInt(dst *int, key string) error {
	n := int64(*dst)
	if err := setInt64(&n, key); err != nil {
		return err
	}

	*dst = int(n)

	return nil
}

func setFloat(dst *float64, key string) error {
	v, ok := lookupEnv(key)
	if !ok {
		return nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, EnvPrefix, key, v)
	}

	*dst = f

	return nil
}

// Apply resolves the units and the stop condition of cfg and sets them, with
// the tick size and the scenario length, on b. Nothing is set if any value
// cannot be resolved.
func Apply[T any](cfg Config, b *scenario.AbstractBuilder[T]) error {
	distance, err := units.ParseLength(cfg.DistanceUnit)
	if err != nil {
		return fmt.Errorf("distance_unit: %w", err)
	}

	speed, err := units.ParseVelocity(cfg.SpeedUnit)
	if err != nil {
		return fmt.Errorf("speed_unit: %w", err)
	}

	timeUnit, err := units.ParseDuration(cfg.TimeUnit)
	if err != nil {
		return fmt.Errorf("time_unit: %w", err)
	}

	cond, err := stopcondition.ByName(cfg.StopCondition)
	if err != nil {
		return fmt.Errorf("stop_condition: %w", err)
	}

	b.WithDistanceUnit(distance)
	b.WithSpeedUnit(speed)
	b.WithTimeUnit(timeUnit)
	b.WithTickSize(cfg.TickSize)
	b.WithScenarioLength(cfg.ScenarioLength)
	b.WithStopCondition(cond)

	return nil
}

// ApplyGenerator applies cfg to a generator: the scenario settings through
// Apply, then the generator parameters. The depot is placed at the center of
// a square area.
func ApplyGenerator(cfg Config, g *generator.Builder) error {
	if err := Apply(cfg, &g.AbstractBuilder); err != nil {
		return err
	}

	gc := cfg.Generator
	center := gc.AreaSize / 2

	g.WithVehicles(gc.Vehicles).
		WithVehicleCapacity(gc.VehicleCapacity).
		WithVehicleSpeed(gc.VehicleSpeed).
		WithParcels(gc.Parcels).
		WithServiceDuration(gc.ServiceDuration).
		WithTimeWindowLength(gc.TimeWindowLength).
		WithArea(event.Point{}, event.Point{X: gc.AreaSize, Y: gc.AreaSize}).
		WithDepot(event.Point{X: center, Y: center})

	return nil
}
