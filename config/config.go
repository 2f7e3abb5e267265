// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config loads the runtime settings of an actor system from defaults,
// a YAML document and MINAKT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tochemey/minakt/actor"
	"github.com/tochemey/minakt/log"
)

// EnvPrefix prefixes every environment variable read by FromEnv
const EnvPrefix = "MINAKT_"

const (
	envLogLevel        = EnvPrefix + "LOG_LEVEL"
	envWorkers         = EnvPrefix + "WORKERS"
	envThroughput      = EnvPrefix + "THROUGHPUT"
	envCallTimeout     = EnvPrefix + "CALL_TIMEOUT"
	envShutdownTimeout = EnvPrefix + "SHUTDOWN_TIMEOUT"
	envInitMaxRetries  = EnvPrefix + "INIT_MAX_RETRIES"
)

var (
	ErrInvalidWorkers         = errors.New("workers must be greater than zero")
	ErrInvalidThroughput      = errors.New("throughput must be greater than zero")
	ErrInvalidCallTimeout     = errors.New("call timeout must be greater than zero")
	ErrInvalidShutdownTimeout = errors.New("shutdown timeout must be greater than zero")
	ErrInvalidInitMaxRetries  = errors.New("init max retries must be greater than zero")
)

// Config represents the actor system configuration
type Config struct {
	// Specifies the minimum level of the log entries: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	// Specifies the number of goroutines running actors.
	// The default value is the number of CPUs
	Workers int `yaml:"workers"`
	// Specifies how many messages an actor processes before yielding its worker.
	// The default value is 64
	Throughput int `yaml:"throughput"`
	// Specifies how long Call waits for a reply. The default value is 1s
	CallTimeout time.Duration `yaml:"call_timeout"`
	// Specifies how long the actor system waits for actors to drain on stop.
	// The default value is 1m
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Specifies the maximum of retries to attempt when the actor
	// initialization fails. The default value is 5
	InitMaxRetries int `yaml:"init_max_retries"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		LogLevel:        log.InfoLevel.String(),
		Workers:         actor.DefaultWorkers,
		Throughput:      actor.DefaultThroughput,
		CallTimeout:     actor.DefaultCallTimeout,
		ShutdownTimeout: actor.DefaultShutdownTimeout,
		InitMaxRetries:  actor.DefaultInitMaxRetries,
	}
}

// New creates an instance of Config from the defaults and the given options
func New(options ...Option) *Config {
	config := Default()
	for _, opt := range options {
		opt.Apply(config)
	}
	return config
}

// Load reads a YAML document on top of the defaults and validates the result.
// Keys missing from the document keep their default value.
func Load(reader io.Reader) (*Config, error) {
	config := Default()
	if err := yaml.NewDecoder(reader).Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// LoadFile reads the YAML configuration file at path
func LoadFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file %s: %w", path, err)
	}
	defer file.Close()
	return Load(file)
}

// FromEnv overrides the configuration with the MINAKT_* environment variables
// that are set, then validates it.
func (c *Config) FromEnv() error {
	if value, ok := os.LookupEnv(envLogLevel); ok {
		c.LogLevel = value
	}

	for name, target := range map[string]*int{
		envWorkers:        &c.Workers,
		envThroughput:     &c.Throughput,
		envInitMaxRetries: &c.InitMaxRetries,
	} {
		value, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*target = parsed
	}

	for name, target := range map[string]*time.Duration{
		envCallTimeout:     &c.CallTimeout,
		envShutdownTimeout: &c.ShutdownTimeout,
	} {
		value, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*target = parsed
	}

	return c.Validate()
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch {
	case c.Workers <= 0:
		return ErrInvalidWorkers
	case c.Throughput <= 0:
		return ErrInvalidThroughput
	case c.CallTimeout <= 0:
		return ErrInvalidCallTimeout
	case c.ShutdownTimeout <= 0:
		return ErrInvalidShutdownTimeout
	case c.InitMaxRetries <= 0:
		return ErrInvalidInitMaxRetries
	}
	return nil
}

// Logger builds a zap logger at the configured level
func (c *Config) Logger(encoding log.Encoding, writers ...io.Writer) (log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	if encoding == log.ConsoleEncoding {
		return log.NewConsoleZap(level, writers...), nil
	}
	return log.NewZap(level, writers...), nil
}

// Options converts the configuration into actor system options.
// The logger renders with encoding into writers, stderr when none is given.
func (c *Config) Options(encoding log.Encoding, writers ...io.Writer) ([]actor.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := c.Logger(encoding, writers...)
	if err != nil {
		return nil, err
	}

	return []actor.Option{
		actor.WithLogger(logger),
		actor.WithWorkers(c.Workers),
		actor.WithThroughput(c.Throughput),
		actor.WithCallTimeout(c.CallTimeout),
		actor.WithShutdownTimeout(c.ShutdownTimeout),
		actor.WithActorInitMaxRetries(c.InitMaxRetries),
	}, nil
}
