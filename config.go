// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Opendoor (https://www.opendoor.com/).
// Copyright 2025-present Opendoor, Inc.

package apmtrace

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/opendoor-labs/apmtrace/internal/env"
	"github.com/opendoor-labs/apmtrace/internal/expandenv"
	"github.com/opendoor-labs/apmtrace/log"
	"github.com/opendoor-labs/apmtrace/sampler"
	"github.com/opendoor-labs/apmtrace/transport"
)

// Config is the YAML file form of the writer configuration. ${VAR}
// references in the file are expanded from the environment before parsing.
//
//	agent:
//	  host: ${APM_AGENT_HOST}
//	  port: 8126
//	writer:
//	  buffer_size: 2000
//	  flush_interval: 500ms
//	  version: v0.4
//	log:
//	  level: warn
//	env: staging
type Config struct {
	Agent struct {
		Host string `yaml:"host"` // agent host, default localhost
		Port int    `yaml:"port"` // agent port, default 8126
		Addr string `yaml:"addr"` // full address; overrides host/port, supports unix:///path
	} `yaml:"agent"`
	Writer struct {
		BufferSize    int    `yaml:"buffer_size"`    // trace buffer capacity
		FlushInterval string `yaml:"flush_interval"` // e.g. "1s", "500ms"
		Version       string `yaml:"version"`        // wire version, default v0.4
	} `yaml:"writer"`
	Log struct {
		Level string `yaml:"level"` // debug, info, warn or error
	} `yaml:"log"`
	Env string `yaml:"env"` // deployment environment for rate keys
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("apmtrace: read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(expandenv.Expand(raw), cfg); err != nil {
		return nil, fmt.Errorf("apmtrace: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate collects every problem with the config rather than stopping at
// the first.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Writer.BufferSize < 0 {
		result = multierror.Append(result, fmt.Errorf("writer.buffer_size must not be negative, got %d", c.Writer.BufferSize))
	}
	if c.Writer.FlushInterval != "" {
		if d, err := cast.ToDurationE(c.Writer.FlushInterval); err != nil {
			result = multierror.Append(result, fmt.Errorf("writer.flush_interval %q: %v", c.Writer.FlushInterval, err))
		} else if d <= 0 {
			result = multierror.Append(result, fmt.Errorf("writer.flush_interval must be positive, got %v", d))
		}
	}
	if c.Writer.Version != "" {
		if _, ok := transport.GetVersion(c.Writer.Version); !ok {
			result = multierror.Append(result, fmt.Errorf("writer.version %q is not a registered wire version", c.Writer.Version))
		}
	}
	if c.Log.Level != "" {
		if _, ok := log.LevelNames[c.Log.Level]; !ok {
			result = multierror.Append(result, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
		}
	}
	if c.Agent.Port < 0 || c.Agent.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("agent.port %d out of range", c.Agent.Port))
	}
	return result.ErrorOrNil()
}

// NewWriter builds a writer from the config, applying the configured log
// level as a side effect. Additional options override the config.
func (c *Config) NewWriter(opts ...Option) (*Writer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Log.Level != "" {
		log.SetLevel(log.LevelNames[c.Log.Level])
	}

	wire := c.Writer.Version
	if wire == "" {
		wire = transport.DefaultVersion
	}
	t, err := transport.NewHTTPTransport(wire, transport.WithAgentAddr(c.agentAddr()))
	if err != nil {
		return nil, err
	}

	base := []Option{WithTransport(t)}
	if c.Writer.BufferSize > 0 {
		base = append(base, WithBufferSize(c.Writer.BufferSize))
	}
	if c.Writer.FlushInterval != "" {
		d, _ := cast.ToDurationE(c.Writer.FlushInterval) // validated above
		base = append(base, WithFlushInterval(d))
	}
	return NewWriter(append(base, opts...)...)
}

// NewPrioritySampler creates a priority sampler bound to the configured
// deployment environment (falling back to APM_ENV). Pass it to NewWriter via
// WithSampler to close the feedback loop.
func (c *Config) NewPrioritySampler() *sampler.PrioritySampler {
	environment := c.Env
	if environment == "" {
		environment = env.String(env.Environment, "")
	}
	return sampler.NewPrioritySampler(environment)
}

// agentAddr resolves the agent address from the config with environment
// fallbacks.
func (c *Config) agentAddr() string {
	if c.Agent.Addr != "" {
		return c.Agent.Addr
	}
	host := c.Agent.Host
	if host == "" {
		host = env.String(env.AgentHost, "localhost")
	}
	port := c.Agent.Port
	if port == 0 {
		port = env.Int(env.AgentPort, 8126)
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
