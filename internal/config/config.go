// CLASSIFICATION: COMMUNITY
// Filename: config.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package config reads the development server settings from the environment.
// Values are read once at startup; command-line flags may override them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultPort  = 3000
	DefaultIndex = "index.html"

	EnvPort    = "PORT"
	EnvBind    = "DEVSERVE_BIND"
	EnvRoot    = "DEVSERVE_ROOT"
	EnvIndex   = "DEVSERVE_INDEX"
	EnvLogFile = "DEVSERVE_LOG_FILE"
	EnvWatch   = "DEVSERVE_WATCH"
)

// Config is the immutable server configuration.
type Config struct {
	Bind    string
	Port    int
	Root    string
	Index   string
	LogFile string
	Watch   bool
}

// Load builds a Config from getenv. A nil getenv reads the process
// environment.
func Load(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Config{
		Bind:    strings.TrimSpace(getenv(EnvBind)),
		Port:    DefaultPort,
		Root:    strings.TrimSpace(getenv(EnvRoot)),
		Index:   getEnv(getenv, EnvIndex, DefaultIndex),
		LogFile: strings.TrimSpace(getenv(EnvLogFile)),
	}

	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvPort, err)
		}
		cfg.Port = port
	}
	if v := strings.TrimSpace(getenv(EnvWatch)); v != "" {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvWatch, err)
		}
		cfg.Watch = watch
	}
	return cfg.Normalize()
}

// Normalize makes Root absolute, defaulting to the working directory, and
// checks the remaining fields.
func (c Config) Normalize() (Config, error) {
	if c.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("working directory: %w", err)
		}
		c.Root = wd
	}
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return Config{}, fmt.Errorf("project root: %w", err)
	}
	c.Root = root
	if c.Port < 0 || c.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Index == "" {
		c.Index = DefaultIndex
	}
	if strings.ContainsAny(c.Index, `/\`) || c.Index == "." || c.Index == ".." {
		return Config{}, fmt.Errorf("index %q must be a plain file name", c.Index)
	}
	return c, nil
}

func getEnv(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}
