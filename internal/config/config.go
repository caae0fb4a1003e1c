// Package config holds the headstash service settings.
package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

const (
	defaultAddress       = "127.0.0.1:3200"
	defaultCapacity      = 4 * 1024
	defaultStoreFile     = "db/headstash.data"
	defaultStoreInterval = time.Second * 5
)

type Config struct {
	Address       string
	Token         string // empty - no authorization required
	Capacity      int    // bytes per header set
	StoreFile     string
	StoreInterval time.Duration // 0 - disable save data
	Restore       bool
	Debug         bool
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		Address:       defaultAddress,
		Capacity:      defaultCapacity,
		StoreFile:     defaultStoreFile,
		StoreInterval: defaultStoreInterval,
		Restore:       true,
	}
}

// FillDefaults sets zero-value fields to their default values.
// StoreInterval, Restore, Token and Debug keep their zero values.
func (c *Config) FillDefaults() {
	def := DefaultConfig()
	if c.Address == "" {
		c.Address = def.Address
	}
	if c.Capacity == 0 {
		c.Capacity = def.Capacity
	}
	if c.StoreFile == "" {
		c.StoreFile = def.StoreFile
	}
}

// NewConfig parses args (usually os.Args[1:]). Every flag defaults to the
// environment variable of the same name, then to DefaultConfig.
func NewConfig(args []string) (*Config, error) {
	def := DefaultConfig()
	fs := flag.NewFlagSet("headstash", flag.ContinueOnError)

	a := fs.String("ADDRESS", envString("ADDRESS", def.Address), "gRPC listen address")
	t := fs.String("TOKEN", envString("TOKEN", def.Token), "bearer token required from clients")
	c := fs.Int("CAPACITY", envInt("CAPACITY", def.Capacity), "header buffer capacity in bytes")
	f := fs.String("STORE_FILE", envString("STORE_FILE", def.StoreFile), "store file")
	i := fs.Duration("STORE_INTERVAL", envDuration("STORE_INTERVAL", def.StoreInterval), "store interval")
	r := fs.Bool("RESTORE", envBool("RESTORE", def.Restore), "restore DB from disk on startup")
	d := fs.Bool("DEBUG", envBool("DEBUG", def.Debug), "development logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &Config{
		Address:       *a,
		Token:         *t,
		Capacity:      *c,
		StoreFile:     *f,
		StoreInterval: *i,
		Restore:       *r,
		Debug:         *d,
	}, nil
}

func envString(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(name)); err == nil {
		return v
	}
	return def
}

func envDuration(name string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(name)); err == nil {
		return v
	}
	return def
}

func envBool(name string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return v
	}
	return def
}
