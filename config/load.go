package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrUnknownKey = errors.New("unknown key")
	ErrBadLine    = errors.New("expected key = value")
	ErrBadValue   = errors.New("bad value")
)

const (
	globalSection = "[global]"
	vhostsSection = "[[vhosts]]"
)

// Load reads the config at the path. Files ending in .json are decoded as JSON, anything else
// is treated as the ini-like dialect (see Parse). The result is validated.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	var cfg *Config
	if strings.EqualFold(filepath.Ext(path), ".json") {
		cfg, err = ParseJSON(file)
	} else {
		cfg, err = Parse(file)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// ParseJSON decodes the config on top of the defaults, so absent fields keep default values.
func ParseJSON(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse reads the ini-like dialect:
//
//	[global]
//	pid_file = /tmp/httpd.pid
//	log = true
//
//	[[vhosts]]
//	server_name = localhost
//	ip = 127.0.0.1
//	port = 8080
//	root_dir = /srv/www
//
// A section lasts until the first empty line. Every [[vhosts]] section appends a new vhost.
// Lines outside any section are ignored, unknown keys inside one are an error.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)

	var (
		lineno  int
		section func(key, value string) error
	)

	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case len(strings.TrimSpace(line)) == 0:
			section = nil
			continue
		case section == nil:
			switch line {
			case globalSection:
				section = cfg.setGlobal
			case vhostsSection:
				cfg.VHosts = append(cfg.VHosts, VHost{})
				vhost := &cfg.VHosts[len(cfg.VHosts)-1]
				section = vhost.set
			}

			continue
		case strings.HasPrefix(strings.TrimSpace(line), "#"):
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("line %d: %w", lineno, ErrBadLine)
		}

		if err := section(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
	}

	return cfg, scanner.Err()
}

func (c *Config) setGlobal(key, value string) (err error) {
	switch key {
	case "pid_file":
		c.Global.PIDFile = value
	case "log_file":
		c.Global.LogFile = value
	case "log":
		c.Global.Log = parseBool(value)
	case "dispatch":
		c.HTTP.Dispatch = Dispatch(value)
	case "strict":
		c.HTTP.Strict = parseBool(value)
	case "confine":
		c.HTTP.Confine = parseBool(value)
	case "sequential":
		c.NET.Sequential = parseBool(value)
	case "max_request_size":
		c.NET.MaxRequestSize, err = strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s = %q", ErrBadValue, key, value)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	return nil
}

func (v *VHost) set(key, value string) error {
	switch key {
	case "server_name":
		v.ServerName = value
	case "ip":
		v.IP = value
	case "port":
		v.Port = value
	case "root_dir":
		v.RootDir = value
	case "default_file":
		v.DefaultFile = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	return nil
}

// parseBool treats everything except the literal false as true.
func parseBool(value string) bool {
	return value != "false"
}

// Dump writes the config as indented JSON.
func (c *Config) Dump(w io.Writer) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(append(data, '\n'))
	return err
}
