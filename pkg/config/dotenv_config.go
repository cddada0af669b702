package config

import (
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/subosito/gotenv"
)

// DotenvConfig reads settings from the process environment after loading a .env file into it.
type DotenvConfig struct {
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{DotenvPath: path}
}

// MustLoadFromDotenv loads path (or DefaultDotenvPath when empty) and exits if it cannot be read.
func MustLoadFromDotenv(path string) *DotenvConfig {
	if path == "" {
		path = DefaultDotenvPath
	}

	c := NewDotenvConfig(path)
	if err := c.Load(); err != nil {
		log.Fatalf("Unable to load config: %s", err)
	}

	return c
}

func (c *DotenvConfig) LoadFromPath(path string) error {
	c.DotenvPath = path
	return c.Load()
}

func (c *DotenvConfig) Load() error {
	path, err := homedir.Expand(c.DotenvPath)
	if err != nil {
		return errors.Wrapf(err, "invalid dotenv path %s", c.DotenvPath)
	}

	if err := gotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed loading dotenv file %s", path)
	}

	return nil
}

func (c *DotenvConfig) GetKey(key string) string {
	return os.Getenv(key)
}

func (c *DotenvConfig) MustGetKey(key string) string {
	return mustHaveKey(key, c.GetKey(key))
}

func (c *DotenvConfig) GetKeyWithDefault(key, defaultValue string) string {
	return withDefault(c.GetKey(key), defaultValue)
}

func (c *DotenvConfig) GetIntKey(key string) int {
	return c.GetIntKeyWithDefault(key, 0)
}

func (c *DotenvConfig) MustGetIntKey(key string) int {
	return mustBeInt(key, c.GetKey(key))
}

func (c *DotenvConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}

func mustHaveKey(key, val string) string {
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func mustBeInt(key, val string) int {
	intVal, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("Required config key either doesn't exist or isn't an int: '%s': %s", key, err)
	}

	return intVal
}

func withDefault(val, defaultValue string) string {
	if val == "" {
		return defaultValue
	}

	return val
}
