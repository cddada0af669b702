package config

import (
	"fmt"
	"strconv"
	"sync"
)

// MapConfig is an in-memory Configer, mostly used by tests.
type MapConfig struct {
	configValues sync.Map
}

func NewMapConfig(entries map[string]string) *MapConfig {
	c := &MapConfig{}

	for key, entry := range entries {
		c.configValues.Store(key, entry)
	}

	return c
}

// Set adds or replaces a single key.
func (c *MapConfig) Set(key, value string) {
	c.configValues.Store(key, value)
}

func (c *MapConfig) LoadFromPath(_ string) error {
	return fmt.Errorf("LoadFromPath not supported for MapConfig")
}

func (c *MapConfig) Load() error {
	return nil
}

func (c *MapConfig) GetKey(key string) string {
	v, ok := c.configValues.Load(key)
	if !ok || v == nil {
		return ""
	}

	return v.(string)
}

func (c *MapConfig) MustGetKey(key string) string {
	return mustHaveKey(key, c.GetKey(key))
}

func (c *MapConfig) GetKeyWithDefault(key, defaultValue string) string {
	return withDefault(c.GetKey(key), defaultValue)
}

func (c *MapConfig) GetIntKey(key string) int {
	return c.GetIntKeyWithDefault(key, 0)
}

func (c *MapConfig) MustGetIntKey(key string) int {
	return mustBeInt(key, c.GetKey(key))
}

func (c *MapConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}
