// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access helpers for config store data.

package config

import (
	"encoding/json"
	"strconv"
)

// Section returns the named section or nil if missing. The empty name refers
// to the top level.
func (c Config) Section(sectionName string) Section {
	if c == nil {
		return nil
	}
	if sectionName == "" {
		return Section(c)
	}
	if raw, ok := c[sectionName]; ok {
		switch v := raw.(type) {
		case Section:
			return v
		case map[string]interface{}:
			return Section(v)
		}
	}
	return nil
}

// GetString returns the string value at section/key, or def.
func (c Config) GetString(sectionName, key, def string) string {
	section := c.Section(sectionName)
	if section == nil {
		return def
	}
	if raw, ok := section[key]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return def
}

// GetInt returns the integer value at section/key, or def. JSON numbers and
// numeric strings both qualify.
func (c Config) GetInt(sectionName, key string, def int) int {
	section := c.Section(sectionName)
	if section == nil {
		return def
	}
	switch v := section[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// GetBool returns the boolean value at section/key, or def.
func (c Config) GetBool(sectionName, key string, def bool) bool {
	section := c.Section(sectionName)
	if section == nil {
		return def
	}
	switch v := section[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
