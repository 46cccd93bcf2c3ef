// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the texelwl configuration file.

package config

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"display": "texelwl-0",
	})
	cfg.RegisterDefaults("render", Section{
		"fps":       30,
		"transform": "normal",
	})
	cfg.RegisterDefaults("capture", Section{
		"enabled": false,
		"path":    "",
	})
}

// RegisterDefaults fills in missing keys of a section without overwriting
// values the user set.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil {
		return
	}
	if sectionName == "" {
		for key, value := range defaults {
			if _, ok := c[key]; !ok {
				c[key] = value
			}
		}
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section, len(defaults))
		c[sectionName] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}
