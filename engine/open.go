// Copyright 2025 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"strings"

	"rd12/driver"
	"rd12/internal/logutil"
)

var errNoDriver = errors.New("engine: driver not found")

// Open creates a Renderer from any registered driver whose
// name contains cfg.Driver. The match is case insensitive;
// the empty string matches every driver.
// Client code imports specific driver packages for their
// registration side effect and then calls Open.
func Open(cfg Config) (*Renderer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logutil.Setup(&cfg.Log)
	name := strings.ToLower(cfg.Driver)
	err := errNoDriver
	for _, drv := range driver.Drivers() {
		if !strings.Contains(strings.ToLower(drv.Name()), name) {
			continue
		}
		var dev driver.Device
		if dev, err = drv.Open(); err != nil {
			logutil.Warnf("engine: cannot open driver '%s': %v", drv.Name(), err)
			continue
		}
		logutil.Infof("engine: using driver '%s'", drv.Name())
		return New(dev, cfg)
	}
	return nil, err
}
