package platform

import (
	"context"
	"fmt"
	"slices"

	"github.com/assetforge/assetctl/internal/logging"
)

// Recognized build targets. Target values in configuration files must come
// from this set.
const (
	Windows = "windows"
	Mac     = "mac"
	Linux   = "linux"
)

var recognized = []string{Windows, Mac, Linux}

func Recognized() []string {
	return slices.Clone(recognized)
}

func Known(target string) bool {
	return slices.Contains(recognized, target)
}

// Short returns the short platform code used in output names. Unrecognized
// values pass through unchanged.
func Short(target string) string {
	switch target {
	case Windows:
		return "win"
	case Mac:
		return "mac"
	case Linux:
		return "linux"
	}
	return target
}

// Switcher performs the actual (expensive) platform reconfiguration, usually
// by driving the external content-build tool.
type Switcher func(ctx context.Context, target string) error

// Context tracks the process-wide active build platform. The content tool's
// platform state is global and mutually exclusive, so there is exactly one
// Context per run and all per-target build steps go through it.
type Context struct {
	current  string
	switcher Switcher
	log      *logging.Logger
}

// NewContext returns a Context whose active platform is initial. switcher may
// be nil, in which case switches only update the recorded state.
func NewContext(initial string, switcher Switcher, log *logging.Logger) *Context {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Context{current: initial, switcher: switcher, log: log}
}

// Current returns the active platform.
func (c *Context) Current() string {
	return c.current
}

// Switch changes the active platform to target. The switch is skipped when
// the context already matches, since reconfiguration is expensive.
func (c *Context) Switch(ctx context.Context, target string) error {
	if target == c.current {
		c.log.Debugf("platform context already %q, skipping switch", target)
		return nil
	}
	if c.switcher != nil {
		if err := c.switcher(ctx, target); err != nil {
			return fmt.Errorf("switch platform context to %q: %w", target, err)
		}
	}
	c.log.Infof("switched platform context %q -> %q", c.current, target)
	c.current = target
	return nil
}
