// Package naming resolves output filename templates against build variables.
package naming

import (
	"strings"

	"github.com/assetforge/assetctl/internal/platform"
)

// Template variables:
//
//	[bundle_name]          bundle name with `.` replaced by `_`
//	[original_bundle_name] bundle name as configured
//	[platform], [target]   short platform code (windows->win, mac->mac, linux->linux)
//
// For targetless builds the platform variables are stripped (together with a
// leading underscore) instead of substituted, so one template serves both
// shapes.
const (
	varBundleName         = "[bundle_name]"
	varOriginalBundleName = "[original_bundle_name]"
	varPlatform           = "[platform]"
	varTarget             = "[target]"
)

// DefaultTemplate returns the template used when a bundle does not configure
// one.
func DefaultTemplate(targetless bool) string {
	if targetless {
		return "resource_[bundle_name]"
	}
	return "resource_[bundle_name]_[platform]"
}

// Resolve expands template for the given bundle and target. An empty template
// selects the default. target is ignored when targetless is true.
func Resolve(template, bundle, target string, targetless bool) string {
	if template == "" {
		template = DefaultTemplate(targetless)
	}

	out := strings.ReplaceAll(template, varBundleName, strings.ReplaceAll(bundle, ".", "_"))
	out = strings.ReplaceAll(out, varOriginalBundleName, bundle)

	if targetless {
		// Strip the underscore-prefixed forms first so `foo_[platform]`
		// degrades to `foo`, not `foo_`.
		for _, v := range []string{"_" + varPlatform, "_" + varTarget, varPlatform, varTarget} {
			out = strings.ReplaceAll(out, v, "")
		}
		return out
	}

	code := platform.Short(target)
	out = strings.ReplaceAll(out, varPlatform, code)
	out = strings.ReplaceAll(out, varTarget, code)
	return out
}
