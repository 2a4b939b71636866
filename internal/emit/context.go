// Package emit renders translated methods into Java test and util classes
// and writes them below an output directory.
package emit

import (
	"strings"

	"github.com/chriserin/sheetgen/internal/model"
)

const (
	DefaultBasePackage    = "com.esun.automation"
	DefaultUtilPackage    = "module"
	DefaultRuntimePackage = "generator.test"
	DefaultAppiumURL      = "http://127.0.0.1:4723/wd/hub"
	DefaultImplicitWait   = 10
)

// Options are the caller supplied defaults. Settings read from the workbook
// take precedence over AppiumURL and ImplicitWait.
type Options struct {
	BasePackage    string
	UtilPackage    string
	RuntimePackage string
	AppiumURL      string
	ImplicitWait   int
}

// Context is everything the renderer needs besides the classes themselves.
// It is built once per run from the settings and passed explicitly.
type Context struct {
	BasePackage    string
	UtilPackage    string
	RuntimePackage string
	// Device and Platform are package fragments, empty when the workbook
	// does not declare a device name or platform version.
	Device       string
	Platform     string
	AppiumURL    string
	ImplicitWait int
	Settings     *model.Settings

	names *names
}

func NewContext(settings *model.Settings, opts Options) Context {
	if settings == nil {
		settings = model.NewSettings()
	}
	ctx := Context{
		BasePackage:    orDefault(opts.BasePackage, DefaultBasePackage),
		UtilPackage:    orDefault(opts.UtilPackage, DefaultUtilPackage),
		RuntimePackage: orDefault(opts.RuntimePackage, DefaultRuntimePackage),
		Device:         DeviceFragment(settings.DeviceName),
		Platform:       PlatformFragment(settings.PlatformVersion),
		AppiumURL:      orDefault(opts.AppiumURL, DefaultAppiumURL),
		ImplicitWait:   opts.ImplicitWait,
		Settings:       settings,
	}
	if ctx.ImplicitWait <= 0 {
		ctx.ImplicitWait = DefaultImplicitWait
	}
	if url, ok := settings.AppiumURL(); ok {
		ctx.AppiumURL = url
	}
	if wait, ok := settings.ImplicitWait(); ok {
		ctx.ImplicitWait = wait
	}
	return ctx
}

// DeviceFragment lower-cases a device name and removes spaces, e.g.
// "iPhone 8 Plus" -> "iphone8plus".
func DeviceFragment(name string) string {
	return identifier(strings.ReplaceAll(strings.ToLower(name), " ", ""), false)
}

// PlatformFragment turns a cleaned platform version into "ios<major_minor>".
func PlatformFragment(version string) string {
	if version == "" {
		return ""
	}
	return "ios" + strings.ReplaceAll(version, ".", "_")
}

// TestPackage is the Java package of the test class for a feature package
// label.
func (c Context) TestPackage(label string) string {
	return joinPackage(c.BasePackage, c.Device, c.Platform, label)
}

// UtilClassPackage is the Java package of a util class.
func (c Context) UtilClassPackage(label string) string {
	return joinPackage(c.BasePackage, c.UtilPackage, label)
}

func (c Context) runtime(sub, class string) string {
	return joinPackage(c.RuntimePackage, sub) + "." + class
}

// joinPackage joins dotted fragments, dropping empty segments and turning
// each remaining segment into a valid identifier.
func joinPackage(parts ...string) string {
	var segs []string
	for _, p := range parts {
		for _, seg := range strings.Split(p, ".") {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			segs = append(segs, identifier(seg, false))
		}
	}
	return strings.Join(segs, ".")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
