package ingest

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/sheet"
)

var nonVersionChars = regexp.MustCompile(`[^.0-9]`)

// NormalizeVersion strips everything but digits and dots, so "iOS 11.2"
// becomes "11.2".
func NormalizeVersion(v string) string {
	return nonVersionChars.ReplaceAllString(v, "")
}

// SettingsHandler reads desired capabilities and driver properties.
// Row 0 holds the type tag; every later row is label (col 0) / value (col 1).
type SettingsHandler struct {
	env      *Env
	settings *model.Settings
}

func NewSettingsHandler(env *Env) Handler {
	return &SettingsHandler{env: env, settings: model.NewSettings()}
}

func (h *SettingsHandler) Name() string { return model.KindSettings }

func (h *SettingsHandler) Parse(s sheet.Sheet) {
	for r := 1; r < s.NumRows(); r++ {
		label := text(s, r, 0)
		if label == "" {
			continue
		}

		if key, ok := CapabilityName(label, h.env.Options.CapabilityLabels); ok {
			h.capability(s, r, key)
			continue
		}

		switch {
		case slices.Contains(implicitWaitLabels, label):
			h.implicitWait(s, r)
		case slices.Contains(appiumURLLabels, label):
			if url := text(s, r, 1); url != "" {
				h.settings.DriverProperties[model.AppiumURLProperty] = url
			}
		default:
			h.env.Diags.Infof(model.CodeRowSkipped, s.Name(), r+1, "unknown setting %q", label)
		}
	}
}

func (h *SettingsHandler) capability(s sheet.Sheet, r int, key string) {
	cell := s.Cell(r, 1)

	var value any
	switch cell.Kind {
	case sheet.Bool:
		value = cell.Bool
	case sheet.Number:
		value = cell.Num
	case sheet.String:
		if strings.TrimSpace(cell.Str) != "" {
			value = strings.TrimSpace(cell.Str)
		}
	}
	if value == nil {
		h.env.Diags.Infof(model.CodeRowSkipped, s.Name(), r+1, "capability %s has no value", key)
		return
	}

	switch key {
	case CapabilityPlatformVersion:
		version := NormalizeVersion(cell.Text())
		if version == "" {
			h.env.Diags.Warnf(model.CodeValueDropped, s.Name(), r+1, "platform version %q has no digits", cell.Text())
			return
		}
		value = version
		h.settings.PlatformVersion = version
	case CapabilityDeviceName:
		h.settings.DeviceName = cell.Text()
	}

	h.settings.Capabilities[key] = value
	h.env.Log.Debug("capability", zap.String("key", key), zap.Any("value", value))
}

func (h *SettingsHandler) implicitWait(s sheet.Sheet, r int) {
	cell := s.Cell(r, 1)
	switch cell.Kind {
	case sheet.Number:
		h.settings.DriverProperties[model.ImplicitlyWaitProperty] = int(cell.Num)
	case sheet.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(cell.Str), 64)
		if err != nil {
			h.env.Diags.Warnf(model.CodeValueDropped, s.Name(), r+1, "implicit wait %q is not a number", cell.Str)
			return
		}
		h.settings.DriverProperties[model.ImplicitlyWaitProperty] = int(n)
	case sheet.Absent:
		h.env.Diags.Infof(model.CodeRowSkipped, s.Name(), r+1, "implicit wait has no value")
	default:
		h.env.Diags.Warnf(model.CodeValueDropped, s.Name(), r+1, "implicit wait must be a number, got %s", cell.Kind)
	}
}

func (h *SettingsHandler) Merge(st *model.Store) {
	st.Settings.Merge(h.settings)
}
