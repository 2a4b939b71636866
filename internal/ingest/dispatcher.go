// Package ingest routes workbook sheets to record handlers and merges the
// parsed records into a model.Store.
package ingest

import (
	"strings"

	"go.uber.org/zap"

	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/sheet"
)

// Sheet type tags, read from the first cell of each sheet.
const (
	TagScript     = "script"
	TagSettings   = "settings"
	TagData       = "data"
	TagCommonStep = "commonStep"
	TagUtils      = "utils"
)

// Handler parses one sheet kind and merges the result into the store.
type Handler interface {
	Name() string
	Parse(s sheet.Sheet)
	Merge(st *model.Store)
}

// NewHandlerFunc builds a fresh handler for one sheet.
type NewHandlerFunc func(env *Env) Handler

// Env is what every handler shares during one ingest run.
type Env struct {
	Options Options
	Diags   *model.Diagnostics
	Log     *zap.Logger
}

// Options tune the handlers.
type Options struct {
	// NoResetDefault is the noReset flag given to common methods that do
	// not declare one.
	NoResetDefault bool
	// CapabilityLabels adds display label -> capability name mappings on
	// top of the built-in table.
	CapabilityLabels map[string]string
	Logger           *zap.Logger
}

type mapper struct {
	tag string
	new NewHandlerFunc
}

// Dispatcher matches sheets to handlers by their type tag.
type Dispatcher struct {
	opts    Options
	mappers []mapper
}

// NewDispatcher returns a dispatcher with the script, settings, data and
// common step handlers registered.
func NewDispatcher(opts Options) *Dispatcher {
	d := &Dispatcher{opts: opts}
	d.Register(TagScript, NewScriptHandler)
	d.Register(TagSettings, NewSettingsHandler)
	d.Register(TagData, NewAccountHandler)
	d.Register(TagCommonStep, NewCommonStepHandler)
	d.Register(TagUtils, NewCommonStepHandler)
	return d
}

// Register appends a mapper. Earlier registrations win on equal tags.
func (d *Dispatcher) Register(tag string, fn NewHandlerFunc) {
	d.mappers = append(d.mappers, mapper{tag: tag, new: fn})
}

// TypeTag returns the declared type tag of s.
func TypeTag(s sheet.Sheet) string {
	return strings.TrimSpace(s.Cell(0, 0).Text())
}

// Dispatch returns the handler for s, or false when the sheet declares no
// tag or a tag nobody registered.
func (d *Dispatcher) Dispatch(s sheet.Sheet, env *Env) (Handler, bool) {
	tag := TypeTag(s)
	if tag == "" {
		return nil, false
	}
	for _, m := range d.mappers {
		if m.tag == tag {
			return m.new(env), true
		}
	}
	return nil, false
}

// Ingest parses sheets in order and returns the merged store and every
// diagnostic raised along the way.
func (d *Dispatcher) Ingest(sheets []sheet.Sheet) (*model.Store, []model.Diagnostic) {
	log := d.opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	env := &Env{Options: d.opts, Diags: &model.Diagnostics{}, Log: log}
	store := model.NewStore()

	for _, s := range sheets {
		h, ok := d.Dispatch(s, env)
		if !ok {
			tag := TypeTag(s)
			if tag == "" {
				env.Diags.Infof(model.CodeSheetSkipped, s.Name(), 0, "no type tag")
			} else {
				env.Diags.Infof(model.CodeSheetSkipped, s.Name(), 0, "unknown type tag %q", tag)
			}
			log.Debug("sheet skipped", zap.String("sheet", s.Name()), zap.String("tag", tag))
			continue
		}
		h.Parse(s)
		h.Merge(store)
		log.Debug("sheet parsed",
			zap.String("sheet", s.Name()),
			zap.String("handler", h.Name()),
			zap.Int("records", store.Count(h.Name())))
	}

	return store, env.Diags.List()
}
