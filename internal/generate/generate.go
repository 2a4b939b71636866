// Package generate wires ingestion, translation and emission into one run.
package generate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chriserin/sheetgen/internal/emit"
	"github.com/chriserin/sheetgen/internal/ingest"
	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/sheet"
	"github.com/chriserin/sheetgen/internal/translate"
)

type Options struct {
	Ingest ingest.Options
	Emit   emit.Options
	Logger *zap.Logger
}

// Plan is the outcome of a run before anything touches the disk.
type Plan struct {
	Workbook    string
	Store       *model.Store
	Context     emit.Context
	Files       []emit.File
	Diagnostics []model.Diagnostic
}

// Build parses sheets and renders every class. It only fails when a
// template cannot be executed.
func Build(sheets []sheet.Sheet, opts Options) (*Plan, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ingestOpts := opts.Ingest
	ingestOpts.Logger = log

	store, diags := ingest.NewDispatcher(ingestOpts).Ingest(sheets)
	engine := translate.New(store, log)
	ctx := emit.NewContext(store.Settings, opts.Emit)
	named := ctx.AssignNames(store)

	plan := &Plan{Store: store, Context: ctx}
	plan.Diagnostics = append(plan.Diagnostics, diags...)
	plan.Diagnostics = append(plan.Diagnostics, engine.Diagnostics()...)
	plan.Diagnostics = append(plan.Diagnostics, named...)

	for _, u := range store.Utils {
		methods := make([]translate.Method, 0, len(u.Methods))
		for _, m := range u.Methods {
			tm := engine.TranslateCommonMethod(m)
			plan.Diagnostics = append(plan.Diagnostics, tm.Diagnostics...)
			methods = append(methods, tm)
		}
		content, err := ctx.RenderUtilClass(u, methods)
		if err != nil {
			return nil, err
		}
		plan.add(ctx.UtilClassPackage(u.Package), ctx.UtilClass(u), content, emit.KindUtil)
	}

	for _, f := range store.Features {
		methods := make([]translate.Method, 0, len(f.Scenarios))
		for _, s := range f.Scenarios {
			tm := engine.TranslateScenario(f, s)
			plan.Diagnostics = append(plan.Diagnostics, tm.Diagnostics...)
			methods = append(methods, tm)
		}
		content, err := ctx.RenderTestClass(f, methods)
		if err != nil {
			return nil, err
		}
		plan.add(ctx.TestPackage(f.Package), ctx.TestClassName(f), content, emit.KindTest)
	}

	log.Debug("plan built",
		zap.Int("files", len(plan.Files)),
		zap.Int("diagnostics", len(plan.Diagnostics)))
	return plan, nil
}

func (p *Plan) add(pkg, class string, content []byte, kind string) {
	p.Files = append(p.Files, emit.File{
		Path:    emit.SourcePath(pkg, class),
		Package: pkg,
		Class:   class,
		Kind:    kind,
		Content: content,
	})
}

// Write writes every planned file below dir.
func (p *Plan) Write(dir string) error {
	return emit.Write(dir, p.Files)
}

// Warnings counts the warning diagnostics.
func (p *Plan) Warnings() int {
	n := 0
	for _, d := range p.Diagnostics {
		if d.Severity == model.SeverityWarning {
			n++
		}
	}
	return n
}

// Run opens the workbook at path and builds its plan.
func Run(path string, opts Options) (*Plan, error) {
	wb, err := sheet.Open(path)
	if err != nil {
		return nil, err
	}
	plan, err := Build(wb.Sheets(), opts)
	if err != nil {
		return nil, fmt.Errorf("generating from %s: %w", path, err)
	}
	plan.Workbook = path
	return plan, nil
}
