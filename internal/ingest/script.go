package ingest

import (
	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/sheet"
)

// Row markers shared by the script and common step layouts.
const (
	markerMethodName    = "MethodName"
	markerMethodComment = "MethodComment"
	markerStep          = "Step"
	markerNoReset       = "noReset"
)

// headerRows is the number of rows (type tag, class name, description,
// package) before data rows start in script and common step sheets.
const headerRows = 4

// ScriptHandler reads one Feature per sheet.
//
//	row 1..3, col 1   class name, description, package label
//	MethodName | name                     opens a scenario
//	MethodComment | description           describes the open scenario
//	Given|When|Then|And | desc | command | params...
type ScriptHandler struct {
	env     *Env
	feature *model.Feature
}

func NewScriptHandler(env *Env) Handler {
	return &ScriptHandler{env: env}
}

func (h *ScriptHandler) Name() string { return model.KindScript }

func (h *ScriptHandler) Parse(s sheet.Sheet) {
	h.feature = &model.Feature{
		Name:        headerField(s, 1),
		Description: headerField(s, 2),
		Package:     headerField(s, 3),
		Sheet:       s.Name(),
	}
	if h.feature.Name == "" {
		h.env.Diags.Warnf(model.CodeMissingParam, s.Name(), 2, "feature has no class name")
	}

	var current *model.Scenario
	for r := headerRows; r < s.NumRows(); r++ {
		first := text(s, r, 0)
		if first == "" {
			continue
		}

		if gherkin, ok := model.ParseGherkin(first); ok {
			if current == nil {
				h.env.Diags.Warnf(model.CodeStepWithoutScenario, s.Name(), r+1, "%s step before any %s row", gherkin, markerMethodName)
				continue
			}
			if gherkin == model.And && len(current.Steps) > 0 {
				gherkin = current.Steps[len(current.Steps)-1].Gherkin
			}
			current.Steps = append(current.Steps, model.Step{
				Description: text(s, r, 1),
				Gherkin:     gherkin,
				Command: model.Command{
					Type:   text(s, r, 2),
					Params: params(s, r, 3),
				},
				Row: r + 1,
			})
			continue
		}

		switch first {
		case markerMethodName:
			current = &model.Scenario{Name: text(s, r, 1)}
			if current.Name == "" {
				h.env.Diags.Warnf(model.CodeMissingParam, s.Name(), r+1, "scenario has no method name")
			}
			h.feature.Scenarios = append(h.feature.Scenarios, current)
		case markerMethodComment:
			if current == nil {
				h.env.Diags.Infof(model.CodeRowSkipped, s.Name(), r+1, "%s before any %s row", markerMethodComment, markerMethodName)
				continue
			}
			current.Description = text(s, r, 1)
		default:
			h.env.Diags.Infof(model.CodeRowSkipped, s.Name(), r+1, "unrecognized row marker %q", first)
		}
	}
}

func (h *ScriptHandler) Merge(st *model.Store) {
	if h.feature == nil {
		return
	}
	st.Features = append(st.Features, h.feature)
}
