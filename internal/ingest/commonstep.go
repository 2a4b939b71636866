package ingest

import (
	"strconv"
	"strings"

	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/sheet"
)

// CommonStepHandler reads one CommonUtilClass per sheet.
//
//	row 1..3, col 1   class name, description, package label
//	MethodName | name                                opens a method
//	MethodComment | description [| noReset | bool]   describes it
//	Step | ...                                       column titles, ignored
//	desc | command | params...                       a step of the open method
type CommonStepHandler struct {
	env  *Env
	util *model.CommonUtilClass
}

func NewCommonStepHandler(env *Env) Handler {
	return &CommonStepHandler{env: env}
}

func (h *CommonStepHandler) Name() string { return model.KindCommonStep }

func (h *CommonStepHandler) Parse(s sheet.Sheet) {
	h.util = &model.CommonUtilClass{
		Name:        headerField(s, 1),
		Description: headerField(s, 2),
		Package:     headerField(s, 3),
		Sheet:       s.Name(),
	}
	if h.util.Name == "" {
		h.env.Diags.Warnf(model.CodeMissingParam, s.Name(), 2, "common step class has no name")
	}

	var current *model.CommonMethod
	for r := headerRows; r < s.NumRows(); r++ {
		first := text(s, r, 0)

		switch first {
		case "", markerStep:
			continue
		case markerMethodName:
			current = &model.CommonMethod{
				Name:    text(s, r, 1),
				NoReset: h.env.Options.NoResetDefault,
				Class:   h.util.Name,
				Package: h.util.Package,
				Sheet:   s.Name(),
			}
			if current.Name == "" {
				h.env.Diags.Warnf(model.CodeMissingParam, s.Name(), r+1, "common method has no name")
			}
			h.util.Methods = append(h.util.Methods, current)
		case markerMethodComment:
			if current == nil {
				h.env.Diags.Infof(model.CodeRowSkipped, s.Name(), r+1, "%s before any %s row", markerMethodComment, markerMethodName)
				continue
			}
			current.Description = text(s, r, 1)
			h.scanNoReset(s, r, current)
		default:
			if current == nil {
				h.env.Diags.Warnf(model.CodeStepWithoutMethod, s.Name(), r+1, "step %q before any %s row", first, markerMethodName)
				continue
			}
			current.Steps = append(current.Steps, model.Step{
				Description: first,
				Command: model.Command{
					Type:   text(s, r, 1),
					Params: params(s, r, 2),
				},
				Row: r + 1,
			})
		}
	}
}

// scanNoReset looks for a "noReset" label after the description and reads
// the flag from the cell that follows it.
func (h *CommonStepHandler) scanNoReset(s sheet.Sheet, r int, m *model.CommonMethod) {
	for c := 2; c < s.RowLen(r); c++ {
		if text(s, r, c) != markerNoReset {
			continue
		}
		flag := s.Cell(r, c+1)
		switch flag.Kind {
		case sheet.Bool:
			m.NoReset = flag.Bool
		case sheet.String:
			b, err := strconv.ParseBool(strings.TrimSpace(flag.Str))
			if err != nil {
				h.env.Diags.Warnf(model.CodeValueDropped, s.Name(), r+1, "noReset value %q is not a boolean", flag.Str)
				return
			}
			m.NoReset = b
		default:
			h.env.Diags.Warnf(model.CodeValueDropped, s.Name(), r+1, "noReset needs a boolean, got %s", flag.Kind)
		}
		return
	}
}

func (h *CommonStepHandler) Merge(st *model.Store) {
	if h.util == nil {
		return
	}
	st.Utils = append(st.Utils, h.util)
}
