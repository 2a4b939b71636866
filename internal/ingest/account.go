package ingest

import (
	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/sheet"
)

// accountTitleLabel marks a repeated column-title row inside account data.
const accountTitleLabel = "使用者身份"

// AccountHandler reads test accounts. Rows 0-1 are the type tag and the
// column titles; data rows are type, pid, userName, password, comment.
type AccountHandler struct {
	env      *Env
	accounts []model.AccountInfo
}

func NewAccountHandler(env *Env) Handler {
	return &AccountHandler{env: env}
}

func (h *AccountHandler) Name() string { return model.KindAccount }

func (h *AccountHandler) Parse(s sheet.Sheet) {
	for r := 2; r < s.NumRows(); r++ {
		if isBlankRow(s, r) {
			continue
		}
		if text(s, r, 0) == accountTitleLabel {
			continue
		}
		if !h.complete(s, r) {
			h.env.Diags.Infof(model.CodeAccountIncomplete, s.Name(), r+1, "type, pid, userName and password are all required")
			continue
		}

		h.accounts = append(h.accounts, model.AccountInfo{
			Type:     text(s, r, 0),
			PID:      text(s, r, 1),
			UserName: text(s, r, 2),
			Password: text(s, r, 3),
			Comment:  text(s, r, 4),
		})
	}
}

func (h *AccountHandler) complete(s sheet.Sheet, r int) bool {
	for c := 0; c < 4; c++ {
		if text(s, r, c) == "" {
			return false
		}
	}
	return true
}

func (h *AccountHandler) Merge(st *model.Store) {
	st.Accounts = append(st.Accounts, h.accounts...)
}

func isBlankRow(s sheet.Sheet, r int) bool {
	for c := 0; c < s.RowLen(r); c++ {
		if !s.Cell(r, c).IsBlank() {
			return false
		}
	}
	return true
}
