package translate

import (
	"strings"

	"github.com/chriserin/sheetgen/internal/model"
)

// Resolver rewrites placeholders in string parameters.
//
//	#{type.field}   account field, emitted as a literal
//	${name}         variable reference, emitted as raw code
type Resolver struct {
	accounts map[string]model.AccountInfo
}

func NewResolver(accounts map[string]model.AccountInfo) *Resolver {
	return &Resolver{accounts: accounts}
}

// Resolve returns the expression for v. The bool is false when v is an
// account placeholder that could not be resolved; the expression then
// carries the placeholder text unchanged.
func (r *Resolver) Resolve(v string) (Expr, bool) {
	if inner, ok := enclosed(v, "#{"); ok {
		if value, ok := r.accountField(inner); ok {
			return Literal(value), true
		}
		return Literal(v), false
	}
	if inner, ok := enclosed(v, "${"); ok && inner != "" {
		return Raw(inner), true
	}
	return Literal(v), true
}

func (r *Resolver) accountField(ref string) (string, bool) {
	typ, field, ok := strings.Cut(ref, ".")
	if !ok {
		return "", false
	}
	acc, ok := r.accounts[typ]
	if !ok {
		return "", false
	}
	switch {
	case strings.EqualFold(field, "password"):
		return acc.Password, true
	case strings.EqualFold(field, "pid"):
		return acc.PID, true
	case strings.EqualFold(field, "userName"):
		return acc.UserName, true
	}
	return "", false
}

func enclosed(v, open string) (string, bool) {
	if len(v) < len(open)+1 || !strings.HasPrefix(v, open) || !strings.HasSuffix(v, "}") {
		return "", false
	}
	return v[len(open) : len(v)-1], true
}
