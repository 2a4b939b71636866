package emit

import (
	"fmt"
	"strings"

	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/translate"
)

// names holds the Java names fixed for one run. Declarations and call sites
// both read from it so they cannot disagree.
type names struct {
	features map[*model.Feature]string
	utils    map[*model.CommonUtilClass]string
	methods  map[*model.CommonMethod]string
	owners   map[*model.CommonMethod]*model.CommonUtilClass
}

// AssignNames fixes the class name of every util class and feature in st
// and the method name of every common method, in generation order. A class
// whose source path is already taken gets a numeric suffix and a
// duplicate-class warning.
func (c *Context) AssignNames(st *model.Store) []model.Diagnostic {
	n := &names{
		features: map[*model.Feature]string{},
		utils:    map[*model.CommonUtilClass]string{},
		methods:  map[*model.CommonMethod]string{},
		owners:   map[*model.CommonMethod]*model.CommonUtilClass{},
	}
	var diags model.Diagnostics
	taken := map[string]bool{}

	claim := func(pkg, base, sheet string) string {
		name := base
		for i := 2; taken[strings.ToLower(SourcePath(pkg, name))]; i++ {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		if name != base {
			diags.Warnf(model.CodeDuplicateClass, sheet, 0, "class %s already generated, renamed to %s", SourcePath(pkg, base), name)
		}
		taken[strings.ToLower(SourcePath(pkg, name))] = true
		return name
	}

	for _, u := range st.Utils {
		n.utils[u] = claim(c.UtilClassPackage(u.Package), UtilClassName(u.Name), u.Sheet)
		seen := uniqueNames{}
		for i, m := range u.Methods {
			n.methods[m] = seen.take(methodName(m.Name, fmt.Sprintf("step%d", i+1)))
			n.owners[m] = u
		}
	}
	for _, f := range st.Features {
		n.features[f] = claim(c.TestPackage(f.Package), ClassName(f.Name), f.Sheet)
	}

	c.names = n
	return diags.List()
}

// TestClassName is the class generated for f.
func (c Context) TestClassName(f *model.Feature) string {
	if c.names != nil {
		if name, ok := c.names.features[f]; ok {
			return name
		}
	}
	return ClassName(f.Name)
}

// UtilClass is the class generated for u.
func (c Context) UtilClass(u *model.CommonUtilClass) string {
	if c.names != nil {
		if name, ok := c.names.utils[u]; ok {
			return name
		}
	}
	return UtilClassName(u.Name)
}

func (c Context) commonMethodName(m *model.CommonMethod) (string, bool) {
	if c.names == nil || m == nil {
		return "", false
	}
	name, ok := c.names.methods[m]
	return name, ok
}

// callTarget returns the package, class and method a call statement
// resolves to. Calls without an assigned target fall back to the labels
// carried on the call.
func (c Context) callTarget(call *translate.Call) (pkg, class, method string) {
	if name, ok := c.commonMethodName(call.Target); ok {
		u := c.names.owners[call.Target]
		return c.UtilClassPackage(u.Package), c.UtilClass(u), name
	}
	return c.UtilClassPackage(call.Package), UtilClassName(call.Class), methodName(call.Method, "unnamed")
}
