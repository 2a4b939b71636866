// Package translate turns scenarios and common methods into flat statement
// lists by dispatching each step's command through a fixed table.
package translate

import (
	"strings"

	"go.uber.org/zap"

	"github.com/chriserin/sheetgen/internal/model"
)

const (
	presenceTimeoutSeconds = 2
	pickerConfirm       = "完成"
)

// CallArgs is the fixed argument list passed to every common method.
var CallArgs = []string{"driver", "userName", "password", "pid", "implicitlyWaitSec"}

// Method is the translated body of one generated method plus the markers
// the emitter turns into annotations.
type Method struct {
	Name        string
	Description string
	Statements  []Statement
	// NoReset is set when the body calls a common method; it carries that
	// method's flag.
	NoReset *bool
	// Account is set when a step names an account type.
	Account     *model.AccountInfo
	Diagnostics []model.Diagnostic
}

// Engine translates against one read-only store.
type Engine struct {
	accounts map[string]model.AccountInfo
	methods  map[string]*model.CommonMethod
	resolver *Resolver
	log      *zap.Logger
	diags    []model.Diagnostic
}

func New(store *model.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	accounts, dupAccounts := store.AccountIndex()
	methods, dupMethods := store.MethodIndex()

	e := &Engine{
		accounts: accounts,
		methods:  methods,
		resolver: NewResolver(accounts),
		log:      log,
	}
	var d model.Diagnostics
	for _, t := range dupAccounts {
		d.Warnf(model.CodeDuplicateAccount, "", 0, "account type %q declared more than once, using the first", t)
	}
	for _, desc := range dupMethods {
		d.Warnf(model.CodeDuplicateMethod, "", 0, "common method description %q declared more than once, using the last", desc)
	}
	e.diags = d.List()
	return e
}

// Diagnostics returns the problems found while indexing the store.
func (e *Engine) Diagnostics() []model.Diagnostic {
	return e.diags
}

// stepCtx is the state of one method translation.
type stepCtx struct {
	sheet  string
	row    int
	diags  *model.Diagnostics
	method *Method
	// self is the common method being translated, nil for scenarios.
	self *model.CommonMethod
}

type emitFunc func(e *Engine, c *stepCtx, step model.Step, cmd ParsedCommand) []Statement

// commandTable has one entry per CommandKind other than CmdUnknown.
var commandTable = map[CommandKind]emitFunc{
	CmdByName:      emitLocatorAction,
	CmdByXPath:     emitLocatorAction,
	CmdTouchAction: emitTouchAction,
	CmdWaiting:     emitWaiting,
	CmdCheckAlert:  emitCheckAlert,
	CmdPicker:      emitPicker,
}

func (e *Engine) TranslateScenario(f *model.Feature, s *model.Scenario) Method {
	m := Method{Name: s.Name, Description: s.Description}
	c := &stepCtx{sheet: f.Sheet, diags: &model.Diagnostics{}, method: &m}
	m.Statements = e.translateSteps(c, s.Steps)
	m.Diagnostics = c.diags.List()
	return m
}

func (e *Engine) TranslateCommonMethod(cm *model.CommonMethod) Method {
	m := Method{Name: cm.Name, Description: cm.Description}
	c := &stepCtx{sheet: cm.Sheet, diags: &model.Diagnostics{}, method: &m, self: cm}
	m.Statements = e.translateSteps(c, cm.Steps)
	m.Diagnostics = c.diags.List()
	return m
}

func (e *Engine) translateSteps(c *stepCtx, steps []model.Step) []Statement {
	stmts := []Statement{}
	for _, step := range steps {
		c.row = step.Row
		stmts = append(stmts, Statement{Op: OpComment, Text: commentText(step)})
		stmts = append(stmts, e.translateStep(c, step)...)
	}
	return stmts
}

// commentText echoes the authored row: keyword, description, command and
// raw parameters.
func commentText(step model.Step) string {
	parts := make([]string, 0, len(step.Command.Params)+3)
	if step.Gherkin != "" {
		parts = append(parts, string(step.Gherkin))
	}
	parts = append(parts, step.Description)
	if step.Command.Type != "" {
		parts = append(parts, step.Command.Type)
	}
	for _, p := range step.Command.Params {
		parts = append(parts, model.FormatParam(p))
	}
	return strings.Join(parts, " ")
}

func (e *Engine) translateStep(c *stepCtx, step model.Step) []Statement {
	cmd := ParseCommandType(step.Command.Type)

	if step.Gherkin == model.Then && cmd.Kind.IsLocator() {
		return emitAssertion(c, step, cmd)
	}

	if fn, ok := commandTable[cmd.Kind]; ok {
		return fn(e, c, step, cmd)
	}
	return e.fallback(c, step)
}

// fallback resolves a step with no recognized command by its description.
func (e *Engine) fallback(c *stepCtx, step model.Step) []Statement {
	if target, ok := e.methods[step.Description]; ok && target != c.self {
		noReset := target.NoReset
		c.method.NoReset = &noReset
		return []Statement{{
			Op: OpCall,
			Call: &Call{
				Package: target.Package,
				Class:   target.Class,
				Method:  target.Name,
				Args:    CallArgs,
				Target:  target,
			},
		}}
	}

	if acc, ok := e.accounts[step.Description]; ok {
		if c.self != nil {
			c.diags.Infof(model.CodeRowSkipped, c.sheet, c.row, "account %q named inside common method %q has no effect", acc.Type, c.self.Name)
			return nil
		}
		c.method.Account = &acc
		return nil
	}

	c.diags.Warnf(model.CodeUnresolvedStep, c.sheet, c.row,
		"step %q matches no command, common method or account", step.Description)
	e.log.Debug("unresolved step",
		zap.String("sheet", c.sheet),
		zap.Int("row", c.row),
		zap.String("description", step.Description),
		zap.String("command", step.Command.Type))
	return nil
}

func emitAssertion(c *stepCtx, step model.Step, cmd ParsedCommand) []Statement {
	loc, ok := step.Command.ParamText(0)
	if !ok {
		c.diags.Infof(model.CodeMissingParam, c.sheet, c.row, "%s assertion has no locator", cmd.Kind)
		return nil
	}
	return []Statement{{
		Op:      OpAssertPresent,
		Locator: Locator{By: cmd.Kind.locatorBy(), Value: loc},
	}}
}

func emitLocatorAction(e *Engine, c *stepCtx, step model.Step, cmd ParsedCommand) []Statement {
	loc, ok := step.Command.ParamText(0)
	if !ok {
		c.diags.Infof(model.CodeMissingParam, c.sheet, c.row, "%s step has no locator", cmd.Kind)
		return nil
	}
	action, _ := step.Command.ParamText(1)

	stmt := Statement{
		Op:      OpAct,
		Locator: Locator{By: cmd.Kind.locatorBy(), Value: loc},
	}
	switch Action(action) {
	case Click, Clear:
		stmt.Action = Action(action)
	case SendKeys:
		v := step.Command.Param(2)
		if v == nil {
			c.diags.Warnf(model.CodeMissingParam, c.sheet, c.row, "sendKeys on %q has no value", loc)
			return nil
		}
		stmt.Action = SendKeys
		stmt.Value = e.value(c, v)
	default:
		c.diags.Infof(model.CodeInvalidCommand, c.sheet, c.row, "%s action %q is not click, sendKeys or clear", cmd.Kind, action)
		return nil
	}
	return []Statement{stmt}
}

func emitTouchAction(_ *Engine, c *stepCtx, _ model.Step, cmd ParsedCommand) []Statement {
	n, err := SwipeCount(cmd.Suffix)
	if err != nil {
		c.diags.Warnf(model.CodeInvalidCommand, c.sheet, c.row, "%v", err)
		return nil
	}
	stmts := make([]Statement, n)
	for i := range stmts {
		stmts[i] = Statement{Op: OpSwipe}
	}
	return stmts
}

func emitWaiting(_ *Engine, c *stepCtx, step model.Step, cmd ParsedCommand) []Statement {
	secs, ok, err := WaitSuffixSeconds(cmd.Suffix)
	if err != nil {
		c.diags.Warnf(model.CodeInvalidCommand, c.sheet, c.row, "%v", err)
		return nil
	}
	if !ok {
		p := step.Command.Param(0)
		if p == nil {
			c.diags.Infof(model.CodeMissingParam, c.sheet, c.row, "Waiting step has no duration")
			return nil
		}
		secs, err = paramSeconds(p)
		if err != nil {
			c.diags.Warnf(model.CodeInvalidCommand, c.sheet, c.row, "%v", err)
			return nil
		}
	}
	return []Statement{{Op: OpSleep, Seconds: secs}}
}

func emitCheckAlert(_ *Engine, c *stepCtx, step model.Step, _ ParsedCommand) []Statement {
	name, ok := step.Command.ParamText(0)
	if !ok {
		c.diags.Infof(model.CodeMissingParam, c.sheet, c.row, "CheckAlert step has no element name")
		return nil
	}
	return []Statement{{
		Op:      OpPresenceClick,
		Locator: Locator{By: ByName, Value: name},
		Seconds: presenceTimeoutSeconds,
	}}
}

func emitPicker(e *Engine, c *stepCtx, step model.Step, _ ParsedCommand) []Statement {
	v := step.Command.Param(0)
	if v == nil {
		c.diags.Infof(model.CodeMissingParam, c.sheet, c.row, "Picker step has no value")
		return nil
	}
	return []Statement{
		{Op: OpPickerSet, Value: e.value(c, v)},
		{Op: OpAct, Locator: Locator{By: ByName, Value: pickerConfirm}, Action: Click},
	}
}

// value turns a parameter into an argument expression, resolving
// placeholders in strings.
func (e *Engine) value(c *stepCtx, p any) Expr {
	s, ok := p.(string)
	if !ok {
		return Literal(model.FormatParam(p))
	}
	expr, resolved := e.resolver.Resolve(s)
	if !resolved {
		c.diags.Warnf(model.CodeUnresolvedPlaceholder, c.sheet, c.row, "placeholder %s does not name a known account field", s)
	}
	return expr
}
