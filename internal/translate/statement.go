package translate

import (
	"fmt"

	"github.com/chriserin/sheetgen/internal/model"
)

// Op is the kind of an emitted statement.
type Op int

const (
	OpComment       Op = iota // step comment
	OpAct                     // locate one element and click, sendKeys or clear it
	OpAssertPresent           // assert at least one element matches
	OpSwipe                   // one upward swipe gesture
	OpSleep                   // sleep, swallowing interruption
	OpPresenceClick              // click if present within a short timeout
	OpPickerSet               // set the picker wheel value
	OpCall                    // call a common method
)

var opNames = [...]string{"comment", "act", "assert-present", "swipe", "sleep", "presence-click", "picker-set", "call"}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// By is a locator strategy.
type By string

const (
	ByName  By = "name"
	ByXPath By = "xpath"
)

type Locator struct {
	By    By
	Value string
}

// Action is what an OpAct statement does with the located element.
type Action string

const (
	Click    Action = "click"
	SendKeys Action = "sendKeys"
	Clear    Action = "clear"
)

// Expr is an argument value. Raw expressions are emitted verbatim as code,
// everything else as a quoted string literal.
type Expr struct {
	Text string
	Raw  bool
}

func Literal(s string) Expr { return Expr{Text: s} }
func Raw(s string) Expr { return Expr{Text: s, Raw: true} }

// Call targets a static common method by its util class.
type Call struct {
	Package string // util package label
	Class   string
	Method  string
	Args    []string
	// Target is the called method, used by the renderer to look up the
	// Java names assigned to it.
	Target  *model.CommonMethod
}

// Statement is one entry of a generated method body. Only the fields that
// belong to Op are set.
type Statement struct {
	Op      Op
	Text    string // OpComment
	Locator Locator
	Action  Action
	Value   Expr   // OpAct sendKeys, OpPickerSet
	Seconds int    // OpSleep, OpPresenceClick
	Call    *Call
}

// String renders a statement compactly for inspection output.
func (s Statement) String() string {
	switch s.Op {
	case OpComment:
		return "// " + s.Text
	case OpAct:
		if s.Action == SendKeys {
			return fmt.Sprintf("act %s=%q %s %s", s.Locator.By, s.Locator.Value, s.Action, s.Value)
		}
		return fmt.Sprintf("act %s=%q %s", s.Locator.By, s.Locator.Value, s.Action)
	case OpAssertPresent:
		return fmt.Sprintf("assert-present %s=%q", s.Locator.By, s.Locator.Value)
	case OpSleep:
		return fmt.Sprintf("sleep %ds", s.Seconds)
	case OpPresenceClick:
		return fmt.Sprintf("presence-click %s=%q within %ds", s.Locator.By, s.Locator.Value, s.Seconds)
	case OpPickerSet:
		return fmt.Sprintf("picker-set %s", s.Value)
	case OpCall:
		return fmt.Sprintf("call %s.%s", s.Call.Class, s.Call.Method)
	}
	return s.Op.String()
}

func (x Expr) String() string {
	if x.Raw {
		return x.Text
	}
	return fmt.Sprintf("%q", x.Text)
}
