package translate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CommandKind is the closed command vocabulary of the sheet DSL.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdByName
	CmdByXPath
	CmdTouchAction
	CmdWaiting
	CmdCheckAlert
	CmdPicker
)

// Kinds lists every known command kind.
var Kinds = []CommandKind{CmdByName, CmdByXPath, CmdTouchAction, CmdWaiting, CmdCheckAlert, CmdPicker}

func (k CommandKind) String() string {
	switch k {
	case CmdByName:
		return "ByName"
	case CmdByXPath:
		return "ByXPath"
	case CmdTouchAction:
		return "TouchAction"
	case CmdWaiting:
		return "Waiting"
	case CmdCheckAlert:
		return "CheckAlert"
	case CmdPicker:
		return "Picker"
	}
	return "Unknown"
}

const (
	touchActionPrefix = "TouchAction_"
	waitingPrefix     = "Waiting"
	swipeStep         = 0.5
)

// ParsedCommand is a command type split into its kind and the suffix some
// kinds embed (touch factor, wait duration).
type ParsedCommand struct {
	Kind   CommandKind
	Suffix string
}

// ParseCommandType classifies a command type string. Matching is case
// sensitive.
func ParseCommandType(t string) ParsedCommand {
	switch {
	case t == "ByName":
		return ParsedCommand{Kind: CmdByName}
	case t == "ByXPath":
		return ParsedCommand{Kind: CmdByXPath}
	case t == "CheckAlert":
		return ParsedCommand{Kind: CmdCheckAlert}
	case t == "Picker":
		return ParsedCommand{Kind: CmdPicker}
	case strings.HasPrefix(t, touchActionPrefix):
		return ParsedCommand{Kind: CmdTouchAction, Suffix: strings.TrimPrefix(t, touchActionPrefix)}
	case strings.HasPrefix(t, waitingPrefix):
		return ParsedCommand{Kind: CmdWaiting, Suffix: strings.TrimPrefix(t, waitingPrefix)}
	}
	return ParsedCommand{Kind: CmdUnknown}
}

// IsLocator reports whether the kind locates elements by name or xpath.
func (k CommandKind) IsLocator() bool {
	return k == CmdByName || k == CmdByXPath
}

func (k CommandKind) locatorBy() By {
	if k == CmdByXPath {
		return ByXPath
	}
	return ByName
}

// SwipeCount returns how many swipe gestures a touch factor stands for:
// one per half screen, rounded down.
func SwipeCount(factor string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(factor), 64)
	if err != nil {
		return 0, fmt.Errorf("touch factor %q is not a number", factor)
	}
	n := int(math.Floor(f / swipeStep))
	if n < 0 {
		n = 0
	}
	return n, nil
}

// WaitSuffixSeconds reads the duration embedded in a Waiting command type,
// e.g. "_10s". It returns false when the type carries no duration.
func WaitSuffixSeconds(suffix string) (int, bool, error) {
	s := strings.TrimSpace(suffix)
	s = strings.Trim(s, "_")
	s = strings.Trim(s, "s")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, true, fmt.Errorf("wait duration %q is not a number", suffix)
	}
	return int(n), true, nil
}

// paramSeconds reads a wait duration from a command parameter.
func paramSeconds(p any) (int, error) {
	switch v := p.(type) {
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("wait duration %q is not a number", v)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("wait duration must be a number, got %v", p)
}
