// Package model holds the domain records parsed out of a test workbook.
package model

import (
	"fmt"
	"strings"

	"github.com/chriserin/sheetgen/internal/sheet"
)

// GherkinType is the Given/When/Then/And role of a step.
type GherkinType string

const (
	Given GherkinType = "Given"
	When  GherkinType = "When"
	Then  GherkinType = "Then"
	And   GherkinType = "And"
)

// ParseGherkin returns the keyword for s, or false if s is not one of the
// four step keywords.
func ParseGherkin(s string) (GherkinType, bool) {
	switch g := GherkinType(strings.TrimSpace(s)); g {
	case Given, When, Then, And:
		return g, true
	}
	return "", false
}

type Feature struct {
	Name        string
	Description string
	Package     string
	Sheet       string
	Scenarios   []*Scenario
}

type Scenario struct {
	Name        string
	Description string
	Steps       []Step
}

// Step is one authored row. Description doubles as the lookup key into
// the common method and account tables.
type Step struct {
	Description string
	Gherkin     GherkinType // empty for common method steps
	Command     Command
	Row         int // 1-based sheet row
}

// Command is a step's operation type plus its ordered parameters. Params
// hold string, float64 or bool values.
type Command struct {
	Type   string
	Params []any
}

// Param returns the i-th parameter, or nil.
func (c Command) Param(i int) any {
	if i < 0 || i >= len(c.Params) {
		return nil
	}
	return c.Params[i]
}

// ParamText returns the i-th parameter as text and whether it exists.
func (c Command) ParamText(i int) (string, bool) {
	p := c.Param(i)
	if p == nil {
		return "", false
	}
	return FormatParam(p), true
}

// FormatParam renders a parameter the way it reads in the sheet.
func FormatParam(p any) string {
	switch v := p.(type) {
	case string:
		return v
	case float64:
		return sheet.FormatNumber(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

type AccountInfo struct {
	Type     string
	PID      string
	UserName string
	Password string
	Comment  string
}

type CommonUtilClass struct {
	Name        string
	Description string
	Package     string
	Sheet       string
	Methods     []*CommonMethod
}

// CommonMethod is a reusable step sequence invoked from scenarios whose step
// description equals Description.
type CommonMethod struct {
	Name        string
	Description string
	NoReset     bool
	Class       string
	Package     string
	Sheet       string
	Steps       []Step
}

// Settings holds the desired capabilities and driver properties of the
// target device, plus the normalized values later used to build package
// names.
type Settings struct {
	Capabilities     map[string]any
	DriverProperties map[string]any
	DeviceName       string
	PlatformVersion  string
}

func NewSettings() *Settings {
	return &Settings{
		Capabilities:     map[string]any{},
		DriverProperties: map[string]any{},
	}
}

// Merge copies other into s, last write wins per key.
func (s *Settings) Merge(other *Settings) {
	for k, v := range other.Capabilities {
		s.Capabilities[k] = v
	}
	for k, v := range other.DriverProperties {
		s.DriverProperties[k] = v
	}
	if other.DeviceName != "" {
		s.DeviceName = other.DeviceName
	}
	if other.PlatformVersion != "" {
		s.PlatformVersion = other.PlatformVersion
	}
}

// ImplicitWait returns the implicitlyWait driver property in seconds.
func (s *Settings) ImplicitWait() (int, bool) {
	if s == nil {
		return 0, false
	}
	switch v := s.DriverProperties[ImplicitlyWaitProperty].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

// AppiumURL returns the appiumUrl driver property if set.
func (s *Settings) AppiumURL() (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.DriverProperties[AppiumURLProperty].(string)
	return v, ok && v != ""
}

const (
	ImplicitlyWaitProperty = "implicitlyWait"
	AppiumURLProperty      = "appiumUrl"
)
