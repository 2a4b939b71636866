package emit

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/translate"
)

var javaEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote returns s as a Java string literal.
func Quote(s string) string {
	return `"` + javaEscaper.Replace(s) + `"`
}

// javaKeywords are the reserved words and literals that cannot name a
// class, method or package segment.
var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true, "var": true, "record": true,
	"yield": true, "_": true,
}

// identifier makes s a valid Java identifier by replacing every other rune
// with '_' and appending '_' to reserved words. An empty result stays empty.
func identifier(s string, title bool) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
			if i == 0 && title {
				r = unicode.ToUpper(r)
			}
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if javaKeywords[b.String()] {
		b.WriteByte('_')
	}
	return b.String()
}

// ClassName returns the class name for a feature, adding the Test suffix
// once.
func ClassName(feature string) string {
	name := identifier(strings.TrimSpace(feature), true)
	if name == "" {
		name = "Unnamed"
	}
	if strings.HasSuffix(name, "Test") {
		return name
	}
	return name + "Test"
}

// UtilClassName returns the class name for a common step class.
func UtilClassName(name string) string {
	if n := identifier(strings.TrimSpace(name), true); n != "" {
		return n
	}
	return "UnnamedUtil"
}

func methodName(name string, fallback string) string {
	if n := identifier(strings.TrimSpace(name), false); n != "" {
		return n
	}
	return fallback
}

func expr(x translate.Expr) string {
	if x.Raw {
		return x.Text
	}
	return Quote(x.Text)
}

func locator(l translate.Locator) string {
	return fmt.Sprintf("By.%s(%s)", l.By, Quote(l.Value))
}

// statementLines renders one statement as Java source lines without
// indentation.
func (c Context) statementLines(s translate.Statement) []string {
	switch s.Op {
	case translate.OpComment:
		return []string{"// " + oneLine(s.Text)}
	case translate.OpAct:
		arg := ""
		if s.Action == translate.SendKeys {
			arg = expr(s.Value)
		}
		return []string{fmt.Sprintf("driver.findElement(%s).%s(%s);", locator(s.Locator), s.Action, arg)}
	case translate.OpAssertPresent:
		return []string{fmt.Sprintf("assertTrue(driver.findElements(%s).size() > 0);", locator(s.Locator))}
	case translate.OpSwipe:
		return []string{"(new TouchAction(driver)).press((width / 2), height - 25).moveTo(0, (-1) * height / 2).release().perform();"}
	case translate.OpSleep:
		return []string{
			"try {",
			fmt.Sprintf("    Thread.sleep(%d * 1000);", s.Seconds),
			"} catch (InterruptedException e) {",
			"    e.printStackTrace();",
			"}",
		}
	case translate.OpPresenceClick:
		return []string{fmt.Sprintf("CommandUtils.presenceClick(driver, %dL, %s, implicitlyWaitSec);", s.Seconds, Quote(s.Locator.Value))}
	case translate.OpPickerSet:
		return []string{fmt.Sprintf("driver.findElement(By.xpath(\"//XCUIElementTypePickerWheel\")).setValue(%s);", expr(s.Value))}
	case translate.OpCall:
		_, class, method := c.callTarget(s.Call)
		return []string{fmt.Sprintf("%s.%s(%s);", class, method, strings.Join(s.Call.Args, ", "))}
	}
	return nil
}

// commentEscaper doubles backslashes so javac never reads a \u escape
// inside generated comments.
var commentEscaper = strings.NewReplacer(`\`, `\\`)

func oneLine(s string) string {
	return commentEscaper.Replace(strings.Join(strings.Fields(s), " "))
}

// docLines splits free text into javadoc lines, dropping blank ones.
func docLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, commentEscaper.Replace(strings.ReplaceAll(line, "*/", "* /")))
	}
	return out
}

// capabilityValue renders a settings value as a Java expression.
func capabilityValue(v any) string {
	switch val := v.(type) {
	case string:
		return Quote(val)
	case bool, float64, int:
		return model.FormatParam(val)
	}
	return Quote(model.FormatParam(v))
}
