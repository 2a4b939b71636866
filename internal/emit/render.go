package emit

import (
	"bytes"
	"fmt"
	"slices"
	"sort"
	"text/template"

	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/translate"
)

var (
	testTmpl = template.Must(template.New("test").Parse(testClassTemplate))
	utilTmpl = template.Must(template.New("util").Parse(utilClassTemplate))
)

type classData struct {
	Package string
	Name    string
	Imports []string
	Head    []string
	Setup   []string
	Methods []methodData
}

type methodData struct {
	Name string
	Head []string
	Body []string
}

var testImports = []string{
	"io.appium.java_client.MobileElement",
	"io.appium.java_client.TouchAction",
	"io.appium.java_client.ios.IOSDriver",
	"java.net.MalformedURLException",
	"java.net.URL",
	"java.util.concurrent.TimeUnit",
	"org.junit.After",
	"org.junit.Before",
	"org.junit.Rule",
	"org.junit.Test",
	"org.openqa.selenium.By",
	"org.openqa.selenium.remote.DesiredCapabilities",
}

var utilImports = []string{
	"io.appium.java_client.MobileElement",
	"io.appium.java_client.TouchAction",
	"io.appium.java_client.ios.IOSDriver",
	"org.openqa.selenium.By",
}

// RenderTestClass renders the test class of a feature. methods holds one
// translated method per scenario, in scenario order.
func (c Context) RenderTestClass(f *model.Feature, methods []translate.Method) ([]byte, error) {
	data := classData{
		Package: c.TestPackage(f.Package),
		Name:    c.TestClassName(f),
		Head:    javadoc(docLines(f.Description)),
		Setup:   c.setUpLines(),
	}

	imports := append([]string{}, testImports...)
	imports = append(imports,
		c.runtime("annotation", "NoResetSetting"),
		c.runtime("annotation", "TestingAccount"),
		c.runtime("rules", "ExceptionRule"),
		c.runtime("rules", "NoResetSettingRule"),
		c.runtime("rules", "UserLoginTestRule"),
		c.runtime("utils", "CommandUtils"),
	)

	names := uniqueNames{}
	for i, m := range methods {
		md := methodData{
			Name: names.take(methodName(m.Name, fmt.Sprintf("scenario%d", i+1))),
			Head: append(javadoc(docLines(m.Description)), annotations(m)...),
		}
		for _, s := range m.Statements {
			md.Body = append(md.Body, c.statementLines(s)...)
		}
		imports = append(imports, c.callImports(m, data.Package)...)
		data.Methods = append(data.Methods, md)
	}
	data.Imports = sortedUnique(imports)

	return execute(testTmpl, data)
}

// RenderUtilClass renders a common step class with one static method per
// common method.
func (c Context) RenderUtilClass(u *model.CommonUtilClass, methods []translate.Method) ([]byte, error) {
	data := classData{
		Package: c.UtilClassPackage(u.Package),
		Name:    c.UtilClass(u),
		Head:    javadoc(docLines(u.Description)),
	}

	imports := append([]string{}, utilImports...)
	imports = append(imports, c.runtime("utils", "CommandUtils"))

	names := uniqueNames{}
	for i, m := range methods {
		doc := docLines(m.Description)
		if len(doc) > 0 {
			doc = append(doc, "")
		}
		for _, p := range translate.CallArgs {
			doc = append(doc, "@param "+p)
		}
		md := methodData{
			Name: names.take(methodName(m.Name, fmt.Sprintf("step%d", i+1))),
			Head: javadoc(doc),
		}
		if i < len(u.Methods) {
			if assigned, ok := c.commonMethodName(u.Methods[i]); ok {
				md.Name = assigned
			}
		}
		if hasSwipe(m.Statements) {
			md.Body = append(md.Body,
				"int width = driver.manage().window().getSize().getWidth();",
				"int height = driver.manage().window().getSize().getHeight();",
			)
		}
		for _, s := range m.Statements {
			md.Body = append(md.Body, c.statementLines(s)...)
		}
		imports = append(imports, c.callImports(m, data.Package)...)
		data.Methods = append(data.Methods, md)
	}
	data.Imports = sortedUnique(imports)

	return execute(utilTmpl, data)
}

func (c Context) setUpLines() []string {
	lines := []string{"DesiredCapabilities capabilities = new DesiredCapabilities();"}

	caps := c.Settings.Capabilities
	keys := make([]string, 0, len(caps))
	for k := range caps {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == noResetCapability {
			continue
		}
		lines = append(lines, fmt.Sprintf("capabilities.setCapability(%s, %s);", Quote(k), capabilityValue(caps[k])))
	}

	lines = append(lines,
		"if (noResetSettingRule.isNoReset() != null) {",
		`    capabilities.setCapability("noReset", noResetSettingRule.isNoReset());`,
	)
	if v, ok := caps[noResetCapability]; ok {
		lines = append(lines,
			"} else {",
			fmt.Sprintf(`    capabilities.setCapability("noReset", %s);`, capabilityValue(v)),
		)
	}
	lines = append(lines, "}")

	lines = append(lines,
		fmt.Sprintf("driver = new IOSDriver<MobileElement>(new URL(%s), capabilities);", Quote(c.AppiumURL)),
		fmt.Sprintf("implicitlyWaitSec = %d;", c.ImplicitWait),
		"driver.manage().timeouts().implicitlyWait(implicitlyWaitSec, TimeUnit.SECONDS);",
		"width = driver.manage().window().getSize().getWidth();",
		"height = driver.manage().window().getSize().getHeight();",
		"if (userLoginTestRule.getHasUser()) {",
		"    userName = userLoginTestRule.getUserName();",
		"    pid = userLoginTestRule.getPid();",
		"    password = userLoginTestRule.getPassword();",
		"}",
		"exceptionRule.setDriver(driver);",
	)
	return lines
}

const noResetCapability = "noReset"

func annotations(m translate.Method) []string {
	var out []string
	if m.NoReset != nil {
		out = append(out, fmt.Sprintf("@NoResetSetting(noReset = %t)", *m.NoReset))
	}
	if acc := m.Account; acc != nil {
		out = append(out, fmt.Sprintf("@TestingAccount(userName = %s, password = %s, pid = %s)",
			Quote(acc.UserName), Quote(acc.Password), Quote(acc.PID)))
	}
	return out
}

// callImports returns the util classes m calls outside pkg.
func (c Context) callImports(m translate.Method, pkg string) []string {
	var out []string
	for _, s := range m.Statements {
		if s.Op != translate.OpCall {
			continue
		}
		target, class, _ := c.callTarget(s.Call)
		if target == pkg {
			continue
		}
		out = append(out, target+"."+class)
	}
	return out
}

func hasSwipe(stmts []translate.Statement) bool {
	return slices.ContainsFunc(stmts, func(s translate.Statement) bool { return s.Op == translate.OpSwipe })
}

func javadoc(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := []string{"/**"}
	for _, l := range lines {
		if l == "" {
			out = append(out, " *")
			continue
		}
		out = append(out, " * "+l)
	}
	return append(out, " */")
}

func sortedUnique(s []string) []string {
	sort.Strings(s)
	return slices.Compact(s)
}

// uniqueNames hands out method names, suffixing repeats.
type uniqueNames map[string]int

func (u uniqueNames) take(name string) string {
	u[name]++
	if n := u[name]; n > 1 {
		return fmt.Sprintf("%s_%d", name, n)
	}
	return name
}

func execute(t *template.Template, data classData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", data.Name, err)
	}
	return buf.Bytes(), nil
}
