package ingest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/sheet"
)

func ingest(t *testing.T, opts Options, sheets ...sheet.Sheet) (*model.Store, []model.Diagnostic) {
	t.Helper()
	store, diags := NewDispatcher(opts).Ingest(sheets)
	require.NotNil(t, store)
	return store, diags
}

func codes(diags []model.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func findDiag(diags []model.Diagnostic, code string) (model.Diagnostic, bool) {
	for _, d := range diags {
		if d.Code == code {
			return d, true
		}
	}
	return model.Diagnostic{}, false
}

func TestDispatcher_SkipsUntaggedAndUnknownSheets(t *testing.T) {
	store, diags := ingest(t, Options{},
		sheet.NewGrid("cover", [][]any{{""}, {"notes"}}),
		sheet.NewGrid("misc", [][]any{{"report"}}),
		sheet.NewGrid("empty", nil),
	)

	assert.Empty(t, store.Features)
	assert.Equal(t, []string{model.CodeSheetSkipped, model.CodeSheetSkipped, model.CodeSheetSkipped}, codes(diags))
	assert.Contains(t, diags[1].Message, `"report"`)
	for _, d := range diags {
		assert.Equal(t, model.SeverityInfo, d.Severity)
	}
}

func TestDispatcher_RoutesByTag(t *testing.T) {
	d := NewDispatcher(Options{})
	env := &Env{Diags: &model.Diagnostics{}}

	tests := map[string]string{
		"script":     model.KindScript,
		" settings ": model.KindSettings,
		"data":       model.KindAccount,
		"commonStep": model.KindCommonStep,
		"utils":      model.KindCommonStep,
	}
	for tag, kind := range tests {
		h, ok := d.Dispatch(sheet.NewGrid("s", [][]any{{tag}}), env)
		require.True(t, ok, tag)
		assert.Equal(t, kind, h.Name(), tag)
	}

	_, ok := d.Dispatch(sheet.NewGrid("s", [][]any{{"Script"}}), env)
	assert.False(t, ok, "tags are case sensitive")
}

func TestDispatcher_EarlierRegistrationWins(t *testing.T) {
	d := NewDispatcher(Options{})
	d.Register(TagScript, NewSettingsHandler)

	h, ok := d.Dispatch(sheet.NewGrid("s", [][]any{{"script"}}), &Env{Diags: &model.Diagnostics{}})
	require.True(t, ok)
	assert.Equal(t, model.KindScript, h.Name())
}

func TestDispatcher_FreshHandlerPerSheet(t *testing.T) {
	store, _ := ingest(t, Options{},
		sheet.NewGrid("a", [][]any{{"script"}, {"", "A"}, {}, {}, {"MethodName", "one"}}),
		sheet.NewGrid("b", [][]any{{"script"}, {"", "B"}, {}, {}, {"MethodName", "two"}}),
	)

	require.Len(t, store.Features, 2)
	assert.Equal(t, "A", store.Features[0].Name)
	assert.Len(t, store.Features[0].Scenarios, 1)
	assert.Equal(t, "B", store.Features[1].Name)
	assert.Len(t, store.Features[1].Scenarios, 1)
}

func TestSettings_Capabilities(t *testing.T) {
	store, diags := ingest(t, Options{}, sheet.NewGrid("settings", [][]any{
		{"settings"},
		{"手機選項", "iPhone 8"},
		{"作業系統選項", "iOS 11.2"},
		{"App路徑", "/apps/bank.app"},
		{"noReset", true},
		{"newCommandTimeout", 120},
		{"尋找元素等待時間", 15},
		{"appiumUrl", "http://10.0.0.5:4723/wd/hub"},
	}))

	assert.Empty(t, diags)
	want := map[string]any{
		"deviceName":        "iPhone 8",
		"platformVersion":   "11.2",
		"app":               "/apps/bank.app",
		"noReset":           true,
		"newCommandTimeout": 120.0,
	}
	if diff := cmp.Diff(want, store.Settings.Capabilities); diff != "" {
		t.Errorf("capabilities mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "iPhone 8", store.Settings.DeviceName)
	assert.Equal(t, "11.2", store.Settings.PlatformVersion)

	wait, ok := store.Settings.ImplicitWait()
	require.True(t, ok)
	assert.Equal(t, 15, wait)
	url, ok := store.Settings.AppiumURL()
	require.True(t, ok)
	assert.Equal(t, "http://10.0.0.5:4723/wd/hub", url)
}

func TestSettings_SkipsAndDrops(t *testing.T) {
	_, diags := ingest(t, Options{}, sheet.NewGrid("settings", [][]any{
		{"settings"},
		{"顏色", "blue"},
		{"udid", ""},
		{"作業系統選項", "latest"},
		{"尋找元素等待時間", "soon"},
		{"implicitlyWait", true},
	}))

	assert.Equal(t, []string{
		model.CodeRowSkipped,
		model.CodeRowSkipped,
		model.CodeValueDropped,
		model.CodeValueDropped,
		model.CodeValueDropped,
	}, codes(diags))
	assert.Equal(t, 2, diags[0].Row)
}

func TestSettings_ImplicitWaitFromText(t *testing.T) {
	store, _ := ingest(t, Options{}, sheet.NewGrid("settings", [][]any{
		{"settings"},
		{"implicitlyWait", " 30 "},
	}))

	wait, ok := store.Settings.ImplicitWait()
	require.True(t, ok)
	assert.Equal(t, 30, wait)
}

func TestSettings_ExtraLabels(t *testing.T) {
	store, diags := ingest(t, Options{CapabilityLabels: map[string]string{"裝置UDID": "udid"}},
		sheet.NewGrid("settings", [][]any{{"settings"}, {"裝置UDID", "abc-123"}}))

	assert.Empty(t, diags)
	assert.Equal(t, "abc-123", store.Settings.Capabilities["udid"])
}

func TestSettings_LaterSheetOverrides(t *testing.T) {
	store, _ := ingest(t, Options{},
		sheet.NewGrid("s1", [][]any{{"settings"}, {"手機選項", "iPhone 8"}, {"noReset", false}}),
		sheet.NewGrid("s2", [][]any{{"settings"}, {"手機選項", "iPhone X"}}),
	)

	assert.Equal(t, "iPhone X", store.Settings.DeviceName)
	assert.Equal(t, false, store.Settings.Capabilities["noReset"])
}

func TestNormalizeVersion(t *testing.T) {
	assert.Equal(t, "11.2", NormalizeVersion("iOS 11.2"))
	assert.Equal(t, "12", NormalizeVersion("v12"))
	assert.Equal(t, "", NormalizeVersion("latest"))
}

func TestCapabilityName(t *testing.T) {
	name, ok := CapabilityName("Appium版本", nil)
	assert.True(t, ok)
	assert.Equal(t, "appiumVersion", name)

	name, ok = CapabilityName("bundleId", nil)
	assert.True(t, ok)
	assert.Equal(t, "bundleId", name)

	name, ok = CapabilityName("手機選項", map[string]string{"手機選項": "udid"})
	assert.True(t, ok)
	assert.Equal(t, "udid", name)

	_, ok = CapabilityName("colour", nil)
	assert.False(t, ok)
}

func TestAccount_ParsesRows(t *testing.T) {
	store, diags := ingest(t, Options{}, sheet.NewGrid("accounts", [][]any{
		{"data"},
		{"使用者身份", "身分證", "帳號", "密碼", "說明"},
		{"user", "A123456789", "alice", "secret", "default"},
		{},
		{"使用者身份", "身分證", "帳號", "密碼"},
		{"vip", "B987654321", "bob", 1234},
		{"broken", "", "carol", "pw"},
	}))

	want := []model.AccountInfo{
		{Type: "user", PID: "A123456789", UserName: "alice", Password: "secret", Comment: "default"},
		{Type: "vip", PID: "B987654321", UserName: "bob", Password: "1234"},
	}
	if diff := cmp.Diff(want, store.Accounts); diff != "" {
		t.Errorf("accounts mismatch (-want +got):\n%s", diff)
	}

	d, ok := findDiag(diags, model.CodeAccountIncomplete)
	require.True(t, ok)
	assert.Equal(t, 7, d.Row)
	assert.Len(t, diags, 1)
}

func TestScript_ParsesFeature(t *testing.T) {
	store, diags := ingest(t, Options{}, sheet.NewGrid("login", [][]any{
		{"script"},
		{"", "Login"},
		{"", "login flows"},
		{"", "login"},
		{"MethodName", "happyPath"},
		{"MethodComment", "logs in"},
		{"Given", "open", "ByName", "start", "click"},
		{"And", "wait", "Waiting", 2},
		{"When", "type", "ByXPath", "//field", "sendKeys", "abc", true},
		{"And", "", ""},
		{"Then", "done", "ByName", "ok"},
		{"And", "more", "ByName", "ok2"},
	}))

	assert.Empty(t, diags)
	require.Len(t, store.Features, 1)
	f := store.Features[0]
	assert.Equal(t, "Login", f.Name)
	assert.Equal(t, "login flows", f.Description)
	assert.Equal(t, "login", f.Package)
	assert.Equal(t, "login", f.Sheet)

	require.Len(t, f.Scenarios, 1)
	s := f.Scenarios[0]
	assert.Equal(t, "happyPath", s.Name)
	assert.Equal(t, "logs in", s.Description)

	var gherkins []model.GherkinType
	for _, st := range s.Steps {
		gherkins = append(gherkins, st.Gherkin)
	}
	assert.Equal(t, []model.GherkinType{model.Given, model.Given, model.When, model.When, model.Then, model.Then}, gherkins)

	assert.Equal(t, []any{2.0}, s.Steps[1].Command.Params)
	assert.Equal(t, []any{"//field", "sendKeys", "abc", true}, s.Steps[2].Command.Params)
	assert.Equal(t, 7, s.Steps[0].Row)
}

func TestScript_LeadingAndStaysAnd(t *testing.T) {
	store, _ := ingest(t, Options{}, sheet.NewGrid("s", [][]any{
		{"script"}, {"", "F"}, {}, {},
		{"MethodName", "m"},
		{"And", "first", "ByName", "x"},
	}))

	assert.Equal(t, model.And, store.Features[0].Scenarios[0].Steps[0].Gherkin)
}

func TestScript_AndDoesNotCrossScenarios(t *testing.T) {
	store, _ := ingest(t, Options{}, sheet.NewGrid("s", [][]any{
		{"script"}, {"", "F"}, {}, {},
		{"MethodName", "a"},
		{"Then", "t", "ByName", "x"},
		{"MethodName", "b"},
		{"And", "first", "ByName", "y"},
	}))

	assert.Equal(t, model.And, store.Features[0].Scenarios[1].Steps[0].Gherkin)
}

func TestScript_Diagnostics(t *testing.T) {
	_, diags := ingest(t, Options{}, sheet.NewGrid("s", [][]any{
		{"script"}, {"", ""}, {}, {},
		{"Given", "orphan", "ByName", "x"},
		{"MethodComment", "too early"},
		{"MethodName", ""},
		{"Remark", "free text"},
	}))

	assert.Equal(t, []string{
		model.CodeMissingParam,
		model.CodeStepWithoutScenario,
		model.CodeRowSkipped,
		model.CodeMissingParam,
		model.CodeRowSkipped,
	}, codes(diags))

	d, ok := findDiag(diags, model.CodeStepWithoutScenario)
	require.True(t, ok)
	assert.Equal(t, model.SeverityWarning, d.Severity)
	assert.Equal(t, 5, d.Row)
}

func commonGrid(comment []any) *sheet.Grid {
	return sheet.NewGrid("common", [][]any{
		{"commonStep"},
		{"", "LoginUtil"},
		{"", "shared"},
		{"", "login"},
		{"MethodName", "doLogin"},
		comment,
		{"Step", "Command", "Params"},
		{"輸入密碼", "ByName", "pw", "sendKeys", "${password}"},
		{"送出", "ByName", "submit", "click"},
	})
}

func TestCommonStep_ParsesUtilClass(t *testing.T) {
	store, diags := ingest(t, Options{}, commonGrid([]any{"MethodComment", "登入", "noReset", true}))

	assert.Empty(t, diags)
	require.Len(t, store.Utils, 1)
	u := store.Utils[0]
	assert.Equal(t, "LoginUtil", u.Name)
	assert.Equal(t, "login", u.Package)

	require.Len(t, u.Methods, 1)
	m := u.Methods[0]
	assert.Equal(t, "doLogin", m.Name)
	assert.Equal(t, "登入", m.Description)
	assert.True(t, m.NoReset)
	assert.Equal(t, "LoginUtil", m.Class)
	assert.Equal(t, "login", m.Package)

	want := []model.Step{
		{Description: "輸入密碼", Command: model.Command{Type: "ByName", Params: []any{"pw", "sendKeys", "${password}"}}, Row: 8},
		{Description: "送出", Command: model.Command{Type: "ByName", Params: []any{"submit", "click"}}, Row: 9},
	}
	if diff := cmp.Diff(want, m.Steps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestCommonStep_NoResetFlag(t *testing.T) {
	tests := []struct {
		name    string
		comment []any
		def     bool
		want    bool
		dropped bool
	}{
		{"absent uses default false", []any{"MethodComment", "登入"}, false, false, false},
		{"absent uses default true", []any{"MethodComment", "登入"}, true, true, false},
		{"bool", []any{"MethodComment", "登入", "noReset", false}, true, false, false},
		{"text", []any{"MethodComment", "登入", "noReset", "TRUE"}, false, true, false},
		{"bad text", []any{"MethodComment", "登入", "noReset", "yes please"}, false, false, true},
		{"missing value", []any{"MethodComment", "登入", "noReset"}, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, diags := ingest(t, Options{NoResetDefault: tt.def}, commonGrid(tt.comment))
			assert.Equal(t, tt.want, store.Utils[0].Methods[0].NoReset)
			_, dropped := findDiag(diags, model.CodeValueDropped)
			assert.Equal(t, tt.dropped, dropped)
		})
	}
}

func TestCommonStep_StepBeforeMethod(t *testing.T) {
	store, diags := ingest(t, Options{}, sheet.NewGrid("utils", [][]any{
		{"utils"}, {"", "Util"}, {}, {},
		{"stray", "ByName", "x", "click"},
		{"MethodComment", "early"},
	}))

	assert.Empty(t, store.Utils[0].Methods)
	assert.Equal(t, []string{model.CodeStepWithoutMethod, model.CodeRowSkipped}, codes(diags))
}
