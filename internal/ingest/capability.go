package ingest

// Canonical capability names that sheets refer to by display label.
const (
	CapabilityApp             = "app"
	CapabilityAppiumVersion   = "appiumVersion"
	CapabilityDeviceName      = "deviceName"
	CapabilityPlatformVersion = "platformVersion"
	CapabilityNoReset         = "noReset"
)

// Row labels of the settings sheet that are not capabilities.
var (
	implicitWaitLabels = []string{"尋找元素等待時間", "implicitlyWait"}
	appiumURLLabels    = []string{"Appium伺服器", "appiumUrl"}
)

// capabilityLabels maps the localized settings labels to capability names.
var capabilityLabels = map[string]string{
	"App路徑":    CapabilityApp,
	"Appium版本": CapabilityAppiumVersion,
	"手機選項":     CapabilityDeviceName,
	"作業系統選項":   CapabilityPlatformVersion,
}

// mobileCapabilities lists the generic and iOS capability names the driver
// understands. A settings row labelled with one of them is taken verbatim.
var mobileCapabilities = map[string]bool{
	// generic
	"automationName":               true,
	"platformName":                 true,
	"platformVersion":              true,
	"deviceName":                   true,
	"app":                          true,
	"browserName":                  true,
	"newCommandTimeout":            true,
	"language":                     true,
	"locale":                       true,
	"udid":                         true,
	"orientation":                  true,
	"autoWebview":                  true,
	"noReset":                      true,
	"fullReset":                    true,
	"eventTimings":                 true,
	"enablePerformanceLogging":     true,
	"printPageSourceOnFindFailure": true,
	"appiumVersion":                true,
	"otherApps":                    true,
	"clearSystemFiles":             true,
	// iOS
	"calendarFormat":                   true,
	"bundleId":                         true,
	"launchTimeout":                    true,
	"locationServicesEnabled":          true,
	"locationServicesAuthorized":       true,
	"autoAcceptAlerts":                 true,
	"autoDismissAlerts":                true,
	"nativeInstrumentsLib":             true,
	"nativeWebTap":                     true,
	"safariInitialUrl":                 true,
	"safariAllowPopups":                true,
	"safariIgnoreFraudWarning":         true,
	"safariOpenLinksInBackground":      true,
	"keepKeyChains":                    true,
	"localizableStringsDir":            true,
	"processArguments":                 true,
	"interKeyDelay":                    true,
	"showIOSLog":                       true,
	"sendKeyStrategy":                  true,
	"screenshotWaitTimeout":            true,
	"waitForAppScript":                 true,
	"webviewConnectRetries":            true,
	"appName":                          true,
	"customSSLCert":                    true,
	"tapWithShortPressDuration":        true,
	"scaleFactor":                      true,
	"wdaLocalPort":                     true,
	"showXcodeLog":                     true,
	"iosInstallPause":                  true,
	"xcodeConfigFile":                  true,
	"keychainPassword":                 true,
	"usePrebuiltWDA":                   true,
	"preventWDAAttachments":            true,
	"webDriverAgentUrl":                true,
	"keychainPath":                     true,
	"useNewWDA":                        true,
	"wdaLaunchTimeout":                 true,
	"wdaConnectionTimeout":             true,
	"xcodeOrgId":                       true,
	"xcodeSigningId":                   true,
	"updatedWDABundleId":               true,
	"resetOnSessionStartOnly":          true,
	"commandTimeouts":                  true,
	"wdaStartupRetries":                true,
	"wdaStartupRetryInterval":          true,
	"connectHardwareKeyboard":          true,
	"maxTypingFrequency":               true,
	"simpleIsVisibleCheck":             true,
	"useCarthageSsl":                   true,
	"shouldUseSingletonTestManager":    true,
	"startIWDP":                        true,
	"allowTouchIdEnroll":               true,
	"ignoreHiddenApiPolicyError":       true,
	"xcodeDerivedDataPath":             true,
	"derivedDataPath":                  true,
	"realDeviceLogger":                 true,
	"iosSimulatorLogsPredicate":        true,
	"shouldTerminateApp":               true,
	"forceAppLaunch":                   true,
	"includeSafariInWebviews":          true,
	"waitForQuiescence":                true,
	"useJSONSource":                    true,
	"enableAsyncExecuteFromHttps":      true,
	"skipLogCapture":                   true,
	"showSafariConsoleLog":             true,
	"mjpegServerPort":                  true,
	"reduceMotion":                     true,
	"permissions":                      true,
	"isHeadless":                       true,
	"autoLaunch":                       true,
	"webkitResponseTimeout":            true,
	"absoluteWebLocations":             true,
	"simulatorStartupTimeout":          true,
	"simulatorTracePointer":            true,
	"simulatorWindowCenter":            true,
	"disableAutomaticScreenshots":      true,
	"shutdownOtherSimulators":          true,
	"enforceFreshSimulatorCreation":    true,
	"resultBundlePath":                 true,
	"resultBundleVersion":              true,
	"safariGarbageCollect":             true,
	"safariSocketChunkSize":            true,
	"safariWebInspectorMaxFrameLength": true,
	"additionalWebviewBundleIds":       true,
}

// IsMobileCapability reports whether name is a capability the driver knows.
func IsMobileCapability(name string) bool {
	return mobileCapabilities[name]
}

// CapabilityName returns the canonical capability name for a settings row
// label, with extra taking precedence over the built-in table.
func CapabilityName(label string, extra map[string]string) (string, bool) {
	if name, ok := extra[label]; ok && name != "" {
		return name, true
	}
	if name, ok := capabilityLabels[label]; ok {
		return name, true
	}
	if IsMobileCapability(label) {
		return label, true
	}
	return "", false
}
