package consistency

import (
	"fmt"
	"slices"
	"strings"

	"github.com/stupside/fingerprint/internal/profile"
)

// Rule inspects a profile and reports at most one issue. Rules never mutate
// the profile and never depend on each other's results.
type Rule interface {
	Code() string
	Check(p *profile.Profile) *Issue
}

type ruleFunc struct {
	code  string
	check func(p *profile.Profile) *Issue
}

func (r ruleFunc) Code() string                    { return r.code }
func (r ruleFunc) Check(p *profile.Profile) *Issue { return r.check(p) }

var catalog = []Rule{
	ruleFunc{CodeOSPlatformMismatch, checkPlatform},
	ruleFunc{CodeOSOSCPUMismatch, checkOSCPU},
	ruleFunc{CodeOSUAMismatch, checkUserAgent},
	ruleFunc{CodeTimezoneRegionMismatch, checkTimezone},
	ruleFunc{CodeMacOSDPRUnusual, checkMacOSPixelRatio},
	ruleFunc{CodeWindowsDPRUnusual, checkWindowsPixelRatio},
	ruleFunc{CodeWebGLOSMismatch, checkWebGL},
	ruleFunc{CodeMacOSTouchUnusual, checkMacOSTouch},
	ruleFunc{CodeWebRTCProxyLeak, checkWebRTCLeak},
	ruleFunc{CodeColorDepthUnusual, checkColorDepth},
	ruleFunc{CodeInvalidCoreCount, checkMinCores},
	ruleFunc{CodeHighCoreCount, checkMaxCores},
	ruleFunc{CodeSmallScreen, checkScreenSize},
	ruleFunc{CodeInvalidAvailDimensions, checkAvailDimensions},
}

// Catalog returns the rules in execution order.
func Catalog() []Rule {
	return slices.Clone(catalog)
}

func containsAny(s string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(p string) bool {
		return strings.Contains(s, p)
	})
}

func checkPlatform(p *profile.Profile) *Issue {
	platform := p.Navigator.Platform
	expected := osPlatforms[p.TargetOS]
	if platform == "" || slices.Contains(expected, platform) {
		return nil
	}
	return &Issue{
		Level:      LevelError,
		Code:       CodeOSPlatformMismatch,
		Message:    fmt.Sprintf("Platform '%s' does not match target OS '%s'", platform, p.TargetOS),
		Field:      "navigator.platform",
		Suggestion: "Use one of: " + strings.Join(expected, ", "),
	}
}

func checkOSCPU(p *profile.Profile) *Issue {
	oscpu := p.Navigator.OSCPU
	expected := osOSCPUPatterns[p.TargetOS]
	if oscpu == "" || containsAny(oscpu, expected) {
		return nil
	}
	return &Issue{
		Level:      LevelError,
		Code:       CodeOSOSCPUMismatch,
		Message:    fmt.Sprintf("oscpu '%s' does not match target OS '%s'", oscpu, p.TargetOS),
		Field:      "navigator.oscpu",
		Suggestion: "oscpu should contain one of: " + strings.Join(expected, ", "),
	}
}

func checkUserAgent(p *profile.Profile) *Issue {
	ua := p.Navigator.UserAgent
	expected := osUAPatterns[p.TargetOS]
	if ua == "" || containsAny(ua, expected) {
		return nil
	}
	return &Issue{
		Level:      LevelError,
		Code:       CodeOSUAMismatch,
		Message:    fmt.Sprintf("User-Agent does not contain expected patterns for '%s'", p.TargetOS),
		Field:      "navigator.user_agent",
		Suggestion: "User-Agent should contain one of: " + strings.Join(expected, ", "),
	}
}

func checkTimezone(p *profile.Profile) *Issue {
	region, tz := p.Locale.Region, p.Locale.Timezone
	prefixes := regionTimezones[region]
	if len(prefixes) == 0 || tz == "" {
		return nil
	}
	if slices.ContainsFunc(prefixes, func(prefix string) bool { return strings.HasPrefix(tz, prefix) }) {
		return nil
	}
	return &Issue{
		Level:      LevelWarning,
		Code:       CodeTimezoneRegionMismatch,
		Message:    fmt.Sprintf("Timezone '%s' may not match region '%s'", tz, region),
		Field:      "locale.timezone",
		Suggestion: "Consider using a timezone starting with: " + strings.Join(prefixes, ", "),
	}
}

func checkMacOSPixelRatio(p *profile.Profile) *Issue {
	dpr := p.Screen.DevicePixelRatio
	if p.TargetOS != profile.MacOS || slices.Contains(macOSPixelRatios, dpr) {
		return nil
	}
	return &Issue{
		Level:      LevelWarning,
		Code:       CodeMacOSDPRUnusual,
		Message:    fmt.Sprintf("Device pixel ratio %g is unusual for macOS", dpr),
		Field:      "screen.device_pixel_ratio",
		Suggestion: "macOS typically uses 1.0 (standard) or 2.0 (Retina)",
	}
}

func checkWindowsPixelRatio(p *profile.Profile) *Issue {
	dpr := p.Screen.DevicePixelRatio
	if p.TargetOS != profile.Windows || slices.Contains(windowsPixelRatios, dpr) {
		return nil
	}
	return &Issue{
		Level:      LevelInfo,
		Code:       CodeWindowsDPRUnusual,
		Message:    fmt.Sprintf("Device pixel ratio %g is unusual for Windows", dpr),
		Field:      "screen.device_pixel_ratio",
		Suggestion: "Windows typically uses 1.0, 1.25, 1.5, 1.75, or 2.0",
	}
}

func hasDirect3D(renderer string) bool {
	return strings.Contains(renderer, "direct3d") || strings.Contains(renderer, "d3d")
}

func checkWebGL(p *profile.Profile) *Issue {
	if !p.WebGL.Enabled {
		return nil
	}
	vendor := strings.ToLower(p.WebGL.Vendor)
	renderer := strings.ToLower(p.WebGL.Renderer)

	var message, suggestion string
	switch p.TargetOS {
	case profile.MacOS:
		// ANGLE behind a Google vendor string wraps Direct3D.
		angle := strings.HasPrefix(vendor, "google inc") && strings.Contains(renderer, "angle")
		if !hasDirect3D(renderer) && !angle {
			return nil
		}
		message = "Direct3D/ANGLE renderer detected with macOS target"
		suggestion = "macOS typically uses Apple GPU or OpenGL renderers"
	case profile.Windows:
		if !strings.HasPrefix(vendor, "apple") || !strings.HasPrefix(renderer, "apple") {
			return nil
		}
		message = "Apple renderer detected with Windows target"
		suggestion = "Windows typically uses ANGLE (Direct3D) or native GPU renderers"
	case profile.Linux:
		if !hasDirect3D(renderer) {
			return nil
		}
		message = "Direct3D renderer detected with Linux target"
		suggestion = "Linux typically uses Mesa or native OpenGL renderers"
	default:
		return nil
	}
	return &Issue{
		Level:      LevelError,
		Code:       CodeWebGLOSMismatch,
		Message:    message,
		Field:      "webgl.renderer",
		Suggestion: suggestion,
	}
}

func checkMacOSTouch(p *profile.Profile) *Issue {
	points := p.Navigator.MaxTouchPoints
	if p.TargetOS != profile.MacOS || points <= 0 {
		return nil
	}
	return &Issue{
		Level:      LevelWarning,
		Code:       CodeMacOSTouchUnusual,
		Message:    fmt.Sprintf("maxTouchPoints=%d is unusual for macOS", points),
		Field:      "navigator.max_touch_points",
		Suggestion: "macOS devices typically report 0 touch points",
	}
}

func checkWebRTCLeak(p *profile.Profile) *Issue {
	if !p.Proxy.Configured() || p.WebRTC.Mode != profile.WebRTCDefault {
		return nil
	}
	return &Issue{
		Level:      LevelWarning,
		Code:       CodeWebRTCProxyLeak,
		Message:    "WebRTC is enabled with proxy but mode is 'default'",
		Field:      "webrtc.mode",
		Suggestion: "Consider setting webrtc.mode to 'disabled' or 'proxy_only' to prevent IP leaks",
	}
}

func checkColorDepth(p *profile.Profile) *Issue {
	depth := p.Screen.ColorDepth
	if slices.Contains(colorDepths, depth) {
		return nil
	}
	return &Issue{
		Level:      LevelInfo,
		Code:       CodeColorDepthUnusual,
		Message:    fmt.Sprintf("Color depth %d is unusual", depth),
		Field:      "screen.color_depth",
		Suggestion: "Common values are 24, 30, or 32 bits",
	}
}

func checkMinCores(p *profile.Profile) *Issue {
	if p.Navigator.HardwareConcurrency >= 1 {
		return nil
	}
	return &Issue{
		Level:      LevelError,
		Code:       CodeInvalidCoreCount,
		Message:    "Hardware concurrency must be at least 1",
		Field:      "navigator.hardware_concurrency",
		Suggestion: "Set to a value between 2 and 16",
	}
}

func checkMaxCores(p *profile.Profile) *Issue {
	cores := p.Navigator.HardwareConcurrency
	if cores <= maxCoreCount {
		return nil
	}
	return &Issue{
		Level:      LevelWarning,
		Code:       CodeHighCoreCount,
		Message:    fmt.Sprintf("Hardware concurrency %d is unusually high", cores),
		Field:      "navigator.hardware_concurrency",
		Suggestion: "Most consumer devices have 2-16 cores",
	}
}

func checkScreenSize(p *profile.Profile) *Issue {
	s := p.Screen
	if s.Width >= minScreenWidth && s.Height >= minScreenHeight {
		return nil
	}
	return &Issue{
		Level:      LevelWarning,
		Code:       CodeSmallScreen,
		Message:    fmt.Sprintf("Screen resolution %dx%d is very small", s.Width, s.Height),
		Field:      "screen.width/height",
		Suggestion: "Most desktop browsers use at least 1280x720",
	}
}

func checkAvailDimensions(p *profile.Profile) *Issue {
	s := p.Screen
	if s.AvailWidth <= s.Width && s.AvailHeight <= s.Height {
		return nil
	}
	return &Issue{
		Level:      LevelError,
		Code:       CodeInvalidAvailDimensions,
		Message:    "Available dimensions exceed total screen dimensions",
		Field:      "screen.availWidth/availHeight",
		Suggestion: "Available dimensions must be less than or equal to total dimensions",
	}
}
