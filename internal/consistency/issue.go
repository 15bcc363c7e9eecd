package consistency

// Level is the severity of an Issue.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// rank orders levels INFO < WARNING < ERROR.
func (l Level) rank() int {
	switch l {
	case LevelError:
		return 3
	case LevelWarning:
		return 2
	case LevelInfo:
		return 1
	}
	return 0
}

// Outranks reports whether l is strictly more severe than other.
func (l Level) Outranks(other Level) bool {
	return l.rank() > other.rank()
}

// Issue codes, one per rule.
const (
	CodeOSPlatformMismatch     = "OS_PLATFORM_MISMATCH"
	CodeOSOSCPUMismatch        = "OS_OSCPU_MISMATCH"
	CodeOSUAMismatch           = "OS_UA_MISMATCH"
	CodeTimezoneRegionMismatch = "TIMEZONE_REGION_MISMATCH"
	CodeMacOSDPRUnusual        = "MACOS_DPR_UNUSUAL"
	CodeWindowsDPRUnusual      = "WINDOWS_DPR_UNUSUAL"
	CodeWebGLOSMismatch        = "WEBGL_OS_MISMATCH"
	CodeMacOSTouchUnusual      = "MACOS_TOUCH_UNUSUAL"
	CodeWebRTCProxyLeak        = "WEBRTC_PROXY_LEAK"
	CodeColorDepthUnusual      = "COLOR_DEPTH_UNUSUAL"
	CodeInvalidCoreCount       = "INVALID_CORE_COUNT"
	CodeHighCoreCount          = "HIGH_CORE_COUNT"
	CodeSmallScreen            = "SMALL_SCREEN"
	CodeInvalidAvailDimensions = "INVALID_AVAIL_DIMENSIONS"
)

// Issue is a single detected contradiction. Rules create issues; nothing
// mutates them afterwards.
type Issue struct {
	Level      Level  `json:"level"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field"`
	Suggestion string `json:"suggestion"`
}
