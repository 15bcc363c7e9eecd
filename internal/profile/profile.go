package profile

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is stamped on every new profile and bumped on breaking
// changes to the serialized record.
const SchemaVersion = "1.0.0"

// OS identifies the operating system a profile impersonates.
type OS string

const (
	MacOS   OS = "macos"
	Windows OS = "windows"
	Linux   OS = "linux"
)

// OSes lists the supported target operating systems.
var OSes = []OS{MacOS, Windows, Linux}

// BrowserFamily identifies the browser engine a profile targets.
type BrowserFamily string

const Firefox BrowserFamily = "firefox"

// ProxyType selects how traffic leaves the browser.
type ProxyType string

const (
	ProxyNone   ProxyType = "none"
	ProxyHTTP   ProxyType = "http"
	ProxySOCKS5 ProxyType = "socks5"
)

// WebRTCMode controls how WebRTC may expose local addresses.
type WebRTCMode string

const (
	WebRTCDisabled  WebRTCMode = "disabled"
	WebRTCProxyOnly WebRTCMode = "proxy_only"
	WebRTCDefault   WebRTCMode = "default"
)

// Profile is one named fingerprint identity. It exclusively owns all of its
// sub-records; copy it with Clone before handing it to another owner.
type Profile struct {
	ID        string    `json:"id" yaml:"id" validate:"required"`
	Name      string    `json:"name" yaml:"name"`
	Notes     string    `json:"notes" yaml:"notes"`
	Version   string    `json:"version" yaml:"version" validate:"required"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`

	TargetOS      OS            `json:"target_os" yaml:"target_os" validate:"oneof=macos windows linux"`
	BrowserFamily BrowserFamily `json:"browser_family" yaml:"browser_family" validate:"oneof=firefox"`

	Navigator NavigatorConfig `json:"navigator" yaml:"navigator"`
	Screen    ScreenConfig    `json:"screen" yaml:"screen"`
	Locale    LocaleConfig    `json:"locale" yaml:"locale"`
	WebGL     WebGLConfig     `json:"webgl" yaml:"webgl"`

	Proxy  ProxyConfig  `json:"proxy" yaml:"proxy"`
	WebRTC WebRTCConfig `json:"webrtc" yaml:"webrtc"`

	Storage StorageConfig `json:"storage" yaml:"storage"`

	StartupURL    string `json:"startup_url" yaml:"startup_url"`
	StartupScript string `json:"startup_script" yaml:"startup_script"`

	// Overrides are applied after every derived config layer, in order.
	Overrides []Override `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// NavigatorConfig mirrors the navigator.* surface a page can read.
type NavigatorConfig struct {
	UserAgent           string   `json:"user_agent" yaml:"user_agent"`
	Platform            string   `json:"platform" yaml:"platform"`
	OSCPU               string   `json:"oscpu" yaml:"oscpu"`
	HardwareConcurrency int      `json:"hardware_concurrency" yaml:"hardware_concurrency"`
	MaxTouchPoints      int      `json:"max_touch_points" yaml:"max_touch_points"`
	Languages           []string `json:"languages" yaml:"languages"`
}

// PrimaryLanguage returns the first language tag, or "" when none is set.
func (n NavigatorConfig) PrimaryLanguage() string {
	if len(n.Languages) == 0 {
		return ""
	}
	return n.Languages[0]
}

// ScreenConfig holds screen geometry in CSS pixels.
type ScreenConfig struct {
	Width            int     `json:"width" yaml:"width"`
	Height           int     `json:"height" yaml:"height"`
	AvailWidth       int     `json:"avail_width" yaml:"avail_width"`
	AvailHeight      int     `json:"avail_height" yaml:"avail_height"`
	DevicePixelRatio float64 `json:"device_pixel_ratio" yaml:"device_pixel_ratio"`
	ColorDepth       int     `json:"color_depth" yaml:"color_depth"`
}

// LocaleConfig holds the language, ISO region and IANA timezone.
type LocaleConfig struct {
	Language string `json:"language" yaml:"language"`
	Region   string `json:"region" yaml:"region"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

// WebGLConfig holds the unmasked WebGL identity strings.
type WebGLConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Vendor   string `json:"vendor" yaml:"vendor"`
	Renderer string `json:"renderer" yaml:"renderer"`
}

// ProxyConfig describes the upstream proxy, if any.
type ProxyConfig struct {
	Type     ProxyType `json:"type" yaml:"type" validate:"oneof=none http socks5"`
	Server   string    `json:"server" yaml:"server"`
	Username string    `json:"username,omitempty" yaml:"username,omitempty"`
	Password string    `json:"password,omitempty" yaml:"password,omitempty"`
}

// Configured reports whether traffic is actually routed through a proxy.
func (p ProxyConfig) Configured() bool {
	return p.Type != ProxyNone && p.Server != ""
}

// Endpoint is the proxy as handed to a browser launcher.
type Endpoint struct {
	Server   string
	Username string
	Password string
}

// Endpoint returns nil when no proxy is configured.
func (p ProxyConfig) Endpoint() *Endpoint {
	if !p.Configured() {
		return nil
	}
	return &Endpoint{Server: p.Server, Username: p.Username, Password: p.Password}
}

// WebRTCConfig controls WebRTC exposure and optional address spoofing.
type WebRTCConfig struct {
	Mode      WebRTCMode `json:"mode" yaml:"mode" validate:"oneof=disabled proxy_only default"`
	SpoofIPv4 string     `json:"spoof_ipv4,omitempty" yaml:"spoof_ipv4,omitempty"`
	SpoofIPv6 string     `json:"spoof_ipv6,omitempty" yaml:"spoof_ipv6,omitempty"`
}

// StorageConfig controls browser state persistence.
type StorageConfig struct {
	UserDataDir       string `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	PersistentCookies bool   `json:"persistent_cookies" yaml:"persistent_cookies"`
}

// New returns a profile populated with the stock defaults. An empty os
// targets Windows.
func New(name string, os OS) *Profile {
	if os == "" {
		os = Windows
	}
	now := time.Now().UTC()
	return &Profile{
		ID:            uuid.NewString(),
		Name:          name,
		Version:       SchemaVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
		TargetOS:      os,
		BrowserFamily: Firefox,
		Navigator: NavigatorConfig{
			HardwareConcurrency: 4,
			Languages:           []string{"en-US", "en"},
		},
		Screen: ScreenConfig{
			Width:            1920,
			Height:           1080,
			AvailWidth:       1920,
			AvailHeight:      1040,
			DevicePixelRatio: 1.0,
			ColorDepth:       24,
		},
		Locale: LocaleConfig{
			Language: "en",
			Region:   "US",
			Timezone: "America/New_York",
		},
		WebGL:   WebGLConfig{Enabled: true},
		Proxy:   ProxyConfig{Type: ProxyNone},
		WebRTC:  WebRTCConfig{Mode: WebRTCDefault},
		Storage: StorageConfig{PersistentCookies: true},
	}
}

// Touch refreshes UpdatedAt.
func (p *Profile) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy that shares no slices with p.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Navigator.Languages = slices.Clone(p.Navigator.Languages)
	c.Overrides = slices.Clone(p.Overrides)
	return &c
}
