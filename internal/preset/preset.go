// Package preset holds fully populated profiles built from captured
// real-world fingerprints.
package preset

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/stupside/fingerprint/internal/profile"
)

// ErrUnknownPreset is returned for identifiers outside the catalog.
var ErrUnknownPreset = errors.New("unknown preset")

// Metadata describes a preset without building it.
type Metadata struct {
	ID              string                `json:"id" yaml:"id"`
	Name            string                `json:"name" yaml:"name"`
	Description     string                `json:"description" yaml:"description"`
	TargetOS        profile.OS            `json:"target_os" yaml:"target_os"`
	BrowserFamily   profile.BrowserFamily `json:"browser_family" yaml:"browser_family"`
	SourceOSVersion string                `json:"source_os_version" yaml:"source_os_version"`
	CaptureDate     string                `json:"capture_date" yaml:"capture_date"`
}

// --- user agents ---

const (
	macOSUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:133.0) Gecko/20100101 Firefox/133.0"
	windows11UA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0"
	windows10UA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0"
	linuxUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0"
)

// --- screens ---

var (
	macOSRetinaScreen   = profile.ScreenConfig{Width: 1920, Height: 1080, AvailWidth: 1920, AvailHeight: 1055, DevicePixelRatio: 2.0, ColorDepth: 30}
	macOSStandardScreen = profile.ScreenConfig{Width: 1440, Height: 900, AvailWidth: 1440, AvailHeight: 875, DevicePixelRatio: 1.0, ColorDepth: 24}
	windowsScreen       = profile.ScreenConfig{Width: 1920, Height: 1080, AvailWidth: 1920, AvailHeight: 1040, DevicePixelRatio: 1.0, ColorDepth: 24}
	linuxScreen         = profile.ScreenConfig{Width: 1920, Height: 1080, AvailWidth: 1920, AvailHeight: 1053, DevicePixelRatio: 1.0, ColorDepth: 24}
)

// --- GPUs ---

var (
	appleM1WebGL       = profile.WebGLConfig{Enabled: true, Vendor: "Apple Inc.", Renderer: "Apple M1"}
	windowsNVIDIAWebGL = profile.WebGLConfig{Enabled: true, Vendor: "Google Inc. (NVIDIA)", Renderer: "ANGLE (NVIDIA, NVIDIA GeForce RTX 3060 Direct3D11 vs_5_0 ps_5_0, D3D11)"}
	windowsAMDWebGL    = profile.WebGLConfig{Enabled: true, Vendor: "Google Inc. (AMD)", Renderer: "ANGLE (AMD, AMD Radeon RX 580 Series Direct3D11 vs_5_0 ps_5_0, D3D11)"}
	windowsIntelWebGL  = profile.WebGLConfig{Enabled: true, Vendor: "Google Inc. (Intel)", Renderer: "ANGLE (Intel, Intel(R) UHD Graphics 630 Direct3D11 vs_5_0 ps_5_0, D3D11)"}
	linuxMesaWebGL     = profile.WebGLConfig{Enabled: true, Vendor: "Mesa", Renderer: "Mesa Intel(R) UHD Graphics 620 (KBL GT2)"}
)

func macOS(name string, screen profile.ScreenConfig) *profile.Profile {
	p := profile.New(name, profile.MacOS)
	p.Navigator = profile.NavigatorConfig{
		UserAgent:           macOSUserAgent,
		Platform:            "MacIntel",
		OSCPU:               "Intel Mac OS X 10.15",
		HardwareConcurrency: 8,
		Languages:           []string{"en-US", "en"},
	}
	p.Screen = screen
	p.Locale = profile.LocaleConfig{Language: "en", Region: "US", Timezone: "America/Los_Angeles"}
	p.WebGL = appleM1WebGL
	return p
}

// windows11 builds a Windows 11 profile; scale is the display scaling factor.
func windows11(name string, webgl profile.WebGLConfig, scale float64) *profile.Profile {
	p := profile.New(name, profile.Windows)
	p.Navigator = profile.NavigatorConfig{
		UserAgent:           windows11UA,
		Platform:            "Win32",
		OSCPU:               "Windows NT 10.0; Win64; x64",
		HardwareConcurrency: 8,
		Languages:           []string{"en-US", "en"},
	}
	p.Screen = windowsScreen
	p.Screen.DevicePixelRatio = scale
	p.Locale = profile.LocaleConfig{Language: "en", Region: "US", Timezone: "America/New_York"}
	p.WebGL = webgl
	return p
}

func windows10(name string) *profile.Profile {
	p := windows11(name, windowsNVIDIAWebGL, 1.0)
	p.Navigator.UserAgent = windows10UA
	return p
}

func linux(name string) *profile.Profile {
	p := profile.New(name, profile.Linux)
	p.Navigator = profile.NavigatorConfig{
		UserAgent:           linuxUserAgent,
		Platform:            "Linux x86_64",
		OSCPU:               "Linux x86_64",
		HardwareConcurrency: 4,
		Languages:           []string{"en-US", "en"},
	}
	p.Screen = linuxScreen
	p.Locale = profile.LocaleConfig{Language: "en", Region: "US", Timezone: "America/New_York"}
	p.WebGL = linuxMesaWebGL
	return p
}

type entry struct {
	meta  Metadata
	build func() *profile.Profile
}

var catalog = []entry{
	{
		meta: Metadata{
			ID:              "macos_apple_silicon",
			Name:            "macOS Apple Silicon (Retina)",
			Description:     "MacBook with Apple M1 chip and Retina display",
			TargetOS:        profile.MacOS,
			SourceOSVersion: "macOS 14.0 (Sonoma)",
		},
		build: func() *profile.Profile { return macOS("macOS Apple Silicon", macOSRetinaScreen) },
	},
	{
		meta: Metadata{
			ID:              "macos_apple_silicon_standard",
			Name:            "macOS Apple Silicon (Standard)",
			Description:     "MacBook with Apple M1 chip and standard display",
			TargetOS:        profile.MacOS,
			SourceOSVersion: "macOS 14.0 (Sonoma)",
		},
		build: func() *profile.Profile { return macOS("macOS Apple Silicon", macOSStandardScreen) },
	},
	{
		meta: Metadata{
			ID:              "windows_11",
			Name:            "Windows 11 (NVIDIA)",
			Description:     "Windows 11 with NVIDIA GPU",
			TargetOS:        profile.Windows,
			SourceOSVersion: "Windows 11 22H2",
		},
		build: func() *profile.Profile { return windows11("Windows 11", windowsNVIDIAWebGL, 1.0) },
	},
	{
		meta: Metadata{
			ID:              "windows_11_amd",
			Name:            "Windows 11 (AMD)",
			Description:     "Windows 11 with AMD GPU",
			TargetOS:        profile.Windows,
			SourceOSVersion: "Windows 11 22H2",
		},
		build: func() *profile.Profile { return windows11("Windows 11", windowsAMDWebGL, 1.0) },
	},
	{
		meta: Metadata{
			ID:              "windows_11_intel",
			Name:            "Windows 11 (Intel)",
			Description:     "Windows 11 with Intel integrated GPU",
			TargetOS:        profile.Windows,
			SourceOSVersion: "Windows 11 22H2",
		},
		build: func() *profile.Profile { return windows11("Windows 11", windowsIntelWebGL, 1.0) },
	},
	{
		meta: Metadata{
			ID:              "windows_10",
			Name:            "Windows 10",
			Description:     "Windows 10 with NVIDIA GPU",
			TargetOS:        profile.Windows,
			SourceOSVersion: "Windows 10 22H2",
		},
		build: func() *profile.Profile { return windows10("Windows 10") },
	},
	{
		meta: Metadata{
			ID:              "linux_desktop",
			Name:            "Linux Desktop",
			Description:     "Ubuntu-like Linux desktop with Intel GPU",
			TargetOS:        profile.Linux,
			SourceOSVersion: "Ubuntu 22.04",
		},
		build: func() *profile.Profile { return linux("Linux Desktop") },
	},
}

const captureDate = "2024-01"

var osDefaults = map[profile.OS]string{
	profile.MacOS:   "macos_apple_silicon",
	profile.Windows: "windows_11",
	profile.Linux:   "linux_desktop",
}

func init() {
	for i := range catalog {
		catalog[i].meta.BrowserFamily = profile.Firefox
		catalog[i].meta.CaptureDate = captureDate
	}
}

// IDs returns the preset identifiers in catalog order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, e := range catalog {
		ids[i] = e.meta.ID
	}
	return ids
}

// List returns the metadata of every preset in catalog order.
func List() []Metadata {
	out := make([]Metadata, len(catalog))
	for i, e := range catalog {
		out[i] = e.meta
	}
	return out
}

func lookup(id string) (entry, error) {
	i := slices.IndexFunc(catalog, func(e entry) bool { return e.meta.ID == id })
	if i < 0 {
		return entry{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPreset, id, strings.Join(IDs(), ", "))
	}
	return catalog[i], nil
}

// Describe returns the metadata of preset id.
func Describe(id string) (Metadata, error) {
	e, err := lookup(id)
	if err != nil {
		return Metadata{}, err
	}
	return e.meta, nil
}

// Get builds a fresh profile from preset id. Each call returns a new
// profile with its own id.
func Get(id string) (*profile.Profile, error) {
	e, err := lookup(id)
	if err != nil {
		return nil, err
	}
	return e.build(), nil
}

// ForOS builds the default preset for os.
func ForOS(os profile.OS) (*profile.Profile, error) {
	id, ok := osDefaults[os]
	if !ok {
		return nil, fmt.Errorf("%w: no preset for OS %q", ErrUnknownPreset, os)
	}
	return Get(id)
}
