package consistency

import (
	"errors"
	"fmt"

	"github.com/stupside/fingerprint/internal/profile"
)

var (
	// ErrUnknownOS is returned by lookups for an OS outside the catalog.
	ErrUnknownOS = errors.New("unknown target OS")
	// ErrUnknownRegion is returned for a region with no timezone expectation.
	ErrUnknownRegion = errors.New("unknown locale region")
)

var osPlatforms = map[profile.OS][]string{
	profile.MacOS:   {"MacIntel", "MacPPC", "Mac68K"},
	profile.Windows: {"Win32", "Win64"},
	profile.Linux:   {"Linux x86_64", "Linux i686", "Linux armv7l", "Linux aarch64"},
}

var osOSCPUPatterns = map[profile.OS][]string{
	profile.MacOS:   {"Intel Mac OS X", "Mac OS X"},
	profile.Windows: {"Windows NT"},
	profile.Linux:   {"Linux"},
}

var osUAPatterns = map[profile.OS][]string{
	profile.MacOS:   {"Macintosh", "Mac OS X"},
	profile.Windows: {"Windows NT"},
	profile.Linux:   {"Linux", "X11"},
}

// regionTimezones holds timezone prefixes plausible for a locale region.
var regionTimezones = map[string][]string{
	"US": {"America/"},
	"GB": {"Europe/London"},
	"DE": {"Europe/Berlin"},
	"FR": {"Europe/Paris"},
	"JP": {"Asia/Tokyo"},
	"CN": {"Asia/Shanghai", "Asia/Beijing"},
	"AU": {"Australia/"},
	"BR": {"America/Sao_Paulo"},
	"CA": {"America/Toronto", "America/Vancouver"},
}

var (
	macOSPixelRatios   = []float64{1.0, 2.0}
	windowsPixelRatios = []float64{1.0, 1.25, 1.5, 1.75, 2.0}
	colorDepths        = []int{24, 30, 32}
)

const (
	maxCoreCount    = 64
	minScreenWidth  = 800
	minScreenHeight = 600
)

// OSDefaults are the navigator values remediation fills in for an OS.
type OSDefaults struct {
	Platform  string
	OSCPU     string
	UAPattern string
}

var osDefaults = map[profile.OS]OSDefaults{
	profile.MacOS: {
		Platform:  "MacIntel",
		OSCPU:     "Intel Mac OS X 10.15",
		UAPattern: "Macintosh; Intel Mac OS X 10.15",
	},
	profile.Windows: {
		Platform:  "Win32",
		OSCPU:     "Windows NT 10.0; Win64; x64",
		UAPattern: "Windows NT 10.0; Win64; x64",
	},
	profile.Linux: {
		Platform:  "Linux x86_64",
		OSCPU:     "Linux x86_64",
		UAPattern: "X11; Linux x86_64",
	},
}

// ExpectedPlatforms returns the navigator.platform values allowed for os.
func ExpectedPlatforms(os profile.OS) ([]string, error) {
	v, ok := osPlatforms[os]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOS, os)
	}
	return v, nil
}

// ExpectedTimezones returns the timezone prefixes plausible for region.
func ExpectedTimezones(region string) ([]string, error) {
	v, ok := regionTimezones[region]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	return v, nil
}

// DefaultsFor returns the remediation defaults for os.
func DefaultsFor(os profile.OS) (OSDefaults, error) {
	v, ok := osDefaults[os]
	if !ok {
		return OSDefaults{}, fmt.Errorf("%w: %q", ErrUnknownOS, os)
	}
	return v, nil
}
