package consistency

import "github.com/stupside/fingerprint/internal/profile"

// EnforceOSConsistency fills an empty navigator.platform and navigator.oscpu
// from the defaults of p.TargetOS and returns p. Populated fields are never
// overwritten, and nothing else is touched; re-run Validate afterwards.
// Profiles with an unknown target OS are returned unchanged.
//
// It mutates p without locking.
func EnforceOSConsistency(p *profile.Profile) *profile.Profile {
	defaults, err := DefaultsFor(p.TargetOS)
	if err != nil {
		return p
	}
	if p.Navigator.Platform == "" {
		p.Navigator.Platform = defaults.Platform
	}
	if p.Navigator.OSCPU == "" {
		p.Navigator.OSCPU = defaults.OSCPU
	}
	return p
}
