package profile

// Entry is a single launcher configuration key and its value.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

// Override is a user-supplied entry applied after all derived layers.
type Override = Entry

// Layer is a named group of entries derived from one part of the profile.
type Layer struct {
	Name    string
	Entries []Entry
}

// ConfigLayers returns the launcher configuration layers in precedence order:
// navigator, screen, locale, webgl, webrtc, then the profile's overrides.
func (p *Profile) ConfigLayers() []Layer {
	return []Layer{
		{Name: "navigator", Entries: p.Navigator.entries()},
		{Name: "screen", Entries: p.Screen.entries()},
		{Name: "locale", Entries: p.Locale.entries()},
		{Name: "webgl", Entries: p.WebGL.entries()},
		{Name: "webrtc", Entries: p.WebRTC.entries()},
		{Name: "overrides", Entries: p.Overrides},
	}
}

// Flatten applies layers in order. A key set by a later layer replaces the
// value from any earlier one.
func Flatten(layers []Layer) map[string]any {
	out := make(map[string]any)
	for _, l := range layers {
		for _, e := range l.Entries {
			out[e.Key] = e.Value
		}
	}
	return out
}

// LaunchConfig is the flattened key/value map consumed by browser launchers.
func (p *Profile) LaunchConfig() map[string]any {
	return Flatten(p.ConfigLayers())
}

// Prefs returns browser preferences that cannot be expressed as fingerprint
// keys.
func (p *Profile) Prefs() map[string]any {
	prefs := make(map[string]any)
	if p.WebRTC.Mode == WebRTCDisabled {
		prefs["media.peerconnection.enabled"] = false
	}
	if !p.WebGL.Enabled {
		prefs["webgl.disabled"] = true
	}
	return prefs
}

func (n NavigatorConfig) entries() []Entry {
	e := []Entry{
		{"navigator.hardwareConcurrency", n.HardwareConcurrency},
		{"navigator.maxTouchPoints", n.MaxTouchPoints},
	}
	if n.UserAgent != "" {
		e = append(e, Entry{"navigator.userAgent", n.UserAgent})
	}
	if n.Platform != "" {
		e = append(e, Entry{"navigator.platform", n.Platform})
	}
	if n.OSCPU != "" {
		e = append(e, Entry{"navigator.oscpu", n.OSCPU})
	}
	if len(n.Languages) > 0 {
		e = append(e,
			Entry{"navigator.languages", n.Languages},
			Entry{"navigator.language", n.Languages[0]},
		)
	}
	return e
}

func (s ScreenConfig) entries() []Entry {
	return []Entry{
		{"screen.width", s.Width},
		{"screen.height", s.Height},
		{"screen.availWidth", s.AvailWidth},
		{"screen.availHeight", s.AvailHeight},
		{"window.devicePixelRatio", s.DevicePixelRatio},
		{"screen.colorDepth", s.ColorDepth},
		{"screen.pixelDepth", s.ColorDepth},
	}
}

func (l LocaleConfig) entries() []Entry {
	return []Entry{
		{"locale:language", l.Language},
		{"locale:region", l.Region},
		{"timezone", l.Timezone},
	}
}

func (w WebGLConfig) entries() []Entry {
	var e []Entry
	if w.Vendor != "" {
		e = append(e, Entry{"webGl:vendor", w.Vendor})
	}
	if w.Renderer != "" {
		e = append(e, Entry{"webGl:renderer", w.Renderer})
	}
	return e
}

func (w WebRTCConfig) entries() []Entry {
	var e []Entry
	if w.SpoofIPv4 != "" {
		e = append(e, Entry{"webrtc:ipv4", w.SpoofIPv4})
	}
	if w.SpoofIPv6 != "" {
		e = append(e, Entry{"webrtc:ipv6", w.SpoofIPv6})
	}
	return e
}
