package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullProfile() *Profile {
	p := New("Everything", MacOS)
	p.Notes = "hand built"
	p.Navigator = NavigatorConfig{
		UserAgent:           "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:133.0) Gecko/20100101 Firefox/133.0",
		Platform:            "MacIntel",
		OSCPU:               "Intel Mac OS X 10.15",
		HardwareConcurrency: 10,
		MaxTouchPoints:      0,
		Languages:           []string{"de-DE", "de", "en"},
	}
	p.Screen = ScreenConfig{Width: 2560, Height: 1600, AvailWidth: 2560, AvailHeight: 1575, DevicePixelRatio: 2.0, ColorDepth: 30}
	p.Locale = LocaleConfig{Language: "de", Region: "DE", Timezone: "Europe/Berlin"}
	p.WebGL = WebGLConfig{Enabled: true, Vendor: "Apple Inc.", Renderer: "Apple M2"}
	p.Proxy = ProxyConfig{Type: ProxySOCKS5, Server: "socks5://10.0.0.1:1080", Username: "user", Password: "secret"}
	p.WebRTC = WebRTCConfig{Mode: WebRTCProxyOnly, SpoofIPv4: "203.0.113.7", SpoofIPv6: "2001:db8::7"}
	p.Storage = StorageConfig{UserDataDir: "/tmp/fp", PersistentCookies: false}
	p.StartupURL = "https://example.com"
	p.StartupScript = "console.log('ready')"
	p.Overrides = []Override{
		{Key: "window.devicePixelRatio", Value: 1.5},
		{Key: "custom:flag", Value: true},
		{Key: "custom:name", Value: "x"},
		{Key: "screen.height", Value: 900},
		{Key: "navigator.languages", Value: []string{"fr-FR", "fr"}},
		{Key: "screen.colorDepth", Value: 24.0},
		{Key: "custom:unset", Value: nil},
	}
	return p
}

func TestNewDefaults(t *testing.T) {
	p := New("", "")

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, Windows, p.TargetOS)
	assert.Equal(t, Firefox, p.BrowserFamily)
	assert.Equal(t, SchemaVersion, p.Version)
	assert.Equal(t, 4, p.Navigator.HardwareConcurrency)
	assert.Equal(t, []string{"en-US", "en"}, p.Navigator.Languages)
	assert.Empty(t, p.Navigator.Platform)
	assert.Equal(t, ProxyNone, p.Proxy.Type)
	assert.Equal(t, WebRTCDefault, p.WebRTC.Mode)
	assert.True(t, p.WebGL.Enabled)
	assert.True(t, p.Storage.PersistentCookies)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestNewGeneratesDistinctIDs(t *testing.T) {
	assert.NotEqual(t, New("a", MacOS).ID, New("b", MacOS).ID)
}

func TestTouch(t *testing.T) {
	p := New("touch", Linux)
	created := p.CreatedAt

	p.Touch()

	assert.Equal(t, created, p.CreatedAt)
	assert.False(t, p.UpdatedAt.Before(created))
}

func TestClone(t *testing.T) {
	p := fullProfile()
	c := p.Clone()
	require.Equal(t, p, c)

	c.Navigator.Languages[0] = "fr-FR"
	c.Overrides[0].Value = 3.0

	assert.Equal(t, "de-DE", p.Navigator.Languages[0])
	assert.Equal(t, 1.5, p.Overrides[0].Value)
}

func TestPrimaryLanguage(t *testing.T) {
	assert.Equal(t, "en-US", NavigatorConfig{Languages: []string{"en-US", "en"}}.PrimaryLanguage())
	assert.Empty(t, NavigatorConfig{}.PrimaryLanguage())
}

func TestProxyEndpoint(t *testing.T) {
	assert.Nil(t, ProxyConfig{Type: ProxyNone, Server: "http://proxy:8080"}.Endpoint())
	assert.Nil(t, ProxyConfig{Type: ProxyHTTP}.Endpoint())

	ep := ProxyConfig{Type: ProxyHTTP, Server: "http://proxy.example.com:8080", Username: "user", Password: "pass"}.Endpoint()
	require.NotNil(t, ep)
	assert.Equal(t, "http://proxy.example.com:8080", ep.Server)
	assert.Equal(t, "user", ep.Username)
	assert.Equal(t, "pass", ep.Password)
}
