package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	p := fullProfile()

	data, err := Encode(p)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestYAMLRoundTrip(t *testing.T) {
	p := fullProfile()

	data, err := EncodeYAML(p)
	require.NoError(t, err)

	got, err := DecodeYAML(data)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestDecodePartialRecord(t *testing.T) {
	data := []byte(`{
		"name": "From Dict",
		"target_os": "linux",
		"navigator": {
			"user_agent": "Linux UA",
			"platform": "Linux x86_64",
			"hardware_concurrency": 4
		},
		"screen": {
			"width": 1920,
			"height": 1080
		}
	}`)

	p, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "From Dict", p.Name)
	assert.Equal(t, Linux, p.TargetOS)
	assert.Equal(t, "Linux UA", p.Navigator.UserAgent)

	// Absent fields take the stock defaults.
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, SchemaVersion, p.Version)
	assert.Equal(t, Firefox, p.BrowserFamily)
	assert.Equal(t, []string{"en-US", "en"}, p.Navigator.Languages)
	assert.Equal(t, ScreenConfig{Width: 1920, Height: 1080, AvailWidth: 1920, AvailHeight: 1040, DevicePixelRatio: 1.0, ColorDepth: 24}, p.Screen)
	assert.Equal(t, ProxyNone, p.Proxy.Type)
	assert.Equal(t, WebRTCDefault, p.WebRTC.Mode)
	assert.True(t, p.WebGL.Enabled)
	assert.True(t, p.Storage.PersistentCookies)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestDecodePartialYAMLRecord(t *testing.T) {
	p, err := DecodeYAML([]byte("id: kept\nname: From YAML\ntarget_os: macos\nwebgl:\n  enabled: false\n"))
	require.NoError(t, err)
	assert.Equal(t, "kept", p.ID)
	assert.Equal(t, MacOS, p.TargetOS)
	assert.False(t, p.WebGL.Enabled)
	assert.Equal(t, 1920, p.Screen.AvailWidth)
	assert.Equal(t, ProxyNone, p.Proxy.Type)
}

func TestDecodeRecordsGetDistinctIDs(t *testing.T) {
	a, err := Decode([]byte(`{"name":"a"}`))
	require.NoError(t, err)
	b, err := Decode([]byte(`{"name":"b"}`))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestOverrideValueTypesRoundTrip(t *testing.T) {
	p := New("typed", Linux)
	p.Overrides = []Override{
		{Key: "screen.height", Value: 900},
		{Key: "navigator.languages", Value: []string{"fr"}},
		{Key: "window.devicePixelRatio", Value: 2.0},
		{Key: "window.scale", Value: 1.25},
		{Key: "custom:nested", Value: map[string]any{"n": 3, "tags": []string{"a"}}},
	}

	data, err := Encode(p)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p.Overrides, got.Overrides)

	data, err = EncodeYAML(p)
	require.NoError(t, err)
	got, err = DecodeYAML(data)
	require.NoError(t, err)
	assert.Equal(t, p.Overrides, got.Overrides)
}

func TestOverrideValuesFromHandWrittenRecords(t *testing.T) {
	p, err := Decode([]byte(`{"overrides":[
		{"key":"a","value":12},
		{"key":"b","value":12.5},
		{"key":"c","value":["x","y"]},
		{"key":"d","value":[1,"x"]}
	]}`))
	require.NoError(t, err)

	assert.Equal(t, []Override{
		{Key: "a", Value: 12},
		{Key: "b", Value: 12.5},
		{Key: "c", Value: []string{"x", "y"}},
		{Key: "d", Value: []any{1, "x"}},
	}, p.Overrides)
}

func TestEmptyOverridesAreOmitted(t *testing.T) {
	p := New("no overrides", Windows)
	p.Overrides = []Override{}

	data, err := Encode(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "overrides")
	fromJSON, err := Decode(data)
	require.NoError(t, err)

	data, err = EncodeYAML(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "overrides")
	fromYAML, err := DecodeYAML(data)
	require.NoError(t, err)

	assert.Nil(t, fromJSON.Overrides)
	assert.Equal(t, fromJSON.Overrides, fromYAML.Overrides)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"id": `},
		{"empty id", `{"id":"","target_os":"linux"}`},
		{"empty version", `{"id":"x","version":""}`},
		{"unknown os", `{"id":"x","version":"1.0.0","target_os":"beos","browser_family":"firefox","proxy":{"type":"none"},"webrtc":{"mode":"default"}}`},
		{"unknown proxy", `{"id":"x","version":"1.0.0","target_os":"linux","browser_family":"firefox","proxy":{"type":"ftp"},"webrtc":{"mode":"default"}}`},
		{"wrong type", `{"id":"x","version":"1.0.0","target_os":"linux","screen":{"width":"wide"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestCheckShapeIgnoresValueContradictions(t *testing.T) {
	p := New("zero cores", MacOS)
	p.Navigator.HardwareConcurrency = 0
	p.Navigator.Platform = "Win32"

	assert.NoError(t, CheckShape(p))
	assert.ErrorIs(t, CheckShape(nil), ErrMalformed)
}
