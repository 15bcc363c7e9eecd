package launch

import (
	"context"
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/stupside/fingerprint/internal/profile"
)

//go:embed js/cloak.js
var cloakJS string

//go:embed js/properties.js
var propertiesJS string

//go:embed js/webgl.js
var webGLJS string

//go:embed js/webrtc_block.js
var webRTCBlockJS string

//go:embed js/webrtc_relay.js
var webRTCRelayJS string

// propertyScopes are the config key prefixes applied as JS property getters.
var propertyScopes = []string{"navigator", "screen", "window"}

// properties groups dotted config keys by scope: "screen.width" becomes
// properties["screen"]["width"].
func properties(config map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any)
	for key, value := range config {
		scope, name, ok := strings.Cut(key, ".")
		if !ok || name == "" || !slices.Contains(propertyScopes, scope) {
			continue
		}
		if out[scope] == nil {
			out[scope] = make(map[string]any)
		}
		out[scope][name] = value
	}
	return out
}

func jsLiteral(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// buildScript joins the snippets needed for a launch config and fills their
// placeholders. mode and prefs select the WebRTC and WebGL handling.
func buildScript(config map[string]any, mode profile.WebRTCMode, prefs map[string]any) string {
	snippets := []string{cloakJS}

	snippets = append(snippets, strings.NewReplacer(
		"__PROPERTIES__", jsLiteral(properties(config)),
	).Replace(propertiesJS))

	webglOff, _ := prefs["webgl.disabled"].(bool)
	vendor, hasVendor := config["webGl:vendor"]
	renderer, hasRenderer := config["webGl:renderer"]
	if !webglOff && (hasVendor || hasRenderer) {
		snippets = append(snippets, strings.NewReplacer(
			"__WEBGL_VENDOR__", jsLiteral(vendor),
			"__WEBGL_RENDERER__", jsLiteral(renderer),
		).Replace(webGLJS))
	}

	if enabled, ok := prefs["media.peerconnection.enabled"].(bool); ok && !enabled {
		snippets = append(snippets, webRTCBlockJS)
	} else if mode == profile.WebRTCProxyOnly {
		snippets = append(snippets, webRTCRelayJS)
	}

	return strings.Join(snippets, "\n")
}

// injectScript registers js to run before any page script in every new
// document.
func injectScript(js string) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(js).Do(ctx)
		return err
	}
}
