package launch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// settings are the values of a flattened launch config the browser needs
// at the CDP level. Overrides may carry any JSON type, so every read is
// tolerant of numeric kinds.
type settings struct {
	userAgent           string
	platform            string
	language            string
	languages           []string
	hardwareConcurrency int64
	maxTouchPoints      int64
	width               int64
	height              int64
	devicePixelRatio    float64
	timezone            string
	locale              string
}

func settingsFrom(config map[string]any) settings {
	s := settings{
		userAgent:           stringValue(config, "navigator.userAgent"),
		platform:            stringValue(config, "navigator.platform"),
		language:            stringValue(config, "navigator.language"),
		languages:           stringsValue(config, "navigator.languages"),
		hardwareConcurrency: intValue(config, "navigator.hardwareConcurrency"),
		maxTouchPoints:      intValue(config, "navigator.maxTouchPoints"),
		width:               intValue(config, "screen.width"),
		height:              intValue(config, "screen.height"),
		devicePixelRatio:    floatValue(config, "window.devicePixelRatio"),
		timezone:            stringValue(config, "timezone"),
	}

	lang, region := stringValue(config, "locale:language"), stringValue(config, "locale:region")
	switch {
	case lang != "" && region != "":
		s.locale = lang + "-" + region
	case lang != "":
		s.locale = lang
	default:
		s.locale = s.language
	}
	return s
}

// acceptLanguage renders languages as an Accept-Language header with
// descending quality values.
func (s settings) acceptLanguage() string {
	var b strings.Builder
	for i, l := range s.languages {
		if i == 0 {
			b.WriteString(l)
			continue
		}
		q := max(0.1, 1-0.1*float64(i))
		fmt.Fprintf(&b, ",%s;q=%s", l, strconv.FormatFloat(q, 'f', 1, 64))
	}
	return b.String()
}

func stringValue(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func floatValue(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	}
	return 0
}

func intValue(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	}
	return 0
}

func stringsValue(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
