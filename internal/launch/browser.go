// Package launch starts a Chromium browser that presents a profile's
// fingerprint. It consumes only the profile's derived configuration and
// never validates it.
package launch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/stupside/fingerprint/internal/app"
	"github.com/stupside/fingerprint/internal/profile"
)

const blankURL = "about:blank"

// flags returns the Chromium command-line switches for p. Boolean switches
// set to true are passed bare.
func flags(cfg app.BrowserConfig, p *profile.Profile) map[string]any {
	s := settingsFrom(p.LaunchConfig())
	prefs := p.Prefs()

	f := map[string]any{
		"no-first-run":             true,
		"no-default-browser-check": true,
		"disable-blink-features":   "AutomationControlled",
		"disable-infobars":         true,
	}

	if cfg.Headless {
		f["headless"] = "new"
	}
	if cfg.NoSandbox {
		f["no-sandbox"] = true
	}

	if s.width > 0 && s.height > 0 {
		f["window-size"] = fmt.Sprintf("%d,%d", s.width, s.height)
	}
	if s.userAgent != "" {
		f["user-agent"] = s.userAgent
	}
	if s.locale != "" {
		f["lang"] = s.locale
	}

	if ep := p.Proxy.Endpoint(); ep != nil {
		f["proxy-server"] = ep.Server
	}

	if dir := p.Storage.UserDataDir; dir != "" {
		f["user-data-dir"] = dir
	} else if !p.Storage.PersistentCookies {
		f["incognito"] = true
	}

	switch p.WebRTC.Mode {
	case profile.WebRTCDisabled, profile.WebRTCProxyOnly:
		f["webrtc-ip-handling-policy"] = "disable_non_proxied_udp"
		f["force-webrtc-ip-handling-policy"] = true
	}

	if off, _ := prefs["webgl.disabled"].(bool); off {
		f["disable-webgl"] = true
		f["disable-3d-apis"] = true
	}

	return f
}

func allocatorOpts(cfg app.BrowserConfig, p *profile.Profile) []chromedp.ExecAllocatorOption {
	var opts []chromedp.ExecAllocatorOption
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}
	for name, value := range flags(cfg, p) {
		opts = append(opts, chromedp.Flag(name, value))
	}
	return opts
}

// emulate applies the CDP-level overrides that scripts cannot cover.
func emulate(s settings) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		if err := emulation.SetAutomationOverride(false).Do(ctx); err != nil {
			return err
		}

		if s.hardwareConcurrency > 0 {
			if err := emulation.SetHardwareConcurrencyOverride(s.hardwareConcurrency).Do(ctx); err != nil {
				return err
			}
		}

		if s.timezone != "" {
			if err := emulation.SetTimezoneOverride(s.timezone).Do(ctx); err != nil {
				return err
			}
		}

		if s.locale != "" {
			if err := emulation.SetLocaleOverride().WithLocale(s.locale).Do(ctx); err != nil {
				return err
			}
		}

		if s.width > 0 && s.height > 0 {
			metrics := emulation.SetDeviceMetricsOverride(s.width, s.height, s.devicePixelRatio, false).
				WithScreenWidth(s.width).
				WithScreenHeight(s.height)
			if err := metrics.Do(ctx); err != nil {
				return err
			}
		}

		if s.maxTouchPoints > 0 {
			if err := emulation.SetTouchEmulationEnabled(true).WithMaxTouchPoints(s.maxTouchPoints).Do(ctx); err != nil {
				return err
			}
		}

		if s.userAgent == "" {
			return nil
		}
		ua := emulation.SetUserAgentOverride(s.userAgent)
		ua.AcceptLanguage = s.acceptLanguage()
		ua.Platform = s.platform
		return ua.Do(ctx)
	}
}

// answerProxyAuth supplies proxy credentials whenever the browser is
// challenged. Paused requests are resumed untouched.
func answerProxyAuth(ctx context.Context, ep *profile.Endpoint) {
	chromedp.ListenTarget(ctx, func(ev any) {
		switch e := ev.(type) {
		case *fetch.EventRequestPaused:
			go func() {
				if err := chromedp.Run(ctx, fetch.ContinueRequest(e.RequestID)); err != nil {
					slog.DebugContext(ctx, "continue request failed", "error", err)
				}
			}()
		case *fetch.EventAuthRequired:
			if e.AuthChallenge.Source != fetch.AuthChallengeSourceProxy {
				return
			}
			go func() {
				resp := &fetch.AuthChallengeResponse{
					Response: fetch.AuthChallengeResponseResponseProvideCredentials,
					Username: ep.Username,
					Password: ep.Password,
				}
				if err := chromedp.Run(ctx, fetch.ContinueWithAuth(e.RequestID, resp)); err != nil {
					slog.DebugContext(ctx, "proxy auth failed", "error", err)
				}
			}()
		}
	})
}

func startURL(p *profile.Profile) string {
	if p.StartupURL != "" {
		return p.StartupURL
	}
	return blankURL
}

// Run starts a browser for p, navigates to its startup URL, runs its startup
// script and blocks until ctx is cancelled or the browser goes away.
// cfg.Timeout bounds the initial navigation only.
func Run(ctx context.Context, cfg app.BrowserConfig, p *profile.Profile) error {
	config := p.LaunchConfig()
	s := settingsFrom(config)
	script := buildScript(config, p.WebRTC.Mode, p.Prefs())

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOpts(cfg, p)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	actions := []chromedp.Action{runtime.Enable()}
	if ep := p.Proxy.Endpoint(); ep != nil && ep.Username != "" {
		answerProxyAuth(taskCtx, ep)
		actions = append(actions, fetch.Enable().WithHandleAuthRequests(true))
	}
	actions = append(actions,
		injectScript(script),
		emulate(s),
		chromedp.Navigate(startURL(p)),
	)

	slog.DebugContext(ctx, "launching browser",
		"profile", p.ID,
		"ua", s.userAgent,
		"screen", fmt.Sprintf("%dx%d@%g", s.width, s.height, s.devicePixelRatio),
		"timezone", s.timezone,
		"locale", s.locale,
		"webrtc", p.WebRTC.Mode,
	)

	// Navigate on the task context itself; a child context with a deadline
	// would tear the target down when it expires.
	navDone := make(chan error, 1)
	go func() {
		navDone <- chromedp.Run(taskCtx, actions...)
	}()

	var timeout <-chan time.Time
	if cfg.Timeout > 0 {
		timer := time.NewTimer(cfg.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case err := <-navDone:
		if err != nil {
			return fmt.Errorf("launching profile %s: %w", p.ID, err)
		}
	case <-timeout:
		return fmt.Errorf("launching profile %s: navigation timed out after %s", p.ID, cfg.Timeout)
	}

	if p.StartupScript != "" {
		if err := chromedp.Run(taskCtx, chromedp.Evaluate(p.StartupScript, nil)); err != nil {
			slog.WarnContext(ctx, "startup script failed", "profile", p.ID, "error", err)
		}
	}

	slog.InfoContext(ctx, "browser ready", "profile", p.ID, "name", p.Name, "url", startURL(p))

	<-taskCtx.Done()
	if ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("browser for profile %s exited: %w", p.ID, context.Cause(taskCtx))
}
