package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported browser kinds. These map onto the Playwright browser types.
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebkit   = "webkit"
)

// Credential is one named username/password pair used by the suite.
type Credential struct {
	Username string
	Password string
}

// SuiteConfig holds everything the test suite reads at startup. It is loaded
// once and never reloaded.
type SuiteConfig struct {
	Browser         string
	Headless        bool
	BaseURL         string
	DefaultTimeout  time.Duration
	ExplicitTimeout time.Duration
	PageLoadTimeout time.Duration
	ArtifactsDir    string
	StepScreenshots bool

	StandardUser          Credential
	LockedOutUser         Credential
	ProblemUser           Credential
	PerformanceGlitchUser Credential
}

// LoadSuiteConfig loads suite configuration from environment variables.
// Every field has a default so the suite runs out of the box against the
// embedded storefront.
func LoadSuiteConfig() (*SuiteConfig, error) {
	cfg := SuiteConfig{
		Browser:         envOrDefault("E2E_BROWSER", BrowserChromium),
		BaseURL:         os.Getenv("E2E_BASE_URL"),
		ArtifactsDir:    envOrDefault("E2E_ARTIFACTS_DIR", "artifacts"),
		StandardUser:    credentialFromEnv("E2E_STANDARD", "standard_user"),
		LockedOutUser:   credentialFromEnv("E2E_LOCKED_OUT", "locked_out_user"),
		ProblemUser:     credentialFromEnv("E2E_PROBLEM", "problem_user"),
		PerformanceGlitchUser: credentialFromEnv(
			"E2E_PERFORMANCE_GLITCH", "performance_glitch_user"),
	}

	switch cfg.Browser {
	case BrowserChromium, BrowserFirefox, BrowserWebkit:
	default:
		return nil, fmt.Errorf("E2E_BROWSER must be one of %s, %s or %s, got %q",
			BrowserChromium, BrowserFirefox, BrowserWebkit, cfg.Browser)
	}

	var err error
	if cfg.Headless, err = boolFromEnv("E2E_HEADLESS", true); err != nil {
		return nil, err
	}
	if cfg.StepScreenshots, err = boolFromEnv("E2E_STEP_SCREENSHOTS", false); err != nil {
		return nil, err
	}
	if cfg.DefaultTimeout, err = durationFromEnv("E2E_DEFAULT_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.ExplicitTimeout, err = durationFromEnv("E2E_EXPLICIT_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.PageLoadTimeout, err = durationFromEnv("E2E_PAGE_LOAD_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func credentialFromEnv(prefix, defaultUser string) Credential {
	return Credential{
		Username: envOrDefault(prefix+"_USER", defaultUser),
		Password: envOrDefault(prefix+"_PASSWORD", "secret_sauce"),
	}
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return v, nil
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 15s, got %q", key, raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, raw)
	}
	return v, nil
}
