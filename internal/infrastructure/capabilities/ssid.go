package capabilities

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/you/wifiattend/domain"
)

// SSID provider modes
const (
	SSIDModePlatform    = "platform"
	SSIDModeStatic      = "static"
	SSIDModeUnavailable = "none"
)

// CommandRunner runs an OS command and returns its standard output
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// PlatformSSIDProvider asks the operating system's wireless tools for the
// current network name
type PlatformSSIDProvider struct {
	goos string
	run  CommandRunner
}

// NewPlatformSSIDProvider creates a provider for the running OS
func NewPlatformSSIDProvider() *PlatformSSIDProvider {
	return &PlatformSSIDProvider{goos: runtime.GOOS, run: execRunner}
}

// CurrentSSID implements domain.SSIDProvider
func (p *PlatformSSIDProvider) CurrentSSID(ctx context.Context) (string, error) {
	switch p.goos {
	case "linux":
		if out, err := p.run(ctx, "iwgetid", "-r"); err == nil {
			if ssid := strings.TrimSpace(string(out)); ssid != "" {
				return ssid, nil
			}
		}
		out, err := p.run(ctx, "nmcli", "-t", "-f", "active,ssid", "dev", "wifi")
		if err != nil {
			return "", fmt.Errorf("%w: nmcli: %v", domain.ErrCapabilityUnavailable, err)
		}
		return parseNmcli(out)
	case "darwin":
		out, err := p.run(ctx, "networksetup", "-getairportnetwork", "en0")
		if err != nil {
			return "", fmt.Errorf("%w: networksetup: %v", domain.ErrCapabilityUnavailable, err)
		}
		return parseAirport(out)
	case "windows":
		out, err := p.run(ctx, "netsh", "wlan", "show", "interfaces")
		if err != nil {
			return "", fmt.Errorf("%w: netsh: %v", domain.ErrCapabilityUnavailable, err)
		}
		return parseNetsh(out)
	}
	return "", fmt.Errorf("%w: no wifi probe for %s", domain.ErrCapabilityUnavailable, p.goos)
}

// parseNmcli reads `nmcli -t -f active,ssid dev wifi` output
func parseNmcli(out []byte) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		active, ssid, ok := strings.Cut(sc.Text(), ":")
		if !ok || active != "yes" {
			continue
		}
		ssid = strings.ReplaceAll(ssid, `\:`, ":")
		if ssid = strings.TrimSpace(ssid); ssid != "" {
			return ssid, nil
		}
	}
	return "", fmt.Errorf("%w: not connected to wifi", domain.ErrCapabilityUnavailable)
}

// parseAirport reads `networksetup -getairportnetwork` output
func parseAirport(out []byte) (string, error) {
	const prefix = "Current Wi-Fi Network:"
	text := strings.TrimSpace(string(out))
	if !strings.HasPrefix(text, prefix) {
		return "", fmt.Errorf("%w: %s", domain.ErrCapabilityUnavailable, text)
	}
	ssid := strings.TrimSpace(strings.TrimPrefix(text, prefix))
	if ssid == "" {
		return "", fmt.Errorf("%w: not connected to wifi", domain.ErrCapabilityUnavailable)
	}
	return ssid, nil
}

// parseNetsh reads `netsh wlan show interfaces` output
func parseNetsh(out []byte) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "SSID" {
			continue
		}
		if ssid := strings.TrimSpace(value); ssid != "" {
			return ssid, nil
		}
	}
	return "", fmt.Errorf("%w: not connected to wifi", domain.ErrCapabilityUnavailable)
}

// StaticSSIDProvider always reports the configured network name
type StaticSSIDProvider struct {
	SSID string
}

// CurrentSSID implements domain.SSIDProvider
func (s StaticSSIDProvider) CurrentSSID(ctx context.Context) (string, error) {
	return s.SSID, nil
}

// UnavailableSSIDProvider is used where no network name can be read
type UnavailableSSIDProvider struct{}

// CurrentSSID implements domain.SSIDProvider
func (UnavailableSSIDProvider) CurrentSSID(ctx context.Context) (string, error) {
	return "", domain.ErrCapabilityUnavailable
}

// NewSSIDProvider selects a provider by mode
func NewSSIDProvider(mode, static string) (domain.SSIDProvider, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", SSIDModePlatform:
		return NewPlatformSSIDProvider(), nil
	case SSIDModeStatic:
		if strings.TrimSpace(static) == "" {
			return nil, fmt.Errorf("ssid mode %q needs a static ssid", SSIDModeStatic)
		}
		return StaticSSIDProvider{SSID: static}, nil
	case SSIDModeUnavailable, "unavailable":
		return UnavailableSSIDProvider{}, nil
	}
	return nil, fmt.Errorf("unknown ssid mode %q", mode)
}
