package domain

import (
	"context"
	"strings"
)

// UnknownSSID is reported whenever the network name cannot be read
const UnknownSSID = "Unknown SSID"

// CurrentSSIDSafe reads the current network name and never fails. Any error
// or blank name yields UnknownSSID.
func CurrentSSIDSafe(ctx context.Context, provider SSIDProvider) string {
	if provider == nil {
		return UnknownSSID
	}
	ssid, err := provider.CurrentSSID(ctx)
	if err != nil {
		return UnknownSSID
	}
	ssid = strings.TrimSpace(ssid)
	if ssid == "" {
		return UnknownSSID
	}
	return ssid
}
