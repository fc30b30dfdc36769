//go:build windows

package proxy

import (
	"net/http"

	"golang.org/x/sys/windows/registry"
)

const internetSettingsKey = `Software\Microsoft\Windows\CurrentVersion\Internet Settings`

// detectPlatform reads the WinINet proxy configured in the user's Internet Settings.
func detectPlatform() Func {
	server, enabled, err := readInternetSettings()
	if err != nil || !enabled || server == "" {
		return nil
	}

	u, err := ParseProxyString(server)
	if err != nil {
		return nil
	}
	return http.ProxyURL(u)
}

func readInternetSettings() (server string, enabled bool, err error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, internetSettingsKey, registry.QUERY_VALUE)
	if err != nil {
		return "", false, err
	}
	defer key.Close()

	enable, _, err := key.GetIntegerValue("ProxyEnable")
	if err != nil || enable == 0 {
		return "", false, nil
	}

	server, _, err = key.GetStringValue("ProxyServer")
	if err != nil {
		return "", false, nil
	}
	return server, true, nil
}
