//go:build !windows

package proxy

// detectPlatform has nothing beyond the environment to consult on this platform.
// Desktop sessions on Linux and macOS export their proxy settings as variables.
func detectPlatform() Func {
	return nil
}
