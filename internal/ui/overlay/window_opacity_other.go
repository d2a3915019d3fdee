//go:build !windows

package overlay

// Other platforms rely on the translucent background only.
func (notice *Window) applyNativeOpacity(uint8) {}
