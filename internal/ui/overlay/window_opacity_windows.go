//go:build windows

package overlay

import (
	"fyne.io/fyne/v2/driver"
	"golang.org/x/sys/windows"
)

const (
	exStyleIndex  = ^uintptr(19) // GWL_EXSTYLE (-20) as an unsigned argument
	layeredStyle  = 0x00080000   // WS_EX_LAYERED
	alphaKeyFlags = 0x2          // LWA_ALPHA
)

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	getWindowLong   = user32.NewProc("GetWindowLongPtrW")
	setWindowLong   = user32.NewProc("SetWindowLongPtrW")
	setLayeredAlpha = user32.NewProc("SetLayeredWindowAttributes")
)

// applyNativeOpacity makes the whole native notice window translucent, not
// only its background rectangle.
func (notice *Window) applyNativeOpacity(alpha uint8) {
	native, ok := notice.window.(driver.NativeWindow)
	if !ok || setLayeredAlpha.Find() != nil {
		return
	}

	native.RunNative(func(context any) {
		hwnd := noticeHandle(context)
		if hwnd == 0 {
			return
		}
		if style, _, _ := getWindowLong.Call(hwnd, exStyleIndex); style&layeredStyle == 0 {
			_, _, _ = setWindowLong.Call(hwnd, exStyleIndex, style|layeredStyle)
		}
		_, _, _ = setLayeredAlpha.Call(hwnd, 0, uintptr(alpha), alphaKeyFlags)
	})
}

func noticeHandle(context any) uintptr {
	switch value := context.(type) {
	case driver.WindowsWindowContext:
		return value.HWND
	case *driver.WindowsWindowContext:
		if value != nil {
			return value.HWND
		}
	}
	return 0
}
