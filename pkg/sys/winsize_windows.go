package sys

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// Windows doesn't have SIGWINCH, so use an impossible value.
const sigWINCH = syscall.Signal(-1)

func winSize(file *os.File) (row, col int) {
	var info windows.ConsoleScreenBufferInfo
	err := windows.GetConsoleScreenBufferInfo(windows.Handle(file.Fd()), &info)
	if err != nil {
		return -1, -1
	}
	window := info.Window
	return int(window.Bottom - window.Top), int(window.Right - window.Left)
}

// TODO: Poll the console screen buffer; Windows has no resize signal and the
// console input events that carry WINDOW_BUFFER_SIZE_EVENT are not read here.
func notifyResize() (<-chan struct{}, func()) {
	return make(chan struct{}), func() {}
}
