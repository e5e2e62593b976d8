// Package env keeps names of environment variables with special significance to
// retui.
package env

// Environment variables with special significance to retui.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	HOME                  = "HOME"
	XDG_CONFIG_HOME       = "XDG_CONFIG_HOME"
	RETUI_CONFIG          = "RETUI_CONFIG"
	RETUI_LOG             = "RETUI_LOG"
	RETUI_MAX_HEIGHT      = "RETUI_MAX_HEIGHT"
	RETUI_RECORD          = "RETUI_RECORD"
	RETUI_TEST_TIME_SCALE = "RETUI_TEST_TIME_SCALE"
)
