//go:build windows

package eventlog

func isUnsupported(err error) bool {
	return true
}
