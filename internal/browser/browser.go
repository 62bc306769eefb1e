package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open launches the system browser on an article's source URL.
func Open(rawURL string) error {
	cmd, err := Command(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command builds, without starting it, the command that opens rawURL on
// goos. Only absolute http and https URLs are accepted.
func Command(goos, rawURL string) (*exec.Cmd, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("refusing to open URL without a host: %q", rawURL)
	}

	switch goos {
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "windows":
		// Use rundll32 instead of cmd /c start to avoid shell interpretation
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil
	default:
		return exec.Command("xdg-open", rawURL), nil
	}
}
