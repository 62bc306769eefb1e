package browser

import (
	"strings"
	"testing"
)

func TestCommandRejectsNonHTTP(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/news/1", false},
		{"http://example.com", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"https:///no-host", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := Command("linux", tt.url)
		if tt.wantErr && err == nil {
			t.Errorf("Command(%q): expected error, got nil", tt.url)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("Command(%q): unexpected error %v", tt.url, err)
		}
	}
}

func TestCommandPerPlatform(t *testing.T) {
	const u = "https://example.com/a?b=c&d=e"
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "open " + u},
		{"linux", "xdg-open " + u},
		{"freebsd", "xdg-open " + u},
		{"windows", "rundll32 url.dll,FileProtocolHandler " + u},
	}
	for _, tt := range tests {
		cmd, err := Command(tt.goos, u)
		if err != nil {
			t.Fatalf("Command(%s): %v", tt.goos, err)
		}
		if got := strings.Join(cmd.Args, " "); got != tt.want {
			t.Errorf("Command(%s) = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestOpenRejectsBeforeLaunching(t *testing.T) {
	if err := Open("javascript:alert(1)"); err == nil {
		t.Error("expected Open to refuse a javascript URL")
	}
}
