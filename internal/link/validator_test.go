package link

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"schemeless gets https", "example.com", "https://example.com"},
		{"http preserved", "http://example.com", "http://example.com"},
		{"https preserved", "https://example.com/page", "https://example.com/page"},
		{"whitespace trimmed", "  example.com  ", "https://example.com"},
		{"empty stays empty", "", ""},
		{"path kept", "github.com/someone/repo", "https://github.com/someone/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.in); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"https ok", "https://example.com", false},
		{"http ok", "http://example.com", false},
		{"ftp rejected", "ftp://example.com", true},
		{"no host rejected", "https://", true},
		{"garbage rejected", "://nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateURL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	if err := validateTitle("a"); err != ErrInvalidTitle {
		t.Errorf("one-char title: got %v, want ErrInvalidTitle", err)
	}
	if err := validateTitle("  a  "); err != ErrInvalidTitle {
		t.Errorf("padded one-char title: got %v, want ErrInvalidTitle", err)
	}
	if err := validateTitle("ab"); err != nil {
		t.Errorf("two-char title: got %v, want nil", err)
	}
}

func TestValidateDescription(t *testing.T) {
	if err := validateDescription(""); err != nil {
		t.Errorf("blank description: got %v, want nil", err)
	}
	if err := validateDescription("abcd"); err != ErrInvalidDescription {
		t.Errorf("four-char description: got %v, want ErrInvalidDescription", err)
	}
	if err := validateDescription("abcde"); err != nil {
		t.Errorf("five-char description: got %v, want nil", err)
	}
}

func TestDetectIcon(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/someone", "fab fa-github"},
		{"https://www.github.com/someone", "fab fa-github"},
		{"https://x.com/someone", "fab fa-x-twitter"},
		{"https://twitter.com/someone", "fab fa-x-twitter"},
		{"https://youtu.be/abc", "fab fa-youtube"},
		{"https://soundcloud.com/someone", "fab fa-soundcloud"},
		{"https://stackoverflow.com/q/1", "fab fa-stack-overflow"},
		{"https://mysite.example", "fas fa-link"},
		{"", "fas fa-link"},
	}

	for _, tt := range tests {
		if got := DetectIcon(tt.url); got != tt.want {
			t.Errorf("DetectIcon(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
