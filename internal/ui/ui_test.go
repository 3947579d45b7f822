package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestAccepts(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"\n", true},
		{"y", true},
		{"Y\n", true},
		{"yes", true},
		{" YES ", true},
		{"n", false},
		{"no", false},
		{"yep", false},
		{"sure", false},
	}
	for _, tt := range tests {
		if got := Accepts(tt.in); got != tt.want {
			t.Errorf("Accepts(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPrompter(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		assumeYes bool
		want      bool
	}{
		{"enter accepts", "\n", false, true},
		{"yes accepts", "yes\n", false, true},
		{"no declines", "n\n", false, false},
		{"eof declines", "", false, false},
		{"answer without newline", "y", false, true},
		{"assume yes", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out, tt.assumeYes)

			got, err := p.Confirm("Okay to install? Y/n")
			if err != nil {
				t.Fatalf("Confirm error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.HasPrefix(out.String(), "Okay to install? Y/n\n") {
				t.Errorf("prompt not printed: %q", out.String())
			}
		})
	}
}

func TestBar(t *testing.T) {
	var out bytes.Buffer
	bar := NewBar(&out)

	update := bar.Start("Downloading")
	update(0, 100)
	update(42, 100)
	update(42, 100)
	update(100, 100)
	bar.Finish()

	s := out.String()
	if strings.Count(s, "\r") != 3 {
		t.Errorf("expected 3 redraws, got %q", s)
	}
	if !strings.Contains(s, "Downloading: [") || !strings.Contains(s, " 42%") || !strings.Contains(s, "100%") {
		t.Errorf("unexpected bar output %q", s)
	}
	if !strings.HasSuffix(s, "\n") {
		t.Error("Finish should end the line")
	}
}

func TestBar_UnknownTotal(t *testing.T) {
	var out bytes.Buffer
	bar := NewBar(&out)

	update := bar.Start("Downloading")
	update(2048, -1)
	bar.Finish()

	if !strings.Contains(out.String(), "Downloading: 2.0 KiB") {
		t.Errorf("output = %q", out.String())
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		512:             "512 B",
		1024:            "1.0 KiB",
		1536:            "1.5 KiB",
		5 * 1024 * 1024: "5.0 MiB",
	}
	for n, want := range tests {
		if got := FormatBytes(n); got != want {
			t.Errorf("FormatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}
