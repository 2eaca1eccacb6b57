package render

import "testing"

func TestEncodeTextASCII(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello", "(Hello)"},
		{"", "()"},
		{"a(b)c", "(a\\(b\\)c)"},
		{"back\\slash", "(back\\\\slash)"},
	}
	for _, tt := range tests {
		if got := EncodeText(tt.in); got != tt.want {
			t.Errorf("EncodeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeTextHexFallback(t *testing.T) {
	// One non-ASCII code unit switches the whole string to hex form.
	got := EncodeText("abé")
	// 'a'=0x61 'b'=0x62, e-acute is <= 255 and passes through as 0xE9.
	if got != "<6162E9>" {
		t.Errorf("EncodeText = %q, want <6162E9>", got)
	}
}

func TestEncodeTextFixedTable(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"bullet", "•", "<95>"},
		{"check mark", "✓", "<76>"},
		{"warning sign", "⚠", "<2121>"},
		{"thumbs up emoji", "\U0001F44D", "<2B31>"},
		{"rocket emoji", "\U0001F680", "<2D3E>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeText(tt.in); got != tt.want {
				t.Errorf("EncodeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeTextPlaceholder(t *testing.T) {
	// Unmapped BMP code point above 255 degrades to '?'.
	if got := EncodeText("世"); got != "<3F>" {
		t.Errorf("unmapped CJK = %q, want <3F>", got)
	}
	// Unmapped surrogate pair degrades to a single '?'.
	if got := EncodeText("\U0001F9EA"); got != "<3F>" {
		t.Errorf("unmapped emoji = %q, want <3F>", got)
	}
}

func TestEncodeTextMixed(t *testing.T) {
	// ASCII content around a mapped emoji stays byte-per-unit in hex form.
	got := EncodeText("ok \U0001F525")
	// 'o'=6F 'k'=6B ' '=20 fire="**"=2A2A
	if got != "<6F6B202A2A>" {
		t.Errorf("EncodeText = %q, want <6F6B202A2A>", got)
	}
}
