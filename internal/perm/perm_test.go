package perm

import "testing"

func TestParseOctal(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "0755", want: 0o755},
		{in: "644", want: 0o644},
		{in: "1777", want: 0o1777},
		{in: "4755", want: 0o4755},
		{in: "0000", want: 0},
		{in: "778", wantErr: true},
		{in: "17777", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseOctal(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseOctal(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOctal(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOctal(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAbsolute(t *testing.T) {
	spec, err := Parse("0750")
	if err != nil {
		t.Fatal(err)
	}
	if spec.Symbolic() {
		t.Error("octal spec reported as symbolic")
	}
	// Absolute specs ignore the base.
	if got := spec.Apply(0o777); got != 0o750 {
		t.Errorf("Apply(0777) = %v, want 0750", got)
	}
	if got := spec.Apply(0); got != 0o750 {
		t.Errorf("Apply(0) = %v, want 0750", got)
	}
}

func TestParseSymbolic(t *testing.T) {
	tests := []struct {
		spec string
		base Mode
		want Mode
	}{
		{spec: "u=rwx,go=rx", base: 0o600, want: 0o755},
		{spec: "g-w", base: 0o775, want: 0o755},
		{spec: "a+x", base: 0o644, want: 0o755},
		{spec: "o=", base: 0o777, want: 0o770},
		{spec: "+r", base: 0o200, want: 0o644},
		{spec: "u+s", base: 0o755, want: 0o4755},
		{spec: "o+t", base: 0o777, want: 0o1777},
		{spec: "a-x", base: 0o1777, want: 0o1666},
		{spec: "ug=rw", base: 0o777, want: 0o667},
		{spec: "u=rwx,g=rx,o=", base: 0o4777, want: 0o750},
	}

	for _, tt := range tests {
		spec, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.spec, err)
			continue
		}
		if !spec.Symbolic() {
			t.Errorf("Parse(%q): expected symbolic spec", tt.spec)
		}
		if got := spec.Apply(tt.base); got != tt.want {
			t.Errorf("Parse(%q).Apply(%v) = %v, want %v", tt.spec, tt.base, got, tt.want)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "q+x", "u~x", "u+", "rwx", "u=rwz"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestModeOctal(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{0o755, "0755"},
		{0o1777, "1777"},
		{0, "0000"},
		{0o4750, "4750"},
	}
	for _, tt := range tests {
		if got := tt.mode.Octal(); got != tt.want {
			t.Errorf("Mode(%o).Octal() = %q, want %q", uint32(tt.mode), got, tt.want)
		}
	}
}
