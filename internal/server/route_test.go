package server

import "testing"

func TestExtractPort(t *testing.T) {
	cases := []struct {
		path    string
		want    int
		wantErr bool
	}{
		{"/ws/5900", 5900, false},
		{"/ws/1", 1, false},
		{"/ws/65535", 65535, false},
		{"/ws/0", 0, true},
		{"/ws/65536", 0, true},
		{"/ws/-1", 0, true},
		{"/ws/abc", 0, true},
		{"/ws/", 0, true},
		{"/ws/5900/extra", 0, true},
		{"/other/5900", 0, true},
	}
	for _, c := range cases {
		got, err := ExtractPort(c.path, "/ws/")
		if c.wantErr {
			if err == nil {
				t.Errorf("ExtractPort(%q): expected error, got port %d", c.path, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ExtractPort(%q): unexpected error: %v", c.path, err)
			continue
		}
		if got != c.want {
			t.Errorf("ExtractPort(%q) = %d, want %d", c.path, got, c.want)
		}
	}
}
