package relay

import (
	"strings"
	"testing"
)

func TestSelectSubprotocol(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"json, binary", "binary"},
		{"binary", "binary"},
		{" binary ", "binary"},
		{"binary, json", "binary"},
		{"json", ""},
		{"", ""},
		{"base64,json", ""},
	}
	for _, c := range cases {
		var offered []string
		if c.header != "" {
			offered = strings.Split(c.header, ",")
		}
		if got := SelectSubprotocol(offered); got != c.want {
			t.Errorf("SelectSubprotocol(%q) = %q, want %q", c.header, got, c.want)
		}
	}
}
