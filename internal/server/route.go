package server

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtractPort parses the target TCP port out of a bridge route path such as
// "/ws/5900" (prefix "/ws/"). The port must be the sole remaining path
// segment and fall in 1..65535.
func ExtractPort(path, prefix string) (int, error) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || rest == "" {
		return 0, fmt.Errorf("no port in path %q", path)
	}
	if strings.Contains(rest, "/") {
		return 0, fmt.Errorf("unexpected path segment after port: %q", rest)
	}
	port, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("bad port %q: %w", rest, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}
