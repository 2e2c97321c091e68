// Package obs holds the logging and metrics plumbing shared by the server
// and the companion client.
package obs

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

var (
	out          = log.New(os.Stdout, "", 0)
	debugEnabled bool
)

// EnableDebug globally enables debug logs.
func EnableDebug(v bool) { debugEnabled = v }

// Fields carries structured context for a single log line.
type Fields map[string]any

func emit(level, msg string, f Fields) {
	if f == nil {
		f = Fields{}
	}
	f["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	f["level"] = level
	f["msg"] = msg
	b, err := json.Marshal(f)
	if err != nil {
		out.Printf("{\"level\":\"error\",\"msg\":\"log marshal failure\",\"err\":%q}", err.Error())
		return
	}
	out.Println(string(b))
}

func Info(msg string, f Fields)  { emit("info", msg, f) }
func Error(msg string, f Fields) { emit("error", msg, f) }
func Debug(msg string, f Fields) {
	if debugEnabled {
		emit("debug", msg, f)
	}
}
