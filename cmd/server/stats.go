package main

import "time"

// Stats represents current server stats for dashboards & API.
type Stats struct {
	ActiveSessions int    `json:"active_sessions"`
	TotalSessions  int64  `json:"total_sessions"`
	TotalBytes     int64  `json:"total_bytes"`
	Now            string `json:"now"`
}

// sessionView is the JSON shape of one live session.
type sessionView struct {
	ID      string `json:"id"`
	Port    int    `json:"port"`
	Remote  string `json:"remote"`
	Started string `json:"started"`
}

func collectStats(s StateStore) Stats {
	active, total, bytes := s.getStats()
	return Stats{ActiveSessions: active, TotalSessions: total, TotalBytes: bytes, Now: time.Now().UTC().Format(time.RFC3339)}
}

func collectSessions(s StateStore) []sessionView {
	infos := s.listSessions()
	out := make([]sessionView, 0, len(infos))
	for _, info := range infos {
		out = append(out, sessionView{
			ID:      info.id,
			Port:    info.port,
			Remote:  info.remote,
			Started: info.started.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// ToTemplateMap returns a map suited for html/template rendering with expected capitalized keys.
func (s Stats) ToTemplateMap() map[string]any {
	return map[string]any{
		"Active": s.ActiveSessions,
		"Total":  s.TotalSessions,
		"Bytes":  s.TotalBytes,
	}
}
