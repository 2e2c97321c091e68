package main

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wsbridge/wsbridge/internal/obs"
	"github.com/wsbridge/wsbridge/internal/relay"
)

// redisStateStore implements StateStore for a fleet of bridge instances.
// Live sessions stay local (the sockets only exist on the instance that
// accepted them); session and byte totals are accumulated in Redis so the
// dashboard shows fleet-wide numbers. Each instance also maintains a
// heartbeat key so operators can see which instances are alive.
type redisStateStore struct {
	client     *redis.Client
	instanceID string

	mu       sync.Mutex
	sessions map[string]sessionInfo
	closing  bool
	ready    bool

	heartbeatInterval time.Duration
	heartbeatTTL      time.Duration
}

const (
	redisKeySessionsTotal = "wsbridge:sessions_total"
	redisKeyBytesTotal    = "wsbridge:bytes_total"
	redisKeyInstance      = "wsbridge:instance:" // + instanceID
)

func newRedisStateStore(addr, password string, db int) (*redisStateStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &redisStateStore{
		client:            rdb,
		instanceID:        fmt.Sprintf("wsbridge-%d", time.Now().UnixNano()),
		sessions:          make(map[string]sessionInfo),
		heartbeatInterval: 30 * time.Second,
		heartbeatTTL:      90 * time.Second,
	}, nil
}

var _ StateStore = (*redisStateStore)(nil)

func (r *redisStateStore) addSession(sess *relay.Session) {
	r.mu.Lock()
	r.sessions[sess.ID] = sessionInfo{id: sess.ID, port: sess.Port, remote: sess.Remote, started: sess.Started}
	n := len(r.sessions)
	r.mu.Unlock()
	obs.ActiveSessions.Set(float64(n))
	if err := r.client.Incr(context.Background(), redisKeySessionsTotal).Err(); err != nil {
		obs.Error("redis.incr_sessions", obs.Fields{"err": err.Error()})
	}
}

func (r *redisStateStore) removeSession(id string, sum relay.Summary) {
	r.mu.Lock()
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()
	obs.ActiveSessions.Set(float64(n))
	total := sum.BytesWSToTCP + sum.BytesTCPToWS
	if total == 0 {
		return
	}
	if err := r.client.IncrBy(context.Background(), redisKeyBytesTotal, total).Err(); err != nil {
		obs.Error("redis.incr_bytes", obs.Fields{"err": err.Error()})
	}
}

func (r *redisStateStore) listSessions() []sessionInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sessionInfo, 0, len(r.sessions))
	for _, info := range r.sessions {
		out = append(out, info)
	}
	return out
}

func (r *redisStateStore) setClosing(closing bool) { r.mu.Lock(); r.closing = closing; r.mu.Unlock() }
func (r *redisStateStore) setReady(ready bool)     { r.mu.Lock(); r.ready = ready; r.mu.Unlock() }
func (r *redisStateStore) isClosing() bool         { r.mu.Lock(); defer r.mu.Unlock(); return r.closing }
func (r *redisStateStore) isReady() bool           { r.mu.Lock(); defer r.mu.Unlock(); return r.ready }

// getStats combines the local live-session count with fleet-wide totals.
// Redis read failures degrade to zeros rather than failing the dashboard.
func (r *redisStateStore) getStats() (int, int64, int64) {
	r.mu.Lock()
	active := len(r.sessions)
	r.mu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	totals := r.client.MGet(ctx, redisKeySessionsTotal, redisKeyBytesTotal)
	vals, err := totals.Result()
	if err != nil {
		obs.Error("redis.get_stats", obs.Fields{"err": err.Error()})
		return active, 0, 0
	}
	return active, parseRedisInt(vals[0]), parseRedisInt(vals[1])
}

func parseRedisInt(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// startMaintenance refreshes this instance's heartbeat key until ctx ends.
func (r *redisStateStore) startMaintenance(ctx context.Context) {
	r.heartbeat(ctx)
	ticker := time.NewTicker(r.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = r.client.Del(context.Background(), redisKeyInstance+r.instanceID).Err()
			return
		case <-ticker.C:
			r.heartbeat(ctx)
		}
	}
}

func (r *redisStateStore) heartbeat(ctx context.Context) {
	r.mu.Lock()
	active := len(r.sessions)
	r.mu.Unlock()
	key := redisKeyInstance + r.instanceID
	if err := r.client.Set(ctx, key, strconv.Itoa(active), r.heartbeatTTL).Err(); err != nil {
		obs.Error("redis.heartbeat", obs.Fields{"err": err.Error()})
	}
}
