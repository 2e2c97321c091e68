package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wsbridge/wsbridge/internal/obs"
	"github.com/wsbridge/wsbridge/internal/ratelimit"
	"github.com/wsbridge/wsbridge/internal/web"
)

func main() {
	if cfg.Debug {
		obs.EnableDebug(true)
	}
	obs.Info("server.start", obs.Fields{"listen": cfg.ListenAddr, "metrics": cfg.MetricsAddr})

	state, err := newStateStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		obs.Error("state.init", obs.Fields{"err": err.Error()})
		os.Exit(1)
	}
	limiter := ratelimit.New(cfg.GlobalConnLimit, cfg.SourceConnLimit, cfg.RateBurst)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if rs, ok := state.(*redisStateStore); ok {
		go rs.startMaintenance(ctx)
	}
	go startMetricsServer(cfg.MetricsAddr, state)
	go runCleanupLoop(ctx, limiter, cfg.CleanupInterval)

	mux := http.NewServeMux()
	mux.Handle("/", web.Static(cfg.StaticDir))
	mux.HandleFunc("/ws/", func(w http.ResponseWriter, r *http.Request) {
		handleBridge(w, r, state, limiter)
	})

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		state.setClosing(true)
		obs.Info("server.shutdown", obs.Fields{})
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	state.setReady(true)
	obs.Info("server.ready", obs.Fields{"listen": cfg.ListenAddr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		obs.Error("server.listen", obs.Fields{"err": err.Error(), "addr": cfg.ListenAddr})
		os.Exit(1)
	}
	obs.Info("server.stopped", obs.Fields{})
}

// runCleanupLoop periodically drops idle per-source rate limit buckets.
func runCleanupLoop(ctx context.Context, limiter *ratelimit.Limiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := limiter.Sweep(10 * time.Minute); removed > 0 {
				obs.Debug("ratelimit.sweep", obs.Fields{"removed": removed})
			}
		}
	}
}
