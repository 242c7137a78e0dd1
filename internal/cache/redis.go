package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"construct-backend/internal/models"
)

// Dashboard cache keys
const (
	DashboardStatsKey = "dashboard:stats"
	ChartKeyFmt       = "dashboard:chart:%s"
)

const dashboardTTL = 5 * time.Minute

var client *redis.Client

// Init connects to Redis. An empty host or a failed ping leaves the
// client nil; every function below degrades to a no-op so the API
// keeps working without a cache.
func Init(host string, port int, password string) error {
	if host == "" {
		return fmt.Errorf("no redis host configured")
	}

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetDashboardStats returns the cached dashboard snapshot, if any
func GetDashboardStats(ctx context.Context) (*models.DashboardStats, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, DashboardStatsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var stats models.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

// SetDashboardStats caches the dashboard snapshot for 5 minutes
func SetDashboardStats(ctx context.Context, stats *models.DashboardStats) {
	if client == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	client.Set(ctx, DashboardStatsKey, data, dashboardTTL)
}

// GetChart returns a cached chart series by key
func GetChart(ctx context.Context, key string) (*models.ChartSeries, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(ChartKeyFmt, key)).Bytes()
	if err != nil {
		return nil, false
	}
	var series models.ChartSeries
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, false
	}
	return &series, true
}

// SetChart caches a chart series for 5 minutes
func SetChart(ctx context.Context, key string, series *models.ChartSeries) {
	if client == nil || series == nil {
		return
	}
	data, err := json.Marshal(series)
	if err != nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(ChartKeyFmt, key), data, dashboardTTL)
}

// InvalidateDashboard clears the stats snapshot and all chart caches.
// Called after every ledger or job write so the dashboard never serves
// stale money numbers for more than one request.
func InvalidateDashboard(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DashboardStatsKey)
	keys, err := client.Keys(ctx, "dashboard:chart:*").Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// IsHealthy returns true if the Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// Close shuts down the Redis connection
func Close() {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Printf("[Cache] close error: %v", err)
	}
	client = nil
}
