package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is a point-in-time snapshot of backend reachability, exposed
// on the health endpoint.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	healthMu     sync.RWMutex
	latestHealth HealthStatus
)

// GetHealthStatus returns the most recent snapshot. The zero value means no
// check has completed yet.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return latestHealth
}

// StartHealthMonitor pings the given backends once a minute in the
// background and records the outcome. Checks are bounded so a hung backend
// cannot stall the monitor.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		probe(redisClients, mongoClient)
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			probe(redisClients, mongoClient)
		}
	}()
}

func probe(redisClients []*redis.Client, mongoClient *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisUp := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisUp = append(redisUp, client.Ping(ctx).Err() == nil)
	}
	mongoUp := mongoClient != nil && mongoClient.Ping(ctx, nil) == nil

	healthMu.Lock()
	latestHealth = HealthStatus{
		Mongo:     mongoUp,
		Redis:     redisUp,
		CheckedAt: time.Now().UTC(),
	}
	healthMu.Unlock()
}
