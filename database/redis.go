package database

import (
	"movienight_manager/config"

	"github.com/redis/go-redis/v9"
)

// Reference read caches, busted by the listings sync.
const (
	CacheMoviesKey  = "cache:movies"
	CacheCinemasKey = "cache:cinemas"
	CacheGenresKey  = "cache:genres"
)

var RDB *redis.Client

func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	RDB = redis.NewClient(&redis.Options{Addr: addr})
}
