package config

import (
	"os"
	"strconv"
	"strings"
)

// SnapshotConfig names the storage keys each collection is persisted under
// and controls demo seeding.
type SnapshotConfig struct {
	AccountsKey      string
	RequestsKey      string
	ReviewsKey       string
	ConversationsKey string
	KeyPrefix        string
	MemoryQuota      int
	SeedDemo         bool
}

func LoadSnapshotConfig() *SnapshotConfig {
	return &SnapshotConfig{
		AccountsKey:      getEnv("SNAPSHOT_ACCOUNTS_KEY", "kampong_connect_registered_users"),
		RequestsKey:      getEnv("SNAPSHOT_REQUESTS_KEY", "kampong_connect_requests"),
		ReviewsKey:       getEnv("SNAPSHOT_REVIEWS_KEY", "kampong_connect_reviews"),
		ConversationsKey: getEnv("SNAPSHOT_CONVERSATIONS_KEY", "kampong_connect_conversations"),
		KeyPrefix:        getEnv("SNAPSHOT_KEY_PREFIX", ""),
		MemoryQuota:      getEnvAsInt("SNAPSHOT_MEMORY_QUOTA", 5*1024*1024),
		SeedDemo:         getEnvAsBool("SEED_DEMO_DATA", false),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
