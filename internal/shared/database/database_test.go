package database_test

import (
	"testing"
	"time"

	"github.com/library-circulation/go-api-server/internal/shared/database"
	"github.com/stretchr/testify/assert"
)

func TestSQLiteDSN_BusyTimeoutFollowsStoreTimeout(t *testing.T) {
	dsn := database.SQLiteDSN("circulation.db", 2500*time.Millisecond)

	assert.Equal(t, "file:circulation.db?_busy_timeout=2500&_foreign_keys=on", dsn)
}
