package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("database.host", "db.internal")
	config := GetConfig()

	assert.Equal(t, "db.internal", config.Host)
	assert.Equal(t, "5432", config.Port)
	assert.Equal(t, "kampong_connect", config.Name)
	assert.Equal(t, "host=db.internal port=5432 user=postgres password=password dbname=kampong_connect sslmode=disable", config.DSN())
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("creates snapshots table", func(t *testing.T) {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS snapshots").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, Migrate(context.Background(), db))
	})

	t.Run("reports failure", func(t *testing.T) {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS snapshots").
			WillReturnError(errors.New("permission denied"))

		err := Migrate(context.Background(), db)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "permission denied")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
