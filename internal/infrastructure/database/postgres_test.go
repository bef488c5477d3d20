package database

import (
	"testing"

	"healthcare-booking/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: "5432", User: "app", Password: "pw", Name: "booking"}

	assert.Equal(t,
		"host=db user=app password=pw dbname=booking port=5432 sslmode=disable TimeZone=UTC",
		DSN(cfg, ""),
	)

	cfg.SSLMode = "require"
	assert.Equal(t,
		"host=db user=app password=pw dbname=booking port=5432 sslmode=require TimeZone=Asia/Jakarta",
		DSN(cfg, "Asia/Jakarta"),
	)
}
