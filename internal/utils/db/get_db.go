package db

import (
	"os"
	"strconv"

	"gorm.io/gorm"
)

// GetDB builds a connection from the DB_* environment variables.
func GetDB() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	port, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		port = 5432 // default PostgreSQL port
	}

	name := os.Getenv("DB_NAME")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	return ConnectDatabase(uint(port), host, name, user, password)
}
