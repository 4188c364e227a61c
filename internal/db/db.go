package db

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// Open prepares a small PostgreSQL pool. It does not dial; the status probe
// pings it on demand, so a database that is down at startup can recover.
func Open(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
