package state

import (
	"database/sql"
	"errors"
	"time"
)

const prefThumbnailSize = "thumbnail_size"

func getThumbnailSize(db *sql.DB) (int, bool, error) {
	var value sql.NullInt64
	err := db.QueryRow(`SELECT int_value FROM preferences WHERE key = ?`, prefThumbnailSize).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if !value.Valid {
		return 0, false, nil
	}
	return int(value.Int64), true, nil
}

func saveThumbnailSize(db *sql.DB, size int) error {
	_, err := db.Exec(`
		INSERT INTO preferences (key, int_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			int_value = excluded.int_value,
			updated_at = excluded.updated_at
	`, prefThumbnailSize, size, time.Now().Unix())
	return err
}
