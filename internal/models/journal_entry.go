package models

import "time"

type JournalEntry struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	IGLink       string    `db:"ig_link" json:"ig_link"`
	Title        string    `db:"title" json:"title"`
	RemoteStatus int       `db:"remote_status" json:"remote_status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
