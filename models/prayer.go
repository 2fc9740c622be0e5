package models

import "time"

type Prayer struct {
	Prayer_ID   int64     `json:"id" db:"id" goqu:"skipinsert"`
	Person_Name string    `json:"person_name" db:"person_name"`
	Author_Name string    `json:"author_name" db:"author_name"`
	Content     string    `json:"content" db:"content"`
	Created_At  time.Time `json:"created_at" db:"created_at"`
}

// PrayerCreate is the request body for posting a prayer
type PrayerCreate struct {
	Author_Name string `json:"author_name"`
	Content     string `json:"content"`
}

// PrayerCount is one row of the per-person count query
type PrayerCount struct {
	Person_Name  string `db:"person_name"`
	Prayer_Count int    `db:"prayer_count"`
}
