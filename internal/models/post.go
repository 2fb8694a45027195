package models

import (
	"time"
)

// Post is a single top-level post from the hafsql.comments table.
// Identity is the (author, permlink) pair; the HAF table guarantees
// uniqueness within one result set.
type Post struct {
	Author      string    `json:"author"`
	Permlink    string    `json:"permlink"`
	Title       string    `json:"title"`
	BodyPreview string    `json:"body_preview"`
	Created     time.Time `json:"created"`
	Category    string    `json:"category"`
}

// HiveGenesisDate is the first calendar day with Hive mainnet content.
// Absolute date ranges must not start before it.
const HiveGenesisDate = "2020-03-20"
