package dto

import "github.com/emzola/shelfwise/data"

// QsFeed defines the query strings used for personal and global feeds.
type QsFeed struct {
	Filters data.Filters
}

// QsListFollowers defines the query strings used for listing followers.
type QsListFollowers struct {
	Filters data.Filters
}
