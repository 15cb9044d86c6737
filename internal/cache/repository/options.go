package repository

import "time"

type GetOptions struct {
	Key string
}

type SaveOptions struct {
	Key   string
	Value []byte
	TTL   time.Duration
}
