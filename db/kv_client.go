package db

import "errors"

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

// KVClient defines the key-value operations the settings DAO relies on.
type KVClient interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Del(key string) error
	Ping() error
	Close() error
}
