package db

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// BadgerClient is an embedded KVClient for running without a Redis server.
type BadgerClient struct {
	DB *badger.DB
}

// NewBadgerClient opens a badger database at path. An empty path keeps the
// data in memory.
func NewBadgerClient(path string) (*BadgerClient, error) {
	opts := badger.DefaultOptions(path).
		WithNumVersionsToKeep(1).
		WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		slog.Error("BadgerClient failed to open database", slog.Any("error", err))
		return nil, fmt.Errorf("database error: %w", err)
	}

	slog.Info("BadgerClient opened",
		slog.String("path", path),
		slog.Bool("inMemory", path == ""))

	return &BadgerClient{DB: db}, nil
}

func (b *BadgerClient) Set(key, value string) error {
	return b.DB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

func (b *BadgerClient) Get(key string) (string, error) {
	var val []byte
	err := b.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("badger get %s: %w", key, err)
	}
	return string(val), nil
}

func (b *BadgerClient) Del(key string) error {
	return b.DB.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (b *BadgerClient) Ping() error {
	if b.DB.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}

func (b *BadgerClient) Close() error {
	if err := b.DB.Close(); err != nil {
		slog.Error("BadgerClient failed to close database", slog.Any("error", err))
		return fmt.Errorf("close failed: %w", err)
	}
	slog.Info("BadgerClient closed successfully")
	return nil
}
