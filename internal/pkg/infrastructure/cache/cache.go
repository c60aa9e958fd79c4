package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

//go:generate moq -rm -out cache_mock.go . Cache

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var ErrCacheUnavailable = fmt.Errorf("cache unavailable")

type badgerCache struct {
	db *badger.DB
}

// NewInMemory opens a badger store that lives only for the lifetime of the process.
func NewInMemory(log zerolog.Logger) (Cache, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithMemTableSize(8 << 20).
		WithLogger(&badgerLogger{log: log.With().Str("component", "cache").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCacheUnavailable, err.Error())
	}

	return &badgerCache{db: db}, nil
}

func (c *badgerCache) Get(ctx context.Context, key string) (string, bool, error) {
	var value []byte

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("%w: %s", ErrCacheUnavailable, err.Error())
	}

	return string(value), true, nil
}

func (c *badgerCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), []byte(value))
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})

	if err != nil {
		return fmt.Errorf("%w: %s", ErrCacheUnavailable, err.Error())
	}

	return nil
}

func (c *badgerCache) Delete(ctx context.Context, key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})

	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrCacheUnavailable, err.Error())
	}

	return nil
}

func (c *badgerCache) Close() error {
	return c.db.Close()
}

// badgerLogger forwards badger's internal logging to zerolog. Info and debug
// output is demoted since badger is chatty at startup.
type badgerLogger struct {
	log zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}
