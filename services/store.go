package services

import (
	"errors"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps the document database with retry-on-transient-failure
// semantics. A miss is a normal outcome: point reads and filtered reads
// return a nil item and a nil error when nothing matches.
type Store struct {
	DB *gorm.DB
}

func NewStore(dbConn *gorm.DB) *Store {
	return &Store{DB: dbConn}
}

const (
	retryInitialInterval = 2 * time.Second
	retryMaxAttempts     = 5
)

func newBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0
	return backoff.WithMaxRetries(bo, retryMaxAttempts-1)
}

// withRetry runs op under the exponential backoff policy (2^n seconds, five
// attempts). Misses and constraint violations are terminal; anything else is
// assumed transient (timeouts, 5xx, throttling from a hosted backend) and
// surfaces unwrapped once the attempts are exhausted.
func withRetry(op func() error) error {
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) ||
			errors.Is(err, gorm.ErrDuplicatedKey) ||
			errors.Is(err, gorm.ErrInvalidData) {
			return backoff.Permanent(err)
		}
		log.Printf("[WARNING] store operation failed (attempt %d/%d): %v", attempt, retryMaxAttempts, err)
		return err
	}, newBackOff())
}

// GetByID performs a point read. Returns (nil, nil) when the id is absent.
func GetByID[T any](s *Store, id string) (*T, error) {
	var item T
	err := withRetry(func() error {
		return s.DB.First(&item, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetOne returns the first document matching the filter, or (nil, nil).
func GetOne[T any](s *Store, query string, args ...interface{}) (*T, error) {
	var item T
	err := withRetry(func() error {
		return s.DB.Where(query, args...).First(&item).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetList drains every document matching the filter, in a stable order.
func GetList[T any](s *Store, query string, args ...interface{}) ([]T, error) {
	var items []T
	err := withRetry(func() error {
		return s.DB.Where(query, args...).Order("id").Find(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new document.
func Create[T any](s *Store, item *T) (*T, error) {
	err := withRetry(func() error {
		return s.DB.Create(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Upsert writes the full document, inserting or replacing by id. There are
// no partial/patch semantics: the stored document becomes exactly item.
func Upsert[T any](s *Store, item *T) (*T, error) {
	err := withRetry(func() error {
		return s.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete physically removes a document and returns what was stored, or
// (nil, nil) when the id is absent.
func Delete[T any](s *Store, id string) (*T, error) {
	existing, err := GetByID[T](s, id)
	if err != nil || existing == nil {
		return nil, err
	}
	err = withRetry(func() error {
		var zero T
		return s.DB.Delete(&zero, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}
