package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

// Значение членства в bucket; сам факт наличия ключа и есть членство,
// значение хранится для читаемости дампа базы.
var memberValue = []byte("1")

// SetMember записывает признак членства ключа в локальном wishlist
func (s *Storage) SetMember(ctx context.Context, key string, member bool) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWishlist)
		if bucket == nil {
			return fmt.Errorf("wishlist bucket not found")
		}

		if !member {
			if err := bucket.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to delete member: %w", err)
			}
			return nil
		}

		if err := bucket.Put([]byte(key), memberValue); err != nil {
			return fmt.Errorf("failed to save member: %w", err)
		}

		return nil
	})
}

// IsMember проверяет членство ключа в локальном wishlist
func (s *Storage) IsMember(ctx context.Context, key string) (bool, error) {
	var member bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWishlist)
		if bucket == nil {
			return fmt.Errorf("wishlist bucket not found")
		}

		member = bucket.Get([]byte(key)) != nil
		return nil
	})
	if err != nil {
		return false, err
	}

	return member, nil
}

// ListMembers возвращает все ключи локального wishlist
func (s *Storage) ListMembers(ctx context.Context) ([]string, error) {
	var members []string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWishlist)
		if bucket == nil {
			return fmt.Errorf("wishlist bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			members = append(members, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}

// ClearMembers удаляет все ключи локального wishlist
func (s *Storage) ClearMembers(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketWishlist); err != nil {
			return fmt.Errorf("failed to delete wishlist bucket: %w", err)
		}
		if _, err := tx.CreateBucket(bucketWishlist); err != nil {
			return fmt.Errorf("failed to recreate wishlist bucket: %w", err)
		}
		return nil
	})
}
