// Package bunt keeps voted markers in a buntdb file on the local device.
package bunt

import (
	"github.com/pkg/errors"
	"github.com/tidwall/buntdb"
)

const (
	keyPrefix   = "voted_"
	markerValue = "true"
)

type Memory struct {
	db *buntdb.DB
}

// Open opens or creates the marker file at path. ":memory:" keeps markers
// in memory only.
func Open(path string) (*Memory, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open vote memory at %s", path)
	}
	return &Memory{db: db}, nil
}

func (m *Memory) Close() error {
	return m.db.Close()
}

func (m *Memory) HasVoted(pollID string) (bool, error) {
	var voted bool
	err := m.db.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(keyPrefix + pollID)
		if err != nil {
			if errors.Is(err, buntdb.ErrNotFound) {
				return nil
			}
			return err
		}
		voted = val == markerValue
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to read voted marker")
	}
	return voted, nil
}

func (m *Memory) MarkVoted(pollID string) error {
	err := m.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(keyPrefix+pollID, markerValue, nil)
		return err
	})
	if err != nil {
		return errors.Wrap(err, "failed to store voted marker")
	}
	return nil
}

// Voted lists the polls marked on this device.
func (m *Memory) Voted() ([]string, error) {
	var ids []string
	err := m.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(keyPrefix+"*", func(key, value string) bool {
			if value == markerValue {
				ids = append(ids, key[len(keyPrefix):])
			}
			return true
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list voted markers")
	}
	return ids, nil
}
