package bolt

import (
	"encoding/json"

	bbolt "github.com/boltdb/bolt"

	"github.com/zekurio/herald/internal/models"
	"github.com/zekurio/herald/internal/services/database"
	"github.com/zekurio/herald/internal/services/database/dberr"
)

var profilesBucket = []byte("profiles")

type Bolt struct {
	db *bbolt.DB
}

var _ database.Database = (*Bolt)(nil)

func InitBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(profilesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) GetProfile(userID string) (models.UserAudioProfile, error) {
	var p models.UserAudioProfile
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(profilesBucket).Get([]byte(userID))
		if data == nil {
			return dberr.ErrNotFound
		}
		return json.Unmarshal(data, &p)
	})
	return p, err
}

func (b *Bolt) SetProfile(userID string, p models.UserAudioProfile) error {
	if err := database.ValidateProfile(p); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(profilesBucket).Put([]byte(userID), data)
	})
}

func (b *Bolt) GetProfiles() (map[string]models.UserAudioProfile, error) {
	results := make(map[string]models.UserAudioProfile)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(profilesBucket).ForEach(func(k, v []byte) error {
			var p models.UserAudioProfile
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			results[string(k)] = p
			return nil
		})
	})
	return results, err
}

func (b *Bolt) AddPlay(userID string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(profilesBucket)

		p := models.DefaultProfile()
		if data := bucket.Get([]byte(userID)); data != nil {
			if err := json.Unmarshal(data, &p); err != nil {
				return err
			}
		}
		p.Plays++

		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(userID), data)
	})
}
