package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// FlowStateEntry represents a row in the database. "limit" is a reserved
// word in SQL, hence the net_limit column.
type FlowStateEntry struct {
	Key     string `gorm:"primaryKey"`
	Limit   uint64 `gorm:"column:net_limit"`
	Epoch   int64
	Outflow uint64
	Inflow  uint64
}

type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(dsn string) (*DatabaseStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-create table if needed
	if err := db.AutoMigrate(&FlowStateEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &DatabaseStore{db: db}, nil
}

// Get retrieves a state record from database
func (ds *DatabaseStore) Get(key string) (State, error) {
	var entry FlowStateEntry

	result := ds.db.Where("key = ?", key).First(&entry)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return State{}, ErrNotFound
	}
	if result.Error != nil {
		return State{}, result.Error
	}

	return State{
		Limit:   entry.Limit,
		Epoch:   entry.Epoch,
		Outflow: entry.Outflow,
		Inflow:  entry.Inflow,
	}, nil
}

// Set stores a state record in database
func (ds *DatabaseStore) Set(key string, st State) error {
	entry := FlowStateEntry{
		Key:     key,
		Limit:   st.Limit,
		Epoch:   st.Epoch,
		Outflow: st.Outflow,
		Inflow:  st.Inflow,
	}

	// Upsert (insert or update)
	return ds.db.Save(&entry).Error
}

// Delete removes a key from database
func (ds *DatabaseStore) Delete(key string) error {
	result := ds.db.Delete(&FlowStateEntry{}, "key = ?", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists checks if a key exists in database
func (ds *DatabaseStore) Exists(key string) bool {
	var count int64
	ds.db.Model(&FlowStateEntry{}).
		Where("key = ?", key).
		Count(&count)

	return count > 0
}

// Close closes the database connection
func (ds *DatabaseStore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
