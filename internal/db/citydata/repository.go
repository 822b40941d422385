package citydata

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository interface {
	FindByQuery(ctx context.Context, query string) (*Location, error)
	FindByID(ctx context.Context, id uint) (*Location, error)
	Create(ctx context.Context, location *Location) error
}

type LocationSQLRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &LocationSQLRepository{db: db}
}

func (r *LocationSQLRepository) FindByQuery(ctx context.Context, query string) (*Location, error) {
	var location Location
	err := r.db.WithContext(ctx).Where("search_query = ?", query).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *LocationSQLRepository) FindByID(ctx context.Context, id uint) (*Location, error) {
	var location Location
	err := r.db.WithContext(ctx).First(&location, id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// Create leaves location.ID at zero when another writer already stored the
// same search query.
func (r *LocationSQLRepository) Create(ctx context.Context, location *Location) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "search_query"}},
			DoNothing: true,
		}).
		Create(location).Error
}

type RecordRepository[E any] interface {
	FindByLocation(ctx context.Context, locationID uint) ([]E, error)
	ReplaceForLocation(ctx context.Context, locationID uint, records []E) error
	DeleteByLocation(ctx context.Context, locationID uint) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type RecordSQLRepository[E any] struct {
	db *gorm.DB
}

func NewRecordRepository[E any](db *gorm.DB) RecordRepository[E] {
	return &RecordSQLRepository[E]{db: db}
}

func NewWeatherRepository(db *gorm.DB) RecordRepository[Weather] {
	return NewRecordRepository[Weather](db)
}

func NewMeetupRepository(db *gorm.DB) RecordRepository[Meetup] {
	return NewRecordRepository[Meetup](db)
}

func NewBusinessRepository(db *gorm.DB) RecordRepository[Business] {
	return NewRecordRepository[Business](db)
}

func (r *RecordSQLRepository[E]) FindByLocation(ctx context.Context, locationID uint) ([]E, error) {
	var records []E
	err := r.db.WithContext(ctx).Where("location_id = ?", locationID).Order("id").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ReplaceForLocation swaps every row of the location for records in one
// transaction. The location row is locked first so concurrent replaces for the
// same location run one after the other.
func (r *RecordSQLRepository[E]) ReplaceForLocation(ctx context.Context, locationID uint, records []E) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var location Location
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Take(&location, locationID).Error
		if err != nil {
			return err
		}

		if err := tx.Where("location_id = ?", locationID).Delete(new(E)).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

func (r *RecordSQLRepository[E]) DeleteByLocation(ctx context.Context, locationID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("location_id = ?", locationID).Delete(new(E))
	return result.RowsAffected, result.Error
}

func (r *RecordSQLRepository[E]) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(new(E))
	return result.RowsAffected, result.Error
}
