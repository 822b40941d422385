package citydata

import (
	"time"
)

type Location struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	SearchQuery    string  `json:"search_query" gorm:"size:500;not null;uniqueIndex:idx_locations_search_query"`
	FormattedQuery string  `json:"formatted_query"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`

	Weathers   []Weather  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Meetups    []Meetup   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Businesses []Business `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (Location) TableName() string {
	return "locations"
}

// Scope is shared by every row that hangs off a Location. All rows written
// by one provider fetch carry the same CreatedAt.
type Scope struct {
	ID         uint      `json:"-" gorm:"primaryKey"`
	LocationID uint      `json:"-" gorm:"not null;index"`
	CreatedAt  time.Time `json:"-" gorm:"not null;index"`
}

func (s *Scope) Stamp(locationID uint, createdAt time.Time) {
	s.LocationID = locationID
	s.CreatedAt = createdAt
}

func (s *Scope) Created() time.Time {
	return s.CreatedAt
}

// Scoped is implemented by pointers to the record models.
type Scoped interface {
	Stamp(locationID uint, createdAt time.Time)
	Created() time.Time
}

type Weather struct {
	Scope
	Forecast string `json:"forecast"`
	Time     string `json:"time"`
}

func (Weather) TableName() string {
	return "weathers"
}

type Meetup struct {
	Scope
	Link         string `json:"link"`
	Name         string `json:"name"`
	CreationDate string `json:"creation_date"`
	Host         string `json:"host"`
}

func (Meetup) TableName() string {
	return "meetups"
}

type Business struct {
	Scope
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	Price    string  `json:"price"`
	Rating   float64 `json:"rating"`
	URL      string  `json:"url"`
}

func (Business) TableName() string {
	return "businesses"
}

// Models lists everything AutoMigrate has to know about, parents first.
func Models() []interface{} {
	return []interface{}{
		&Location{},
		&Weather{},
		&Meetup{},
		&Business{},
	}
}
