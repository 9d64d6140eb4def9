package entities

import "time"

// FavoriteCity is a city pinned by a user for quick weather lookup.
type FavoriteCity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null;index" json:"name"`
	CountryCode *string   `gorm:"size:2" json:"countryCode"`
	Lat         *float64  `json:"lat"`
	Lon         *float64  `json:"lon"`
	Notes       *string   `gorm:"type:text" json:"notes"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
