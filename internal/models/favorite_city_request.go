package models

// CreateFavoriteCityRequest pins a city. UserID defaults to the caller.
type CreateFavoriteCityRequest struct {
	Name        string   `json:"name" binding:"required,notblank,max=120"`
	CountryCode *string  `json:"countryCode" binding:"omitempty,len=2"`
	Lat         *float64 `json:"lat" binding:"omitempty,latitude"`
	Lon         *float64 `json:"lon" binding:"omitempty,longitude"`
	Notes       *string  `json:"notes"`
	UserID      *uint    `json:"userId"`
}

// UpdateFavoriteCityRequest is a partial patch. Ownership cannot change.
type UpdateFavoriteCityRequest struct {
	Name        *string  `json:"name" binding:"omitempty,notblank,max=120"`
	CountryCode *string  `json:"countryCode" binding:"omitempty,len=2"`
	Lat         *float64 `json:"lat" binding:"omitempty,latitude"`
	Lon         *float64 `json:"lon" binding:"omitempty,longitude"`
	Notes       *string  `json:"notes"`
}

// Fields returns the patch keyed by column name.
func (r UpdateFavoriteCityRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.CountryCode != nil {
		fields["country_code"] = *r.CountryCode
	}
	if r.Lat != nil {
		fields["lat"] = *r.Lat
	}
	if r.Lon != nil {
		fields["lon"] = *r.Lon
	}
	if r.Notes != nil {
		fields["notes"] = *r.Notes
	}
	return fields
}
