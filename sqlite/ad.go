package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/apehex/homespace"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ homespace.AdService = (*AdService)(nil)

// AdService implements homespace.AdService using SQLite.
type AdService struct {
	db *DB
}

// NewAdService creates a new AdService.
func NewAdService(db *DB) *AdService {
	return &AdService{db: db}
}

// SaveAd stores an ad. A listing URL seen before is replaced, so the
// table always holds the latest observation of every listing.
func (s *AdService) SaveAd(ctx context.Context, ad *homespace.SecondHandAd) error {
	if err := ad.Validate(); err != nil {
		return err
	}

	var lat, lon sql.NullFloat64
	if ad.Latitude != nil && ad.Longitude != nil {
		lat = sql.NullFloat64{Float64: *ad.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: *ad.Longitude, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ads (
			id, url, provider, vendor, title, price, condition, location,
			first_posted, last_updated, description, images,
			brand, model, make, color, price_new,
			latitude, longitude, age_days, user_rating,
			value_rating, leverage_rating, icon, observed_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			provider = excluded.provider,
			vendor = excluded.vendor,
			title = excluded.title,
			price = excluded.price,
			condition = excluded.condition,
			location = excluded.location,
			first_posted = excluded.first_posted,
			last_updated = excluded.last_updated,
			description = excluded.description,
			images = excluded.images,
			brand = excluded.brand,
			model = excluded.model,
			make = excluded.make,
			color = excluded.color,
			price_new = excluded.price_new,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			age_days = excluded.age_days,
			user_rating = excluded.user_rating,
			value_rating = excluded.value_rating,
			leverage_rating = excluded.leverage_rating,
			icon = excluded.icon,
			observed_at = excluded.observed_at
	`,
		uuid.New().String(), ad.URL, ad.Provider, ad.Vendor, ad.Title, ad.Price,
		ad.Condition, ad.Location, ad.FirstPosted, ad.LastUpdated, ad.Description,
		ad.Images, ad.Brand, ad.Model, ad.Make, ad.Color, ad.PriceNew,
		lat, lon, ad.AgeDays, ad.UserRating,
		ad.ValueRating, ad.LeverageRating, ad.Icon,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// FindAds retrieves ads matching the filter, most recently observed
// first.
func (s *AdService) FindAds(ctx context.Context, filter homespace.AdFilter) ([]*homespace.SecondHandAd, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT url, provider, vendor, title, price, condition, location,
			first_posted, last_updated, description, images,
			brand, model, make, color, price_new,
			latitude, longitude, age_days, user_rating,
			value_rating, leverage_rating, icon
		FROM ads WHERE 1=1`)

	if filter.Provider != nil {
		query.WriteString(" AND provider = ?")
		args = append(args, *filter.Provider)
	}

	query.WriteString(" ORDER BY observed_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []*homespace.SecondHandAd
	for rows.Next() {
		var ad homespace.SecondHandAd
		var lat, lon sql.NullFloat64

		if err := rows.Scan(
			&ad.URL, &ad.Provider, &ad.Vendor, &ad.Title, &ad.Price,
			&ad.Condition, &ad.Location, &ad.FirstPosted, &ad.LastUpdated,
			&ad.Description, &ad.Images, &ad.Brand, &ad.Model, &ad.Make,
			&ad.Color, &ad.PriceNew, &lat, &lon, &ad.AgeDays, &ad.UserRating,
			&ad.ValueRating, &ad.LeverageRating, &ad.Icon,
		); err != nil {
			return nil, err
		}

		if lat.Valid && lon.Valid {
			latitude, longitude := lat.Float64, lon.Float64
			ad.Latitude = &latitude
			ad.Longitude = &longitude
		}

		ads = append(ads, &ad)
	}
	return ads, rows.Err()
}
