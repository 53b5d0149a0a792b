package homespace

import "context"

// NeutralRating is the value ratings default to until an external
// ranking stage computes real ones. Ranking depends on a user query and
// stays outside record construction.
const NeutralRating = 5

// SecondHandAd is the fully normalized record for one classified-ad
// listing. It is constructed in a single pass by Builder.BuildAd and
// never mutated afterward.
type SecondHandAd struct {
	// Ad
	URL         string `json:"url"`
	Vendor      string `json:"vendor"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Condition   string `json:"condition"`
	Location    string `json:"location"`
	FirstPosted string `json:"firstPosted"`
	LastUpdated string `json:"lastUpdated"`
	Description string `json:"description"`
	Images      string `json:"images"`

	// Generic item attributes
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Make     string `json:"make"`
	Color    string `json:"color"`
	PriceNew string `json:"priceNew"`

	// Derived. Latitude and Longitude are set together or not at all.
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	AgeDays    int      `json:"ageDays"`
	UserRating string   `json:"userRating"`

	// Evaluation & sorting
	ValueRating    int `json:"valueRating"`
	LeverageRating int `json:"leverageRating"`

	// Dataviz
	Icon string `json:"icon"`

	// Provider is the source identifier from the crawl context.
	Provider string `json:"provider"`
}

// Validate returns an error if the ad is missing its identity field.
func (a *SecondHandAd) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "ad url required")
	}
	return nil
}

// AdSchema returns the field table for classified-ad records.
// All fields are whitespace-normalized; temporal fields are additionally
// reformatted to ISO-8601 with the source's datetime format; image URLs
// are joined into a single comma-separated value.
func AdSchema() Schema {
	return Schema{
		Kind:     "second_hand_ad",
		Identity: "url",
		Fields: []FieldSpec{
			{Name: "url", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "vendor", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "title", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "price", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "condition", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "location", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "first_posted", Inputs: []Normalizer{TrimSpacing, ParseDatetime}, Output: TakeFirst()},
			{Name: "last_updated", Inputs: []Normalizer{TrimSpacing, ParseDatetime}, Output: TakeFirst()},
			{Name: "description", Inputs: []Normalizer{TrimSpacing}, Output: JoinWith(" ")},
			{Name: "images", Inputs: []Normalizer{TrimSpacing}, Output: JoinWith(", ")},
			{Name: "brand", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "model", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "make", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "color", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "price_new", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "user_rating", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "value_rating", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "leverage_rating", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
		},
	}
}

// AdService represents a service for managing stored ads.
type AdService interface {
	// SaveAd stores an ad, replacing any previous observation of the
	// same listing URL.
	SaveAd(ctx context.Context, ad *SecondHandAd) error

	// FindAds retrieves ads matching the filter, most recently
	// observed first.
	FindAds(ctx context.Context, filter AdFilter) ([]*SecondHandAd, error)
}

// AdFilter represents a filter for FindAds.
type AdFilter struct {
	Provider *string `json:"provider"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
