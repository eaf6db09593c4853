package models

// Category describes the kind of business (garage, salon, restaurant...).
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

// Service is a bookable offering embedded within a business.
// Duration is in minutes. It has no independent lifecycle.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Review is an append-only customer review embedded within a business.
type Review struct {
	ID      string  `json:"id"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
	Author  string  `json:"author"`
	Date    string  `json:"date"`
}

// Business is a bookable listing. Reviews and Services retain insertion
// order. The record is owned wholly by the object store; a professional's
// dangling BusinessID reference is tolerated.
type Business struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     Category  `json:"category"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"totalReviews"`
	Reviews      []Review  `json:"reviews"`
	Services     []Service `json:"services"`
}

// BusinessPatch is an explicit partial update for a business record.
// Nil fields are left untouched by the merge; supplied fields replace the
// stored value wholesale.
type BusinessPatch struct {
	Name         *string
	Category     *Category
	Address      *string
	City         *string
	Rating       *float64
	TotalReviews *int
	Reviews      *[]Review
	Services     *[]Service
}

// Apply merges the patch into b and returns the result.
func (p BusinessPatch) Apply(b Business) Business {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Address != nil {
		b.Address = *p.Address
	}
	if p.City != nil {
		b.City = *p.City
	}
	if p.Rating != nil {
		b.Rating = *p.Rating
	}
	if p.TotalReviews != nil {
		b.TotalReviews = *p.TotalReviews
	}
	if p.Reviews != nil {
		b.Reviews = *p.Reviews
	}
	if p.Services != nil {
		b.Services = *p.Services
	}
	return b
}
