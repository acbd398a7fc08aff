package order

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/pkg/errs"
)

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating is the customer feedback recorded by the manager once the order is delivered.
// It is written once and never changed.
type Rating struct {
	foodQuality       int
	deliveryService   int
	overallExperience int
	feedback          string
	ratedAt           time.Time
}

func NewRating(foodQuality, deliveryService, overallExperience int, feedback string, ratedAt time.Time) (Rating, error) {
	if err := errors.Join(
		validateScore("foodQuality", foodQuality),
		validateScore("deliveryService", deliveryService),
		validateScore("overallExperience", overallExperience),
	); err != nil {
		return Rating{}, err
	}
	return Rating{
		foodQuality:       foodQuality,
		deliveryService:   deliveryService,
		overallExperience: overallExperience,
		feedback:          strings.TrimSpace(feedback),
		ratedAt:           ratedAt,
	}, nil
}

func validateScore(name string, score int) error {
	if score < MinRatingScore || score > MaxRatingScore {
		return errs.NewValueIsOutOfRangeError(name, score, MinRatingScore, MaxRatingScore)
	}
	return nil
}

func (r Rating) FoodQuality() int { return r.foodQuality }
func (r Rating) DeliveryService() int { return r.deliveryService }
func (r Rating) OverallExperience() int { return r.overallExperience }
func (r Rating) Feedback() string { return r.feedback }
func (r Rating) RatedAt() time.Time { return r.ratedAt }
