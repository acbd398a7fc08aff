package services

import (
	"math"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
)

// RatingAggregator stores order ratings and recomputes partner ratings from scratch.
type RatingAggregator struct{}

func NewRatingAggregator() RatingAggregator {
	return RatingAggregator{}
}

// Rate records rating on a delivered order owned by caller.
func (r RatingAggregator) Rate(o *order.Order, caller kernel.Actor, rating order.Rating, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := RequireOwner(o, caller, "rate order"); err != nil {
		return err
	}
	return o.Rate(rating, now)
}

// Recompute sets the partner rating to the mean deliveryService score of ratings,
// which must hold every rating of the partner's delivered orders.
func (r RatingAggregator) Recompute(partner *user.User, ratings []order.Rating, now time.Time) error {
	mean, count := r.Aggregate(ratings)
	return partner.ApplyRatingAggregate(mean, count, now)
}

// Aggregate returns the mean deliveryService score rounded to one decimal place and the
// number of ratings. Without ratings it returns the default partner rating.
func (r RatingAggregator) Aggregate(ratings []order.Rating) (float64, int) {
	if len(ratings) == 0 {
		return user.DefaultPartnerRating, 0
	}
	sum := 0
	for _, rating := range ratings {
		sum += rating.DeliveryService()
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10, len(ratings)
}
