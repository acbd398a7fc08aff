// Package user contains the User aggregate: restaurant managers and delivery partners.
// Only partners carry a PartnerProfile with availability, rating and delivery counters.
package user
