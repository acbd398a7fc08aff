// Package services holds domain services for rules that span the Order and User aggregates:
// access control per role, the lifecycle side effects on partners, partner assignment and
// rating aggregation.
//
// Services are stateless and never touch storage. Command handlers load the aggregates,
// call a service and persist the result in one unit of work.
package services
