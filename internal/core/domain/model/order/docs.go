// Package order contains the Order aggregate and its lifecycle.
//
// An order is created PENDING by a restaurant manager, moves through PREP and READY under
// the manager's control, and through PICKED, ON_ROUTE and DELIVERED under the control of
// the assigned delivery partner. PENDING and PREP orders may be CANCELLED by the manager.
// Each stage records the time it was first entered. A delivered order may be rated once.
//
// Cross-aggregate effects (partner availability, delivery counters, partner rating) live in
// the services package.
package order
