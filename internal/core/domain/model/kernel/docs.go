// Package kernel holds the shared building blocks of the food delivery domain model:
// the UUID identifier value object and the Clock used to stamp lifecycle timestamps.
package kernel
