// Package services contains stateless domain services that enforce rules
// spanning more than one aggregate: who may request a status transition,
// how large a refund a role may issue, and how much payout an order can carry.
// Each service is independently constructable and testable.
package services
