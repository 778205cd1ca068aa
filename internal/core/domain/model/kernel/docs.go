// Package kernel contains the shared value objects of the fulfilment domain:
// identifiers, monetary amounts, customer contact details, delivery addresses,
// and geolocation points. All types are immutable and constructor-validated;
// zero values fail Validate and must never be persisted.
package kernel
