// Package messaging provides a small broker API for publishing and consuming
// messages, implemented on NATS core subjects with queue groups.
//
// Business code depends on Publisher and Consumer so handlers can be tested
// without a running broker.
package messaging
