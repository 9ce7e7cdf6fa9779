// Package hash hashes account passwords before they are parked with a pending
// registration and later persisted on the verified user row.
package hash
