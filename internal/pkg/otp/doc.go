// Package otp implements one-time code verification for a subject such as a
// phone number.
//
// A Registry issues a 6-digit code for a subject, hands it to a Sender and
// later checks codes supplied by the user. Entries expire lazily after the
// configured TTL, allow a bounded number of wrong attempts and are consumed
// by the first successful Verify. State lives behind the Store interface;
// MemoryStore and RedisStore are provided.
package otp
