// Package sms sends text messages through an SMS provider.
package sms
