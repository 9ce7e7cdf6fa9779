package sms

import (
	"fmt"
	"time"
)

// VerificationText renders the body of a verification code message. The
// lifetime is rounded to whole minutes and never shown as less than one.
func VerificationText(appName, code string, ttl time.Duration) string {
	minutes := int(ttl.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}

	unit := "minutes"
	if minutes == 1 {
		unit = "minute"
	}

	return fmt.Sprintf("Your %s verification code is %s. It expires in %d %s.", appName, code, minutes, unit)
}
