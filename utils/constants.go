// File: utils/constants.go
package utils

import "time"

// SessionCookieName is the cookie carrying the Firebase session cookie.
const SessionCookieName = "__session"

// DateLayout is the calendar-date format used for deadlines and hearings.
const DateLayout = "2006-01-02"

// AdminTokenTTL is the default lifetime of an admin ops token.
const AdminTokenTTL = time.Hour
