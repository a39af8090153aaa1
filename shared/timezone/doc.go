// Package timezone provides timezone utilities for the application.
//
// Rental dates (booking start/end) are calendar dates interpreted in the
// application timezone, so all parsing and formatting of them must go
// through this package rather than the raw time functions.
//
//  1. Basic usage after initialization:
//     now := timezone.Now()                    // Get current time in app timezone
//     appTime := timezone.ToAppTime(someTime)  // Convert any time to app timezone
//
//  2. Parsing rental dates in app timezone:
//     t, err := timezone.Parse(constant.RentalDateFormat, "2024-06-10")
//
// The timezone is configured via the APP_TIMEZONE environment variable
// and is automatically initialized when the package is imported.
// Use standard IANA timezone database names for reliable cross-platform
// compatibility.
package timezone
