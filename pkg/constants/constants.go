// Package constants provides shared constants used throughout the bookroll
// codebase: retry budgets, cache lifetimes, and default sheet names that
// must stay consistent between the readers, the writer, and the CLI.
package constants

import "time"

// Retry constants bound backoff against a throttling backing store
const (
	// MaxReadAttempts is the attempt ceiling for a throttled sheet read
	MaxReadAttempts = 3

	// RetryBackoff is the base backoff duration between read attempts
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff caps the exponential backoff between attempts
	MaxRetryBackoff = 8 * time.Second
)

// Cache constants
const (
	// CurriculumTTL is how long a fetched curriculum table is reused.
	// The template changes rarely; submissions are never cached.
	CurriculumTTL = 5 * time.Minute

	// CacheCleanupInterval is how often expired cache entries are purged
	CacheCleanupInterval = 10 * time.Minute
)

// Default sheet names within the workbook. Row 1 of every sheet is the
// header row.
const (
	// SheetSubmission is the live, user-maintained submission table
	SheetSubmission = "Submission_Records"

	// SheetHistory holds frozen prior-period submissions
	SheetHistory = "DB_History"

	// SheetCurriculum is the expected-course catalog per department
	SheetCurriculum = "DB_Curriculum"
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories
	DirPermissions = 0755

	// FilePermissions is the default permission for created files
	FilePermissions = 0644
)

// TimestampLayout is the wall-clock format stamped on saved submissions.
const TimestampLayout = "2006-01-02 15:04:05"
