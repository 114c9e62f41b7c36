package constants

import "time"

// Server
const (
	DefaultServerPort   = 7070
	ServerShutdownGrace = 10 * time.Second
)

// Database
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // in minutes
)

// Submission tokens. 62^16 keyspace; the timeslots.submission_token unique
// index is the authority on collisions.
const (
	SubmissionTokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	SubmissionTokenLength   = 16
	TokenMintRetries        = 3
)

// File policy for promo material uploads
const (
	MaxPromoFileSize = 50 << 20 // 50 MiB
)

// Redis keys
const (
	RedisKeyTokenBlacklist = "auth:blacklist:"
	RedisKeyResolveRate    = "ratelimit:resolve:"
)

// Public token path rate limit (fixed window)
const (
	ResolveRateLimit  = 30
	ResolveRateWindow = time.Minute
)

// Background tasks
const (
	TaskTypeSubmissionReceived = "submission:received"
)

// Upload tickets
const (
	UploadTicketTTL = 15 * time.Minute
)
