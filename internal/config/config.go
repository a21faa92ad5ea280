package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID      string
	Port           string
	Env            string
	AllowedOrigins []string

	// Cloudinary unsigned upload
	CloudinaryCloudName    string
	CloudinaryUploadPreset string

	// Razorpay
	RazorpayKeyID     string
	RazorpayKeySecret string

	// Outbound contact-mail relay
	MailRelayURL string

	// De-duplicate entities reachable via more than one legacy storage
	// path. Off by default so dashboard numbers stay consistent with
	// historical values.
	DedupeStats bool

	// Maintain aggregate ratings with atomic increments instead of
	// read-aggregate-write.
	UseRatingCounters bool
}

func Load() Config {
	_ = godotenv.Load()

	// FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT
	projectID := getenv("FIREBASE_PROJECT_ID", "")
	if projectID == "" {
		projectID = getenv("GOOGLE_CLOUD_PROJECT", "")
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000")
	allowed := []string{}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	return Config{
		ProjectID:      projectID,
		Port:           getenv("PORT", "8080"),
		Env:            getenv("APP_ENV", "development"),
		AllowedOrigins: allowed,

		CloudinaryCloudName:    getenv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryUploadPreset: getenv("CLOUDINARY_UPLOAD_PRESET", ""),

		RazorpayKeyID:     getenv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getenv("RAZORPAY_KEY_SECRET", ""),

		MailRelayURL: getenv("MAIL_RELAY_URL", ""),

		DedupeStats:       getenv("STATS_DEDUPE", "") == "true",
		UseRatingCounters: getenv("RATING_COUNTERS", "") == "true",
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
