package env

import "os"

// Get returns the named environment variable or the fallback when it is
// unset or empty. Used for the few knobs that live outside the CHAINFEED_
// config prefix, like LOG_FORMAT and the platform-injected PORT.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
