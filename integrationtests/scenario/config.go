package scenario

import "net/http"

// Config holds settings for running a scenario.
type Config struct {
	// RegistryURL is the base URL of the registry under test, e.g. http://localhost:8000.
	RegistryURL string
	// TargetHost is the IPv4 address probe targets listen on. The registry must be able to reach it.
	TargetHost string
	// HTTPClient is used for registry calls; http.DefaultClient when nil.
	HTTPClient *http.Client
}
