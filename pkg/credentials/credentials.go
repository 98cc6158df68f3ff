// Package credentials resolves generation API keys from the environment.
// Keys are deliberately never persisted to config.toml; the config only
// names the environment variable to read.
package credentials

import "os"

// providerEnvVars maps provider names to their default environment variables.
var providerEnvVars = map[string]string{
	"groq": "GROQ_API_KEY",
}

// Resolve returns the API key for a generation provider. envVar, when
// non-empty, overrides the provider's default environment variable. The
// second return is false when no key is set: callers should degrade to an
// unavailable-generation mode rather than fail.
func Resolve(provider, envVar string) (string, bool) {
	if envVar == "" {
		envVar = providerEnvVars[provider]
	}
	if envVar == "" {
		// local providers such as ollama need no credential
		return "", true
	}

	key := os.Getenv(envVar)
	return key, key != ""
}

// Required reports whether a provider needs an API key at all.
func Required(provider string) bool {
	_, ok := providerEnvVars[provider]
	return ok
}
