package clockodo

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "https://my.clockodo.com/api/"

var versionSuffix = regexp.MustCompile(`/v\d+/?$`)

// NormalizeBaseURL makes raw end in a single "/api/" segment with any
// trailing version ("/v2/") removed, so per-family versions can be appended.
func NormalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	base = versionSuffix.ReplaceAllString(base, "/")

	if !strings.HasSuffix(base, "/api/") && !strings.Contains(base, "/api/") {
		base = strings.TrimRight(base, "/") + "/api/"
	}
	return base
}

// decodeEnvelope parses a response body into a top-level object. An empty
// body decodes to an empty envelope.
func decodeEnvelope(family clockodo.Family, body []byte) (clockodo.Envelope, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return clockodo.Envelope{}, nil
	}

	var env clockodo.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &clockodo.UpstreamFormatError{Family: family, Reason: "body is not a JSON object: " + err.Error()}
	}
	if env == nil {
		return nil, &clockodo.UpstreamFormatError{Family: family, Reason: "body is null"}
	}
	return env, nil
}

// NormalizeCollection renames a top-level "data" key to the family's plural
// key. Bodies already using the plural key are returned untouched, and other
// top-level keys are preserved. A collection family without either key is a
// format error.
func NormalizeCollection(family clockodo.Family, env clockodo.Envelope) (clockodo.Envelope, error) {
	key := family.PluralKey()
	if key == "" {
		return env, nil
	}
	if _, ok := env[key]; ok {
		return env, nil
	}
	data, ok := env["data"]
	if !ok {
		return nil, &clockodo.UpstreamFormatError{Family: family, Reason: `neither "data" nor "` + key + `" present`}
	}

	out := make(clockodo.Envelope, len(env))
	for k, v := range env {
		if k != "data" {
			out[k] = v
		}
	}
	out[key] = data
	return out, nil
}

// NormalizeRecord renames a top-level "data" key of a mutation response to the
// family's singular key. Anything else passes through.
func NormalizeRecord(family clockodo.Family, env clockodo.Envelope) clockodo.Envelope {
	key := family.SingularKey()
	if key == "" {
		return env
	}
	if _, ok := env[key]; ok {
		return env
	}
	data, ok := env["data"]
	if !ok {
		return env
	}

	out := make(clockodo.Envelope, len(env))
	for k, v := range env {
		if k != "data" {
			out[k] = v
		}
	}
	out[key] = data
	return out
}
