package exchangerate

import (
	"errors"
	"net/url"
	"strings"
)

// ProviderError the provider answered but reported a failure,
// e.g. "invalid-key" or "unsupported-code".
type ProviderError struct {
	Type string
}

func (e *ProviderError) Error() string {
	if e.Type == "" {
		return "exchangerate-api: unknown error"
	}
	return "exchangerate-api: " + e.Type
}

// redact strips the API key from the URL carried by *url.Error.
func redact(err error, apiKey string) error {
	if apiKey == "" {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{
			Op:  urlErr.Op,
			URL: strings.ReplaceAll(urlErr.URL, apiKey, "***"),
			Err: urlErr.Err,
		}
	}
	return err
}
