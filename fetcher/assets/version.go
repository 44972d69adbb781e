package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lolbrowser/fetcher/requests"
)

// ResolveVersion returns the version to be used on every url.
// A fixed version is returned as is, "latest" is resolved once from the versions list.
func ResolveVersion(ctx context.Context, f requests.Fetcher, baseURL string, version string) (string, error) {
	if version != latestVersion {
		return version, nil
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	// Read the version json/array into the version.
	var versions []string
	if err := requests.GetJSON(ctx, f, fmt.Sprint(baseURL, "api/versions.json"), &versions); err != nil {
		return "", fmt.Errorf("couldn't get the current version: %w", err)
	}

	if len(versions) == 0 {
		return "", errors.New("no versions available")
	}
	return versions[0], nil
}
