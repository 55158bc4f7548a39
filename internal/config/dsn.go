package config

import (
	"net/url"
)

// DockerizeDatabaseURL points a URL-style DSN at the database service inside the
// container network. Credentials, database name and query parameters are kept;
// the host and port are replaced by serviceHost alone.
// Key=value DSNs and unparsable input are returned unchanged.
func DockerizeDatabaseURL(databaseURL, serviceHost string) string {
	u, err := url.Parse(databaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return databaseURL
	}

	u.Host = serviceHost
	return u.String()
}
