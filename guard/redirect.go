package guard

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/navigation"
)

// LoginRedirect is the login location carrying loc as the return path
func LoginRedirect(loc navigation.Location, paths config.PathsConfig) navigation.Location {
	return navigation.Location{Path: paths.GetLoginPath()}.With(paths.GetRedirectQueryParam(), loc.String())
}

// ReturnLocation reads the return path from loc's redirect parameter, falling back to
// the dashboard root when it is absent or not a safe in-app path.
func ReturnLocation(loc navigation.Location, paths config.PathsConfig) navigation.Location {
	if ret, ok := SafeReturnPath(loc.Get(paths.GetRedirectQueryParam())); ok {
		return navigation.ParseLocation(ret)
	}
	return navigation.Location{Path: paths.GetDashboardRoot()}
}

// SafeReturnPath accepts only same-origin absolute paths: a single leading "/",
// no scheme or host, no backslashes and no control characters.
func SafeReturnPath(raw string) (string, bool) {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "", false
	}
	if strings.ContainsRune(raw, '\\') {
		return "", false
	}
	for _, r := range raw {
		if unicode.IsControl(r) {
			return "", false
		}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "", false
	}
	return raw, true
}
