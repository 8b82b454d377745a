package middleware

import (
	"net/url"
	"strings"
)

// Routes partitions the URL space for the gate. Everything that is not
// the login page or public is protected.
type Routes struct {
	LoginPath      string
	LandingPath    string
	PublicPrefixes []string
	PublicPaths    []string
}

func DefaultRoutes() Routes {
	return Routes{
		LoginPath:      "/login",
		LandingPath:    "/orders",
		PublicPrefixes: []string{"/api/auth", "/static"},
		PublicPaths:    []string{"/favicon.ico"},
	}
}

func (r Routes) isPublic(path string) bool {
	for _, p := range r.PublicPaths {
		if path == p {
			return true
		}
	}
	for _, p := range r.PublicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// LoginURL is the login page with path as the return target.
func (r Routes) LoginURL(path string) string {
	q := url.Values{}
	q.Set("next", path)
	return r.LoginPath + "?" + q.Encode()
}
