package config

import (
	"sort"
	"strings"
)

type Cors struct {
	file *File
}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return strings.Join(origins, ", ")
}

// GetAllowedOrigins reads a comma separated CORS_ORIGINS list, then the file
func (c Cors) GetAllowedOrigins() AllowedOrigins {
	origins := c.file.Cors.AllowedOrigins
	if env := GetEnv("CORS_ORIGINS", ""); env != "" {
		origins = strings.Split(env, ",")
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	allowed := AllowedOrigins{}
	for _, o := range origins {
		allowed[strings.TrimSpace(o)] = nullValue{}
	}
	return allowed
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization, X-Request-ID"
}
