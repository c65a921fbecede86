package config

// Client-side navigation targets
const (
	PathLogin         = "/auth/login"
	PathDashboardRoot = "/dashboard"
	PathDashboardHome = "/dashboard/home"
	PathOwnersList    = "/dashboard/admin/management/owners-list"
	PathOwnersPOS     = "/dashboard/admin/management/owners-pos"

	// RedirectQueryParam names the return path on the login route
	RedirectQueryParam = "r"
)

type PathsConfig interface {
	GetLoginPath() string
	GetDashboardRoot() string
	GetDashboardHome() string
	GetRedirectQueryParam() string
}

type Paths struct {
	file *File
}

var _ PathsConfig = Paths{}

func (Paths) GetLoginPath() string {
	return PathLogin
}

func (Paths) GetDashboardRoot() string {
	return PathDashboardRoot
}

func (Paths) GetDashboardHome() string {
	return PathDashboardHome
}

func (Paths) GetRedirectQueryParam() string {
	return RedirectQueryParam
}
