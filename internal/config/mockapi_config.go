package config

import "time"

type MockAPIConfig interface {
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetRefreshTokenLength() int
	GetSuperuserEmail() string
	GetSuperuserPassword() string
}

type MockAPI struct {
	file *File
}

var _ MockAPIConfig = MockAPI{}

func (m MockAPI) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", orDefault(m.file.MockAPI.JWTSecret, "change-me-in-production"))
}

func (m MockAPI) GetAccessTokenExpiry() time.Duration {
	def := time.Duration(orDefault(m.file.MockAPI.AccessTokenMinutes, 15)) * time.Minute
	return GetEnvDuration("ACCESS_TOKEN_EXPIRY", def)
}

func (m MockAPI) GetRefreshTokenExpiry() time.Duration {
	def := time.Duration(orDefault(m.file.MockAPI.RefreshTokenHours, 7*24)) * time.Hour
	return GetEnvDuration("REFRESH_TOKEN_EXPIRY", def)
}

func (MockAPI) GetRefreshTokenLength() int {
	return 32 // 32 bytes = 256 bits
}

func (m MockAPI) GetSuperuserEmail() string {
	return GetEnv("SUPERUSER_EMAIL", orDefault(m.file.MockAPI.SuperuserEmail, "admin@tantana.mg"))
}

func (m MockAPI) GetSuperuserPassword() string {
	return GetEnv("SUPERUSER_PASSWORD", orDefault(m.file.MockAPI.SuperuserPassword, "changethis"))
}
