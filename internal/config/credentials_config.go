package config

type CredentialsConfig interface {
	GetCredentialStorePath() string
}

type Credentials struct {
	file *File
}

var _ CredentialsConfig = Credentials{}

// GetCredentialStorePath is the SQLite file holding the access and refresh tokens.
// An empty value keeps credentials in memory only.
func (c Credentials) GetCredentialStorePath() string {
	return GetEnv("CREDENTIAL_STORE", orDefault(c.file.Credentials.StorePath, "./data/credentials.db"))
}
