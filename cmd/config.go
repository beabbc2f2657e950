package cmd

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	LogLevel           string
	SyncEndpoint       string
	SyncAPIKey         string
	SyncDispatchSpec   string
	SyncBatchLimit     string
	EscalationScanSpec string
}
