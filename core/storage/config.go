package storage

// Config holds configuration for the object store holding catalogs.
type Config struct {
	// Endpoint is the host:port of the S3 compatible service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use TLS.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds input catalogs and reconcile outputs.
	Bucket string `mapstructure:"bucket" default:"dats"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// InputPrefix is where input catalogs are listed from.
	InputPrefix string `mapstructure:"input_prefix" default:"dats/"`
	// OutputPrefix is where reconcile outputs are written.
	OutputPrefix string `mapstructure:"output_prefix" default:"out/"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
