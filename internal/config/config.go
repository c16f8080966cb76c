// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - The same Config serves the inference server and the training CLI.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Artifact backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// LogFile, when set, receives a rotated copy of the log stream.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// AllowedOrigins lists CORS origins for the JSON API. Empty disables CORS.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// PredictionTimeoutMS bounds a single model call. Zero disables the bound.
	PredictionTimeoutMS int `koanf:"prediction_timeout_ms"`

	// ArtifactBackend selects where model artifacts live: local or s3.
	ArtifactBackend string `koanf:"artifact_backend"`

	// ModelDir is the local artifact directory (backend=local).
	ModelDir string `koanf:"model_dir"`

	// S3 settings (backend=s3).
	S3Bucket    string `koanf:"s3_bucket"`
	S3Prefix    string `koanf:"s3_prefix"`
	S3Region    string `koanf:"s3_region"`
	S3Endpoint  string `koanf:"s3_endpoint"`
	S3AccessKey string `koanf:"s3_access_key"`
	S3SecretKey string `koanf:"s3_secret_key"`

	// Training inputs.
	DiabetesDataset string  `koanf:"diabetes_dataset"`
	HeartDataset    string  `koanf:"heart_dataset"`
	HoldoutRatio    float64 `koanf:"holdout_ratio"`

	// Classifier hyperparameters.
	ForestTrees        int     `koanf:"forest_trees"`
	ForestMaxDepth     int     `koanf:"forest_max_depth"`
	ForestSeed         int64   `koanf:"forest_seed"`
	LogRegIterations   int     `koanf:"logreg_iterations"`
	LogRegLearningRate float64 `koanf:"logreg_learning_rate"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":8501",
		PredictionTimeoutMS: 2000,
		ArtifactBackend:     BackendLocal,
		ModelDir:            "saved_models",
		S3Region:            "us-east-1",
		DiabetesDataset:     "diabetes.csv",
		HeartDataset:        "heart.csv",
		HoldoutRatio:        0.2,
		ForestTrees:         100,
		ForestMaxDepth:      8,
		ForestSeed:          42,
		LogRegIterations:    1000,
		LogRegLearningRate:  0.1,
	}
}
