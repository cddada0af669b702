package config

// Configer is the lookup surface every dukaweb component reads its settings through.
type Configer interface {
	LoadFromPath(path string) error
	Load() error
	GetKey(key string) string
	MustGetKey(key string) string
	GetKeyWithDefault(key, defaultValue string) string
	GetIntKey(key string) int
	MustGetIntKey(key string) int
	GetIntKeyWithDefault(key string, defaultValue int) int
}

// Keys understood by dukaweb.
const (
	APIURLKey          = "DUKA_API_URL"
	APITokenKey        = "DUKA_API_TOKEN"
	PortKey            = "DUKAWEB_PORT"
	DBDriverKey        = "DUKA_DB_DRIVER"
	DBDSNKey           = "DUKA_DB_DSN"
	WordsFileKey       = "DUKA_WORDS_FILE"
	LogLevelKey        = "DUKA_LOG_LEVEL"
	DefaultLanguageKey = "DUKA_DEFAULT_LANGUAGE"
	TxRetryKey         = "DUKA_TX_RETRY"
	ServiceTokenKey    = "DUKAWEB_SERVICE_TOKEN"
)

// DefaultDotenvPath is used when no env file is given on the command line.
const DefaultDotenvPath = "~/.dukaweb.env"
