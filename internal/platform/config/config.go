package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full process configuration, built once in main and passed
// down. Sub-structs group settings per downstream system.
type Config struct {
	Server       Server
	Redis        Redis
	Idam         Idam
	CoreCaseData CoreCaseData
	Docmosis     Docmosis
	SendLetter   SendLetter

	// TemplatePath locates the YAML file binding cover-letter templates to
	// language and template role. Validated at startup.
	TemplatePath string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// Redis configures the token cache. An empty URL disables caching.
type Redis struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Idam configures token acquisition against the identity service.
type Idam struct {
	APIURL       string
	S2SURL       string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	Microservice string
	UserID       string
}

// CoreCaseData configures the case-management platform client.
type CoreCaseData struct {
	URL          string
	Jurisdiction string
	CaseType     string
}

// Docmosis configures the document-rendering service.
type Docmosis struct {
	URL       string
	AccessKey string
}

// SendLetter configures the print-dispatch service.
type SendLetter struct {
	URL     string
	Enabled bool
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr: envOr("EVIDENCE_SHARE_ADDR", ":8080"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 2*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", time.Second),
		},
		Idam: Idam{
			APIURL:       envOr("IDAM_API_URL", "http://localhost:5000"),
			S2SURL:       envOr("IDAM_S2S_AUTH_URL", "http://localhost:4502"),
			ClientID:     envOr("IDAM_OAUTH2_CLIENT_ID", "sscs"),
			ClientSecret: os.Getenv("IDAM_OAUTH2_CLIENT_SECRET"),
			Username:     os.Getenv("IDAM_SSCS_SYSTEMUPDATE_USER"),
			Password:     os.Getenv("IDAM_SSCS_SYSTEMUPDATE_PASSWORD"),
			Microservice: envOr("IDAM_S2S_AUTH_MICROSERVICE", "sscs"),
			UserID:       os.Getenv("IDAM_OAUTH2_USER_ID"),
		},
		CoreCaseData: CoreCaseData{
			URL:          envOr("CORE_CASE_DATA_API_URL", "http://localhost:4452"),
			Jurisdiction: envOr("CORE_CASE_DATA_JURISDICTION_ID", "SSCS"),
			CaseType:     envOr("CORE_CASE_DATA_CASE_TYPE_ID", "Benefit"),
		},
		Docmosis: Docmosis{
			URL:       envOr("PDF_SERVICE_BASE_URL", "http://localhost:5500/rs/render"),
			AccessKey: os.Getenv("PDF_SERVICE_ACCESS_KEY"),
		},
		SendLetter: SendLetter{
			URL:     envOr("SEND_LETTER_SERVICE_BASEURL", "http://localhost:8485"),
			Enabled: envBool("SEND_LETTER_SERVICE_ENABLED", true),
		},
		TemplatePath: envOr("DOCMOSIS_TEMPLATES_CONFIG", "config/templates.yaml"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
