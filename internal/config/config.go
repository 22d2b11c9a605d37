package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Duration accepts "30s" style values in yaml.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Public struct {
	HTTPPort            int      `yaml:"http_port"`
	LogLevel            string   `yaml:"log_level"`
	LogJSON             bool     `yaml:"log_json"`
	JwtTTL              Duration `yaml:"jwt_ttl"`
	SecureCookies       bool     `yaml:"secure_cookies"`
	VerificationCodeLen int      `yaml:"verification_code_len"`
	FileStorageRoot     string   `yaml:"file_storage_root"` // absolute dir holding uploaded file bytes
	Mailer              Mailer   `yaml:"mailer"`
}

type Mailer struct {
	WorkerPath     string   `yaml:"worker_path"`     // atfs-mailworker binary
	ConfigFolder   string   `yaml:"config_folder"`   // passed to the worker so it can load SMTP credentials
	SendTimeout    Duration `yaml:"send_timeout"`    // hard cap on one transport round trip
	DefaultMessage string   `yaml:"default_message"` // body used when the sharer supplies none
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
	Email  Email  `yaml:"email"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

// Email holds SMTP credentials. Loaded only by the mail worker process;
// the values must never be logged.
type Email struct {
	SMTPServer    string `yaml:"smtp_server"`
	SMTPPort      int    `yaml:"smtp_port"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	SenderName    string `yaml:"sender_name"`
	SystemAddress string `yaml:"system_address"` // From address for all outbound mail
	Timeout       int    `yaml:"timeout"`        // seconds, per SMTP dial
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL.Std()
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.HTTPPort == 0 {
		c.Public.HTTPPort = 8080
	}
	if c.Public.VerificationCodeLen == 0 {
		c.Public.VerificationCodeLen = 6
	}
	if c.Public.Mailer.SendTimeout == 0 {
		c.Public.Mailer.SendTimeout = Duration(30 * time.Second)
	}
	if c.Public.Mailer.DefaultMessage == "" {
		c.Public.Mailer.DefaultMessage = "Please find the attached files below. If you have any questions, feel free to reach out."
	}
}
