package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/maddsua/loginprobe/utils"
)

const (
	DefaultUrl             = "http://localhost:5000/api/auth/login"
	DefaultIdentifierField = "email"
	DefaultSecretField     = "password"
)

type RootConfig struct {
	Target   TargetConfig    `yaml:"target" json:"target"`
	Proxies  ProxyConfigMap  `yaml:"proxies" json:"proxies"`
	Attempts []AttemptConfig `yaml:"attempts" json:"attempts"`
}

type ProxyConfigMap map[string]*ProxyConfig

// Default matches running the tool with no config at all:
// the local auth endpoint and the two built-in login attempts.
func Default() *RootConfig {
	return &RootConfig{
		Target: TargetConfig{
			Url:             DefaultUrl,
			IdentifierField: DefaultIdentifierField,
			SecretField:     DefaultSecretField,
		},
		Attempts: DefaultAttempts(),
	}
}

func DefaultAttempts() []AttemptConfig {
	return []AttemptConfig{
		{
			Identifier:  "nonexistent@example.com",
			Secret:      "password123",
			Description: "Invalid Email",
		},
		{
			//	there's no way to look up a real account from here, so this one is a guess
			Identifier:  "admin@example.com",
			Secret:      "wrongpassword",
			Description: "Invalid Password",
		},
	}
}

func (this *RootConfig) Validate() error {

	for key, val := range this.Proxies {

		if val == nil {
			delete(this.Proxies, key)
			continue
		}

		if err := val.Validate(); err != nil {
			return fmt.Errorf("invalid proxy '%s' config: %s", key, err.Error())
		}
	}

	if err := this.Target.Validate(this.Proxies); err != nil {
		return fmt.Errorf("invalid target config: %s", err.Error())
	}

	if len(this.Attempts) == 0 {
		this.Attempts = DefaultAttempts()
	}

	for idx := range this.Attempts {
		if err := this.Attempts[idx].Validate(); err != nil {
			return fmt.Errorf("invalid attempt #%d config: %s", idx+1, err.Error())
		}
	}

	return nil
}

type TargetConfig struct {
	Url             string            `yaml:"url" json:"url"`
	IdentifierField string            `yaml:"identifier_field" json:"identifier_field"`
	SecretField     string            `yaml:"secret_field" json:"secret_field"`
	CfgTimeout      string            `yaml:"timeout" json:"timeout"`
	Headers         map[string]string `yaml:"headers" json:"headers"`
	Proxy           string            `yaml:"proxy" json:"proxy"`
	SkipTlsVerify   bool              `yaml:"skip_tls_verify" json:"skip_tls_verify"`
	timeout         time.Duration
}

func (this *TargetConfig) Validate(proxies ProxyConfigMap) error {

	if this.Url = strings.TrimSpace(this.Url); this.Url == "" {
		this.Url = DefaultUrl
	}

	if !strings.Contains(this.Url, "://") {
		this.Url = "http://" + this.Url
	}

	targetUrl, err := url.Parse(this.Url)
	if err != nil {
		return fmt.Errorf("invalid url '%s'", this.Url)
	}

	switch strings.ToLower(targetUrl.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("unsupported url scheme '%s'", targetUrl.Scheme)
	}

	if targetUrl.Hostname() == "" {
		return errors.New("url host name required")
	}

	if this.IdentifierField = strings.TrimSpace(this.IdentifierField); this.IdentifierField == "" {
		this.IdentifierField = DefaultIdentifierField
	}

	if this.SecretField = strings.TrimSpace(this.SecretField); this.SecretField == "" {
		this.SecretField = DefaultSecretField
	}

	if this.IdentifierField == this.SecretField {
		return fmt.Errorf("identifier and secret fields are both set to '%s'", this.SecretField)
	}

	if val, err := ParseDuration(this.CfgTimeout); err != nil {
		return fmt.Errorf("invalid timeout: %s", err.Error())
	} else {
		this.timeout = val
	}

	if this.Proxy != "" {

		if len(proxies) == 0 {
			return errors.New("no proxies defined in the config")
		}

		if _, has := proxies[this.Proxy]; !has {
			return fmt.Errorf("target proxy '%s' is not defined", this.Proxy)
		}
	}

	return nil
}

// Timeout is zero unless one was configured; zero means the request waits indefinitely.
func (this *TargetConfig) Timeout() time.Duration {
	return this.timeout
}

type AttemptConfig struct {
	Identifier  string `yaml:"identifier" json:"identifier" validate:"required"`
	Secret      string `yaml:"secret" json:"secret" validate:"required"`
	Description string `yaml:"description" json:"description"`
}

func (this *AttemptConfig) Validate() error {

	if this.Description = strings.TrimSpace(this.Description); this.Description == "" {
		this.Description = this.Identifier
	}

	return utils.ValidateStruct(this)
}

type ProxyConfig struct {
	Url string `yaml:"url" json:"url"`
}

func (this *ProxyConfig) Validate() error {

	if strings.HasPrefix(this.Url, "$") {

		url := os.Getenv(this.Url[1:])
		if url == "" {
			return fmt.Errorf("url variable '%s' is not defined", this.Url)
		}

		this.Url = url
	}

	parsedURL, err := url.Parse(this.Url)
	if err != nil {
		return fmt.Errorf("invalid proxy url: %s", err.Error())
	}

	switch strings.ToLower(parsedURL.Scheme) {
	case "socks", "socks5", "socks5h":
	default:
		return fmt.Errorf("unsupported proxy protocol '%s'", parsedURL.Scheme)
	}

	if parsedURL.Hostname() == "" {
		return fmt.Errorf("invalid proxy url: host name required")
	}

	if parsedURL.Port() == "" {
		return fmt.Errorf("invalid proxy url: port required")
	}

	return nil
}
