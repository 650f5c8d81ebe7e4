package sigv4

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/jayantasamaddar/go-kmsrequest/utils"
)

// Errors
const (
	ERROR_READ_ENVIRONMENT_VARIABLES = "Could not read environment variables at `ACCESS_KEY_ID`, `SECRET_ACCESS_KEY` and `REGION`"
	ERROR_NO_CONFIG_FILE_FOUND       = "No configuration file found"
)

// # Configuration holding the credentials and region a Request signs with.
//
// `AccessKeyID`, `SecretKey` and `Region` are what a Request signs
// with. `GlobalDir` and `GlobalProfile` are filled in and read by
// LoadConfig: the `GlobalDir` is expected to hold `credentials` and
// `config` style files, "default" is assumed when `GlobalProfile` is
// empty, and fields already set win, so only the missing ones are read
// from the profile files. A Config passed to SetCredentials (or to
// NewSigner) is used as-is: its profile files are not read.
type Config struct {
	AccessKeyID string // The access key id (for AWS, `aws_access_key_id` of the profile)
	SecretKey   string // The secret access key (for AWS, `aws_secret_access_key` of the profile)
	Region      string // The region
	// Directory path to load profiles from, e.g. `/home/$USER/.aws`
	// (follows the `.aws` folder structure of `config` + `credentials`).
	GlobalDir     string
	GlobalProfile string // The profile to use inside `GlobalDir`
}

func (c *Config) complete() bool {
	return c.AccessKeyID != "" && c.SecretKey != "" && c.Region != ""
}

// LoadConfig resolves a Config for the given organization (e.g.
// "AWS"). Environment variables `ACCESS_KEY_ID`, `SECRET_ACCESS_KEY`
// and `REGION` are read first; fields still missing are read from the
// `$HOME/.{lowercase(org)}` profile directory, profile "default".
func LoadConfig(org string) (*Config, error) {
	if org == "" {
		org = "AWS"
	}

	cfg := &Config{
		AccessKeyID: os.Getenv("ACCESS_KEY_ID"),
		SecretKey:   os.Getenv("SECRET_ACCESS_KEY"),
		Region:      os.Getenv("REGION"),
	}
	if cfg.complete() {
		return cfg, nil
	}

	homeDir, err := utils.HomeDir()
	if err != nil {
		return nil, errors.Wrap(err, ERROR_READ_ENVIRONMENT_VARIABLES)
	}
	cfg.GlobalDir = filepath.Join(homeDir, fmt.Sprintf(".%s", strings.ToLower(org)))
	cfg.GlobalProfile = "default"

	if err := cfg.loadProfile(org); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadProfile fills the missing Config fields from the ini/.env files
// under GlobalDir, restricted to GlobalProfile.
func (c *Config) loadProfile(org string) error {
	if c.GlobalProfile == "" {
		c.GlobalProfile = "default"
	}

	entries, err := os.ReadDir(c.GlobalDir)
	if err != nil {
		return errors.Wrapf(err, "%s & %s", ERROR_NO_CONFIG_FILE_FOUND, ERROR_READ_ENVIRONMENT_VARIABLES)
	}
	if len(entries) == 0 {
		return errors.Errorf("%s | %s", ERROR_READ_ENVIRONMENT_VARIABLES, ERROR_NO_CONFIG_FILE_FOUND)
	}

	keyPrefix := strings.ToLower(org)

	for _, file := range entries {
		if c.complete() {
			break
		}

		path := filepath.Join(c.GlobalDir, file.Name())
		switch filepath.Ext(file.Name()) {
		case "", ".ini", ".conf", ".config":
			for profile := range utils.ReadIniFile(path) {
				if profile.Name != c.GlobalProfile {
					continue
				}
				c.fillFrom(profile.Map, keyPrefix)
			}
		case ".env":
			profile, err := utils.ReadEnvFile(path)
			if err != nil {
				return err
			}
			c.fillFrom(profile.Map, keyPrefix)
		}
	}

	return nil
}

func (c *Config) fillFrom(m map[string]string, keyPrefix string) {
	if c.AccessKeyID == "" {
		if v, ok := m[keyPrefix+"_access_key_id"]; ok {
			c.AccessKeyID = v
		}
	}
	if c.SecretKey == "" {
		if v, ok := m[keyPrefix+"_secret_access_key"]; ok {
			c.SecretKey = v
		}
	}
	if c.Region == "" {
		if v, ok := m["region"]; ok {
			c.Region = v
		}
	}
}
