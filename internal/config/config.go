package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var Opts *Options

// GetConfig builds the default options and resolves the library paths.
func GetConfig() (*Options, error) {
	GetDefaultOptions()

	libraryDir, err := checkLibraryDir(Opts.Library)
	if err != nil {
		return nil, err
	}

	Opts.Library = libraryDir
	if Opts.MetaDSN == "" {
		Opts.MetaDSN = filepath.Join(Opts.Library, "metadata.db")
	}

	return Opts, nil
}

func checkLibraryDir(libraryDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(libraryDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), libraryDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		libraryDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	libraryDir = strings.TrimRight(libraryDir, "\\/")

	return libraryDir, nil
}

// ParseFile overrides the defaults with values from a config file.
func ParseFile(file string) (*Options, error) {
	if _, err := os.Stat(file); err != nil {
		return nil, errors.Wrapf(err, "unable to access config file %s", file)
	}

	viper.SetConfigFile(file)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(Opts); err != nil {
		return nil, err
	}

	if Opts.MetaDSN == "" {
		Opts.MetaDSN = filepath.Join(Opts.Library, "metadata.db")
	}
	return Opts, nil
}

// FindUser returns the configured account matching username, or nil.
func (o *Options) FindUser(username string) *UserOption {
	for i := range o.Users {
		if o.Users[i].Username == username {
			return &o.Users[i]
		}
	}
	return nil
}
