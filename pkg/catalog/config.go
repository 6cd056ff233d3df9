package catalog

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the on-disk catalogue cache.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the cache path from a .cadence config file or
// CADENCE_* environment variables, defaulting under the home directory.
func LoadConfig() (Config, error) {
	viper.SetDefault("cache", "~/.cadence/cache")
	viper.SetConfigName(".cadence") // .yaml is implicit
	viper.SetEnvPrefix("CADENCE")
	viper.AutomaticEnv()

	if override := os.Getenv("CADENCE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path := viper.GetString("cache")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return filepath.Clean(f.Path)
}
