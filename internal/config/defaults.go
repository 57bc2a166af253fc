package config

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DataFileName is the board file created in the home directory.
const DataFileName = ".todo.yml"

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("data_file", filepath.Join(home, DataFileName))
	v.SetDefault("log_file", filepath.Join(ConfigDir(), "tdr.log"))
	v.SetDefault("log_level", "warn")
	v.SetDefault("refresh_interval", 500*time.Millisecond)
	v.SetDefault("item_height", 3)
	v.SetDefault("workspace_height", 1)
	v.SetDefault("autosave", false)
	v.SetDefault("watch", true)
	v.SetDefault("status_timeout", 4*time.Second)
	v.SetDefault("theme", map[string]string{})
}
