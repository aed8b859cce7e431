/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "RDA"
	configName     = ".rda"
	configFileName = "config"
	configAppDir   = "rda"
)

// Config keys shared by flags, environment and config file
const (
	keyVerbose    = "verbose"
	keyKeep       = "keep"
	keyFormat     = "format"
	keyModules    = "modules"
	keyCheckTools = "check-tools"
	keyPruneStale = "prune-stale"
)

// newConfig creates a viper instance reading RDA_* variables. Dashes in
// keys become underscores, so check-tools is RDA_CHECK_TOOLS.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfigFile reads an explicit config file, or the first of
// ./.rda.yaml and $XDG_CONFIG_HOME/rda/config.yaml. A missing default
// file is not an error.
func loadConfigFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", explicit, err)
		}
		return nil
	}

	candidates := []string{configName + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, configAppDir, configFileName+".yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// bindFlags binds each named flag of cmd to the same viper key
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys ...string) error {
	for _, key := range keys {
		flag := cmd.Flags().Lookup(key)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(key)
		}
		if flag == nil {
			return fmt.Errorf("unknown flag %q", key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", key, err)
		}
	}
	return nil
}
