package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/mealmix/internal/cli"
	"github.com/jacksmith/mealmix/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mealmix configuration",
	Long: `Manage config.yaml in the mealmix home directory.

Every key can also be set with a MEALMIX_ environment variable, for
example MEALMIX_REMIX_MODEL or MEALMIX_STORE_BACKEND.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	Long: `Write config.yaml with default values.

With --interactive you are asked for the store backend, the model and the
API key. Fails if config.yaml already exists.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, config.yaml and environment
overrides are merged. The API key is masked.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit config.yaml in $EDITOR",
	Long: `Open config.yaml in $VISUAL or $EDITOR. The edited file is checked
before it replaces the old one.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

var configInitInteractive bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitInteractive, "interactive", "i", false, "ask for the main settings")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

func homeOnly() (*storage.Home, error) {
	dir, err := storage.ResolveHome(homeDir)
	if err != nil {
		return nil, err
	}
	return storage.OpenHome(dir)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := homeOnly()
	if err != nil {
		return err
	}

	cfg := storage.DefaultConfig()
	if configInitInteractive {
		if err := askConfig(cfg); err != nil {
			return err
		}
	}
	if err := home.InitConfig(cfg); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", home.ConfigPath())
	return nil
}

// askConfig fills the main settings of cfg from terminal prompts.
func askConfig(cfg *storage.Config) error {
	backend, err := cli.Pick("Where should saved recipes be kept?", []string{
		storage.BackendFile, storage.BackendSQLite, storage.BackendRedis, storage.BackendMemory,
	})
	if err != nil {
		return err
	}
	cfg.Store.Backend = backend
	if backend == storage.BackendRedis {
		if cfg.Store.RedisURL, err = cli.Ask("Redis URL", cfg.Store.RedisURL); err != nil {
			return err
		}
	}

	if cfg.Remix.Model, err = cli.Ask("Remix model", cfg.Remix.Model); err != nil {
		return err
	}
	if cfg.Remix.APIKey, err = cli.Ask("OpenAI API key (blank to use OPENAI_API_KEY)", ""); err != nil {
		return err
	}
	return cfg.Validate()
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	home, err := homeOnly()
	if err != nil {
		return err
	}
	fmt.Println(home.ConfigPath())
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	_, cfg, err := openHome()
	if err != nil {
		return err
	}
	cfg.Remix.APIKey = maskKey(cfg.Remix.APIKey)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	os.Stdout.Write(data)
	return nil
}

// maskKey keeps only enough of key to recognize it.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + strings.Repeat("*", 8) + key[len(key)-4:]
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	home, err := homeOnly()
	if err != nil {
		return err
	}

	original, err := os.ReadFile(home.ConfigPath())
	existed := err == nil
	if os.IsNotExist(err) {
		original, err = yaml.Marshal(storage.DefaultConfig())
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	editor, err := cli.EditorFromEnv()
	if err != nil {
		return fmt.Errorf("%w; set it or edit %s directly", err, home.ConfigPath())
	}
	edited, err := editor.Edit(original, ".yaml")
	if err != nil {
		return err
	}
	if bytes.Equal(edited, original) {
		fmt.Println("No changes.")
		return nil
	}

	if err := home.WriteConfigBytes(edited); err != nil {
		return err
	}
	if _, err := home.LoadConfig(); err != nil {
		if restoreErr := restoreConfig(home, original, existed); restoreErr != nil {
			return fmt.Errorf("%w (and restoring the old file failed: %v)", err, restoreErr)
		}
		return &cli.ValidationError{Field: "config", Message: err.Error() + "; changes discarded"}
	}
	fmt.Printf("Updated %s\n", home.ConfigPath())
	return nil
}

// restoreConfig puts back the file that was edited, or removes the new one
// if there was no config.yaml before.
func restoreConfig(home *storage.Home, original []byte, existed bool) error {
	if existed {
		return home.WriteConfigBytes(original)
	}
	if err := os.Remove(home.ConfigPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
