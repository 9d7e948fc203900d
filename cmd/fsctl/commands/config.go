package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".fsctl"
	configFileName = "config.yml"
	secretKeyName  = "secret_key"
	masked         = "***"
)

// Config represents the CLI configuration.
type Config struct {
	APIKey       string `json:"api_key,omitempty"        yaml:"api_key,omitempty"`
	SecretKey    string `json:"secret_key,omitempty"     yaml:"secret_key,omitempty"`
	Protocol     string `json:"protocol,omitempty"       yaml:"protocol,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"       yaml:"endpoint,omitempty"`
	Version      string `json:"version,omitempty"        yaml:"version,omitempty"`
	MaxAuthCount int    `json:"max_auth_count,omitempty" yaml:"max_auth_count,omitempty"`

	Reseller string `json:"reseller,omitempty" yaml:"reseller,omitempty"`
	Profile  string `json:"profile,omitempty"  yaml:"profile,omitempty"`

	// Local state
	Storage        string `json:"storage,omitempty"         yaml:"storage,omitempty"`
	SessionBackend string `json:"session_backend,omitempty" yaml:"session_backend,omitempty"`
	SessionPath    string `json:"session_path,omitempty"    yaml:"session_path,omitempty"`
	SessionID      string `json:"session_id,omitempty"      yaml:"session_id,omitempty"`
	NATSURL        string `json:"nats_url,omitempty"        yaml:"nats_url,omitempty"`
	NATSBucket     string `json:"nats_bucket,omitempty"     yaml:"nats_bucket,omitempty"`
	Timezone       string `json:"timezone,omitempty"        yaml:"timezone,omitempty"`

	Output string `json:"output" yaml:"output"`
}

// configFields maps configuration keys to their string form, for set/unset/show.
func configFields(config *Config) map[string]*string {
	return map[string]*string{
		"api_key":         &config.APIKey,
		secretKeyName:     &config.SecretKey,
		"protocol":        &config.Protocol,
		"endpoint":        &config.Endpoint,
		"version":         &config.Version,
		"reseller":        &config.Reseller,
		"profile":         &config.Profile,
		"storage":         &config.Storage,
		"session_backend": &config.SessionBackend,
		"session_path":    &config.SessionPath,
		"session_id":      &config.SessionID,
		"nats_url":        &config.NATSURL,
		"nats_bucket":     &config.NATSBucket,
		"timezone":        &config.Timezone,
		"output":          &config.Output,
	}
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage fsctl configuration: credentials, endpoint and local state",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.SecretKey != "" {
				config.SecretKey = masked
			}

			out := cmd.OutOrStdout()

			switch viper.GetString("output") {
			case constants.FormatJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(out)

				err := encoder.Encode(config)
				if err != nil {
					return fmt.Errorf("failed to encode YAML: %w", err)
				}

				return encoder.Close()
			default:
				return displayConfigTable(out, config)
			}
		},
	}
}

func displayConfigTable(out io.Writer, config *Config) error {
	fields := configFields(config)
	fields["max_auth_count"] = nil

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	for _, key := range keys {
		value := ""

		if field := fields[key]; field != nil {
			value = *field
		} else if config.MaxAuthCount > 0 {
			value = strconv.Itoa(config.MaxAuthCount)
		}

		_ = table.Append(key, value)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value and persist it to the config file",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	if key == "max_auth_count" {
		if value == "" {
			config.MaxAuthCount = 0

			return nil
		}

		count, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max_auth_count %q: %w", value, err)
		}

		config.MaxAuthCount = count

		return nil
	}

	field, ok := configFields(config)[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	*field = value

	return nil
}

func loadConfig() *Config {
	return &Config{
		APIKey:         viper.GetString("api_key"),
		SecretKey:      viper.GetString(secretKeyName),
		Protocol:       viper.GetString("protocol"),
		Endpoint:       viper.GetString("endpoint"),
		Version:        viper.GetString("version"),
		MaxAuthCount:   viper.GetInt("max_auth_count"),
		Reseller:       viper.GetString("reseller"),
		Profile:        viper.GetString("profile"),
		Storage:        viper.GetString("storage"),
		SessionBackend: viper.GetString("session_backend"),
		SessionPath:    viper.GetString("session_path"),
		SessionID:      viper.GetString("session_id"),
		NATSURL:        viper.GetString("nats_url"),
		NATSBucket:     viper.GetString("nats_bucket"),
		Timezone:       viper.GetString("timezone"),
		Output:         viper.GetString("output"),
	}
}

// configDir returns ~/.fsctl, creating it when needed.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, configDirName)

	err = os.MkdirAll(dir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}

		configFile = filepath.Join(dir, configFileName)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
