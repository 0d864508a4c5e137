package cli

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pointskel/skeleton"
)

// ErrUnknownConfigKey indicates a key in the config file that maps to no field.
var ErrUnknownConfigKey = errors.New("cli: unknown config key")

// loadConfig decodes path over skeleton.DefaultConfig, so a file only needs
// the keys it changes. An empty path returns the defaults.
func loadConfig(path string) (skeleton.Config, error) {
	cfg := skeleton.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w in %s: %s", ErrUnknownConfigKey, path, undecoded[0])
	}

	return cfg, cfg.Validate()
}

// configCommand prints the default configuration.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default pipeline configuration as TOML",
		Long: `Print the default pipeline configuration as TOML.

Save the output, edit the keys you need and pass the file to
'pointskel skeleton --config'. Missing keys keep their defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(skeleton.DefaultConfig())
		},
	}
}
