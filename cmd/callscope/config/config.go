// Package configcmder provides the config command for managing persistent
// callscope configuration stored in the .callscope/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent callscope configuration.

Configuration is stored as config.toml in the .callscope/ directory and
provides default values for command flags. CLI flags and CALLSCOPE_*
environment variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  vector_store.provider, vector_store.target,
  embedding.provider, embedding.target, embedding.model, embedding.dimensions,
  generation.provider, generation.target, generation.model, generation.api_key_env,
  api.listen, client.api_target

Use subcommands to get, set, or list configuration values:
  callscope config set <key> <value>    Set a configuration value
  callscope config get <key>            Get a configuration value
  callscope config list                 List all configuration values

Examples:
  callscope config set vector_store.provider pgvector
  callscope config set embedding.model paraphrase-multilingual
  callscope config get generation.model
  callscope config list`

const configShortDesc string = "Manage persistent callscope configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
