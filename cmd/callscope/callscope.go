// Package callscopecmder
package callscopecmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/callscopeco/callscope/cmd/callscope/ask"
	configcmder "github.com/callscopeco/callscope/cmd/callscope/config"
	ingestcmder "github.com/callscopeco/callscope/cmd/callscope/ingest"
	searchcmder "github.com/callscopeco/callscope/cmd/callscope/search"
	servecmder "github.com/callscopeco/callscope/cmd/callscope/serve"
	versioncmder "github.com/callscopeco/callscope/cmd/version"
)

const callscopeLongDesc string = `Callscope answers questions about transcribed phone dialogues.

Ingest a directory of transcripts, then ask questions in natural language:
  callscope ingest ./dialogues    Embed and store a transcript corpus
  callscope ask "..."             Ask a question over the stored corpus
  callscope search "..."          Retrieve transcripts without generation
  callscope serve                 Run the HTTP API server`

const callscopeShortDesc string = "Callscope - Grounded Q&A over call transcripts"

func NewCallscopeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "callscope",
		Short: callscopeShortDesc,
		Long:  callscopeLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Path to .callscope config directory")

	// Add subcommands
	cmd.AddCommand(ingestcmder.NewIngestCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
