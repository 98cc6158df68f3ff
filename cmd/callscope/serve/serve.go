// Package servecmder provides the serve command for running the Callscope
// API server.
package servecmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/callscopeco/callscope/api"
	"github.com/callscopeco/callscope/pkg/config"
	"github.com/callscopeco/callscope/pkg/credentials"
	embeddingutils "github.com/callscopeco/callscope/pkg/embeddings/utils"
	"github.com/callscopeco/callscope/pkg/llm/provider"
	llmutils "github.com/callscopeco/callscope/pkg/llm/utils"
	"github.com/callscopeco/callscope/pkg/logger"
	"github.com/callscopeco/callscope/pkg/rag"
	vectorutils "github.com/callscopeco/callscope/pkg/vector/utils"
)

const serveLongDesc string = `Run the Callscope API server.

Exposes ask and search over HTTP:
  GET  /ping         Health check
  GET  /v1/search    Similarity search over stored transcripts
  POST /v1/ask       Grounded question answering

The embedding provider, vector store, and generation model come from
config.toml, overridable with CALLSCOPE_* environment variables. Without a
generation API key the server still serves search and retrieval; ask
responses carry a placeholder answer.

Examples:
  callscope serve
  callscope serve --listen :9090
  CALLSCOPE_API_LISTEN=:9090 callscope serve`

const serveShortDesc string = "Run the Callscope API server"

type serveCommander struct {
	listen        string
	listenChanged bool
	configDir     string

	debug  bool
	logger *zap.Logger
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			cmder.listenChanged = cmd.Flags().Changed("listen")

			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for API server to listen on (default from config)")

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	v, err := config.InitViper(c.configDir)
	if err != nil {
		return err
	}
	cfg := config.FromViper(v)

	listen := cfg.API.Listen
	if c.listenChanged && c.listen != "" {
		listen = c.listen
	}

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: cfg.Embedding.Provider,
		TargetURL:    cfg.Embedding.Target,
		Model:        cfg.Embedding.Model,
		Dimensions:   cfg.Embedding.Dimensions,
	})
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	driver, err := vectorutils.NewVectorDriver(ctx, &vectorutils.NewVectorDriverOpts{
		ProviderType: cfg.VectorStore.Provider,
		Target:       cfg.VectorStore.Target,
		Dimensions:   cfg.Embedding.Dimensions,
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}
	defer driver.Close()

	client := c.newChatClient(cfg)
	if client != nil {
		defer client.Close()
	}

	pipeline := rag.NewPipeline(embedder, driver, client, cfg.Generation.Model, c.logger)

	server := api.NewServer(api.Config{ListenAddr: listen}, pipeline, c.logger)

	return server.Run()
}

func (c *serveCommander) newChatClient(cfg *config.Config) provider.Client {
	apiKey, ok := credentials.Resolve(cfg.Generation.Provider, cfg.Generation.APIKeyEnv)
	if !ok {
		c.logger.Warn("no API key found for generation provider, ask answers will be unavailable",
			zap.String("provider", cfg.Generation.Provider),
		)
		return nil
	}

	client, err := llmutils.NewClient(&llmutils.NewClientOpts{
		ProviderType: cfg.Generation.Provider,
		TargetURL:    cfg.Generation.Target,
		APIKey:       apiKey,
	})
	if err != nil {
		c.logger.Warn("could not create chat client, ask answers will be unavailable",
			zap.Error(err),
		)
		return nil
	}

	return client
}
