// Package askcmder provides the ask command for grounded question answering
// over the stored transcript corpus.
package askcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/cliui"
	"github.com/callscopeco/callscope/pkg/config"
	"github.com/callscopeco/callscope/pkg/credentials"
	embeddingutils "github.com/callscopeco/callscope/pkg/embeddings/utils"
	"github.com/callscopeco/callscope/pkg/llm/provider"
	llmutils "github.com/callscopeco/callscope/pkg/llm/utils"
	"github.com/callscopeco/callscope/pkg/logger"
	"github.com/callscopeco/callscope/pkg/rag"
	vectorutils "github.com/callscopeco/callscope/pkg/vector/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const askLongDesc string = `Ask a question about the stored transcript corpus.

The question is embedded, the most similar transcripts are retrieved from the
vector store, and the generation model answers using only that retrieved
context, citing the transcripts it used. When the corpus contains nothing
relevant, the answer says so instead of inventing one.

Generation requires an API key for hosted providers (read from the
environment variable named by generation.api_key_env, GROQ_API_KEY by
default). Without a key the retrieved sources are still printed, with a
placeholder answer.

Examples:
  callscope ask "Pourquoi le client était-il mécontent ?"
  callscope ask "What did the customer order?" --top 5
  callscope ask "What did the customer order?" --json`

const askShortDesc string = "Ask a question over the transcript corpus"

type askCommander struct {
	question  string
	topK      int
	jsonOut   bool
	configDir string

	debug  bool
	logger *zap.Logger
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.question = args[0]
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&cmder.topK, "top", "k", rag.DefaultTopK, "Number of transcripts to retrieve")
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Output the full result as JSON")

	return cmd
}

func (c *askCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	v, err := config.InitViper(c.configDir)
	if err != nil {
		return err
	}
	cfg := config.FromViper(v)

	pipeline, cleanup, err := newPipeline(ctx, cfg, c.logger)
	if err != nil {
		return err
	}
	defer cleanup()

	output, err := pipeline.Ask(ctx, c.question, c.topK)
	if err != nil {
		return err
	}

	if c.jsonOut {
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	c.printAnswer(output)
	return nil
}

func (c *askCommander) printAnswer(output *rag.AskOutput) {
	rendered, err := cliui.RenderMarkdown(output.Answer.Text)
	if err != nil {
		rendered = output.Answer.Text + "\n"
	}
	fmt.Print(rendered)

	if len(output.Sources) == 0 {
		return
	}

	fmt.Printf("\n  %s\n", headerStyle.Render("Retrieved transcripts:"))
	for _, source := range output.Sources {
		fmt.Printf("  %s  %s %s\n",
			sourceStyle.Render(source.SourceName),
			scoreStyle.Render(fmt.Sprintf("similarity: %.3f", source.Similarity)),
			dimStyle.Render(fmt.Sprintf("(id=%s)", source.ID)),
		)
	}
	fmt.Println()
}

// newPipeline builds the full ask pipeline from config: embedder, vector
// driver, and chat client. When the generation provider needs an API key and
// none is set, the client is left nil so retrieval still works and the
// answer degrades to a placeholder.
func newPipeline(ctx context.Context, cfg *config.Config, log *zap.Logger) (*rag.Pipeline, func(), error) {
	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: cfg.Embedding.Provider,
		TargetURL:    cfg.Embedding.Target,
		Model:        cfg.Embedding.Model,
		Dimensions:   cfg.Embedding.Dimensions,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating embedder: %w", err)
	}

	driver, err := vectorutils.NewVectorDriver(ctx, &vectorutils.NewVectorDriverOpts{
		ProviderType: cfg.VectorStore.Provider,
		Target:       cfg.VectorStore.Target,
		Dimensions:   cfg.Embedding.Dimensions,
		Logger:       log,
	})
	if err != nil {
		embedder.Close()
		return nil, nil, fmt.Errorf("creating vector store: %w", err)
	}

	client := newChatClient(cfg, log)

	cleanup := func() {
		if client != nil {
			client.Close()
		}
		driver.Close()
		embedder.Close()
	}

	return rag.NewPipeline(embedder, driver, client, cfg.Generation.Model, log), cleanup, nil
}

func newChatClient(cfg *config.Config, log *zap.Logger) provider.Client {
	apiKey, ok := credentials.Resolve(cfg.Generation.Provider, cfg.Generation.APIKeyEnv)
	if !ok {
		log.Warn("no API key found for generation provider, answers will be unavailable",
			zap.String("provider", cfg.Generation.Provider),
		)
		fmt.Fprintf(os.Stderr, "  %s no API key set for %s, printing retrieved sources only\n",
			dimStyle.Render("warning:"), cfg.Generation.Provider)
		return nil
	}

	client, err := llmutils.NewClient(&llmutils.NewClientOpts{
		ProviderType: cfg.Generation.Provider,
		TargetURL:    cfg.Generation.Target,
		APIKey:       apiKey,
	})
	if err != nil {
		log.Warn("could not create chat client, answers will be unavailable",
			zap.Error(err),
		)
		return nil
	}

	return client
}
