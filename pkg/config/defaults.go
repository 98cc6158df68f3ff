package config

const (
	defaultVectorProvider = "sqlite"
	defaultVectorTarget   = "callscope.db"

	defaultEmbeddingProvider   = "ollama"
	defaultEmbeddingTarget     = "http://localhost:11434"
	defaultEmbeddingModel      = "paraphrase-multilingual"
	defaultEmbeddingDimensions = 384

	defaultGenerationProvider = "groq"
	defaultGenerationModel    = "llama-3.3-70b-versatile"
	defaultGenerationKeyEnv   = "GROQ_API_KEY"

	defaultAPIListen       = ":8081"
	defaultClientAPITarget = "http://localhost:8081"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		VectorStore: VectorStoreConfig{
			Provider: defaultVectorProvider,
			Target:   defaultVectorTarget,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultEmbeddingProvider,
			Target:     defaultEmbeddingTarget,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		Generation: GenerationConfig{
			Provider:  defaultGenerationProvider,
			Model:     defaultGenerationModel,
			APIKeyEnv: defaultGenerationKeyEnv,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
	}
}
