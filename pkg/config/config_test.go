package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/callscopeco/callscope/pkg/config"
)

var _ = Describe("Configer", func() {
	var configDir string

	BeforeEach(func() {
		configDir = GinkgoT().TempDir()
	})

	Describe("LoadConfig", func() {
		It("should return defaults when no config file exists", func() {
			cfger, err := config.NewConfiger(configDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.VectorStore.Provider).To(Equal("sqlite"))
			Expect(cfg.Embedding.Dimensions).To(Equal(uint(384)))
			Expect(cfg.Generation.Provider).To(Equal("groq"))
			Expect(cfg.Generation.APIKeyEnv).To(Equal("GROQ_API_KEY"))
		})

		It("should fill zero-value fields from defaults", func() {
			raw := []byte("[vector_store]\nprovider = \"pgvector\"\n")
			Expect(os.WriteFile(filepath.Join(configDir, "config.toml"), raw, 0o600)).To(Succeed())

			cfger, err := config.NewConfiger(configDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.VectorStore.Provider).To(Equal("pgvector"))
			Expect(cfg.Embedding.Model).To(Equal("paraphrase-multilingual"))
		})
	})

	Describe("SetConfigValue and GetConfigValue", func() {
		It("should round-trip a value through the config file", func() {
			cfger, err := config.NewConfiger(configDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("embedding.model", "all-minilm")).To(Succeed())

			value, err := cfger.GetConfigValue("embedding.model")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("all-minilm"))
		})

		It("should parse numeric keys", func() {
			cfger, err := config.NewConfiger(configDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("embedding.dimensions", "768")).To(Succeed())

			value, err := cfger.GetConfigValue("embedding.dimensions")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("768"))
		})

		It("should reject a non-numeric dimensions value", func() {
			cfger, err := config.NewConfiger(configDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("embedding.dimensions", "many")).NotTo(Succeed())
		})

		It("should reject unknown keys", func() {
			cfger, err := config.NewConfiger(configDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("nope.nothing", "x")).NotTo(Succeed())
			_, getErr := cfger.GetConfigValue("nope.nothing")
			Expect(getErr).To(HaveOccurred())
		})
	})

	Describe("ValidConfigKeys", func() {
		It("should include every documented key", func() {
			keys := config.ValidConfigKeys()
			Expect(keys).To(ContainElements(
				"vector_store.provider",
				"vector_store.target",
				"embedding.provider",
				"embedding.model",
				"embedding.dimensions",
				"generation.provider",
				"generation.model",
				"generation.api_key_env",
				"api.listen",
				"client.api_target",
			))
		})

		It("should agree with IsValidConfigKey", func() {
			for _, key := range config.ValidConfigKeys() {
				Expect(config.IsValidConfigKey(key)).To(BeTrue())
			}
			Expect(config.IsValidConfigKey("bogus")).To(BeFalse())
		})
	})

	Describe("ParseConfigTOML", func() {
		It("should parse a full config", func() {
			raw := []byte(`
[vector_store]
provider = "pgvector"
target = "postgres://localhost:5432/callscope"

[embedding]
provider = "ollama"
model = "paraphrase-multilingual"
dimensions = 384

[generation]
provider = "groq"
model = "llama-3.3-70b-versatile"
`)
			cfg, err := config.ParseConfigTOML(raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.VectorStore.Target).To(Equal("postgres://localhost:5432/callscope"))
			Expect(cfg.Embedding.Dimensions).To(Equal(uint(384)))
			Expect(cfg.Generation.Model).To(Equal("llama-3.3-70b-versatile"))
		})

		It("should reject an unsupported version", func() {
			_, err := config.ParseConfigTOML([]byte("version = 99\n"))
			Expect(err).To(HaveOccurred())
		})

		It("should reject malformed TOML", func() {
			_, err := config.ParseConfigTOML([]byte("[[[not toml"))
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("FromViper", func() {
	It("should honor CALLSCOPE_ environment overrides", func() {
		GinkgoT().Setenv("CALLSCOPE_EMBEDDING_MODEL", "all-minilm")

		v, err := config.InitViper(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())

		cfg := config.FromViper(v)
		Expect(cfg.Embedding.Model).To(Equal("all-minilm"))
	})

	It("should fall back to defaults", func() {
		v, err := config.InitViper(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())

		cfg := config.FromViper(v)
		Expect(cfg.VectorStore.Provider).To(Equal("sqlite"))
		Expect(cfg.API.Listen).To(Equal(":8081"))
	})
})
