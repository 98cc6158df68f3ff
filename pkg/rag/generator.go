package rag

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/llm"
	"github.com/callscopeco/callscope/pkg/llm/provider"
)

// systemPrompt fixes the grounding contract: answer only from the supplied
// context, say clearly when the information is absent, and cite sources.
// The corpus is French hostess/customer phone dialogues, so the contract is
// stated in the user-facing language.
const systemPrompt = "Tu es un assistant d'analyse de dialogues téléphoniques (hôtesse/client). " +
	"Tu dois répondre UNIQUEMENT en te basant sur le CONTEXTE fourni. " +
	"Si l'information n'est pas dans le contexte, dis-le clairement."

const userPromptFormat = `CONTEXTE:
%s

QUESTION:
%s

CONSIGNE:
- Réponds en français.
- Donne une réponse structurée (points/étapes si possible).
- Termine par une mini-section: "Sources utilisées" (liste des fichiers/id).`

// citedSourcesHeader marks the section of the answer listing the sources the
// model claims to have used.
const citedSourcesHeader = "sources utilisées"

const (
	// notFoundAnswer is returned without calling the model when retrieval
	// produced no context at all.
	notFoundAnswer = "Aucune information trouvée dans le contexte : le corpus ne contient " +
		"aucun dialogue correspondant à la question."

	// unavailableAnswer is returned when no generation client is configured
	// or the endpoint failed. Retrieved sources are still usable.
	unavailableAnswer = "Génération indisponible : aucun client de génération n'est accessible " +
		"(clé API manquante ou endpoint injoignable). Les sources récupérées restent valables."
)

// defaultTemperature biases generation toward faithful, reproducible
// grounding over creativity.
const defaultTemperature = 0.2

// Generator produces answers grounded in an assembled context window.
// A nil client degrades every call to a marked unavailable answer.
type Generator struct {
	client      provider.Client
	model       string
	temperature float64
	logger      *zap.Logger
}

// NewGenerator creates a Generator. client may be nil when no generation
// credential is configured; Generate then returns unavailable answers
// instead of failing.
func NewGenerator(client provider.Client, model string, logger *zap.Logger) *Generator {
	return &Generator{
		client:      client,
		model:       model,
		temperature: defaultTemperature,
		logger:      logger,
	}
}

// Generate builds the constrained two-part prompt and asks the model for a
// grounded answer. An empty context short-circuits to a deterministic "not
// found" answer without calling the model. Generation failures never
// propagate as errors: they yield a marked unavailable answer so the caller
// can still display retrieved sources.
func (g *Generator) Generate(ctx context.Context, question string, ragContext Context) *Answer {
	if ragContext.Empty() {
		return &Answer{Text: notFoundAnswer}
	}

	if g.client == nil {
		return &Answer{Text: unavailableAnswer, Unavailable: true}
	}

	temperature := g.temperature
	req := &llm.ChatRequest{
		Model: g.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(systemPrompt),
			llm.NewUserMessage(fmt.Sprintf(userPromptFormat, ragContext.Text, question)),
		},
		Temperature: &temperature,
	}

	resp, err := g.client.Chat(ctx, req)
	if err != nil {
		g.logger.Warn("generation failed, returning unavailable answer",
			zap.String("provider", g.client.Name()),
			zap.Error(err),
		)
		return &Answer{Text: unavailableAnswer, Unavailable: true}
	}

	text := resp.Message.Content
	return &Answer{
		Text:         text,
		CitedSources: ParseCitedSources(text),
	}
}

// ParseCitedSources extracts the source identifiers listed under the
// answer's "Sources utilisées" section. The identifiers are whatever the
// model echoed back; callers should treat them as claims, not facts.
func ParseCitedSources(text string) []string {
	var cited []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if !inSection {
			if strings.Contains(strings.ToLower(trimmed), citedSourcesHeader) {
				inSection = true
			}
			continue
		}

		item, ok := stripListMarker(trimmed)
		switch {
		case ok && item != "":
			cited = append(cited, item)
		case trimmed == "":
			// blank lines between header and list are fine
		default:
			// the list ended; anything after is prose
			if len(cited) > 0 {
				return cited
			}
		}
	}

	return cited
}

// stripListMarker removes a leading "-", "*", "•", or "1." style marker.
// The second return is false when the line is not a list item.
func stripListMarker(line string) (string, bool) {
	switch {
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "), strings.HasPrefix(line, "• "):
		return strings.TrimSpace(line[2:]), true
	}

	// numbered items: "1. foo" or "1) foo"
	i := 0
	for i < len(line) && unicode.IsDigit(rune(line[i])) {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:]), true
	}

	return "", false
}
