package profiler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNoContent is returned when the model produced no candidates.
var ErrNoContent = errors.New("no content generated")

// Describer turns a persona lookup into a customer profile.
type Describer interface {
	DescribePersona(ctx context.Context, persona models.Persona, likelihood string) (*models.ProfileResponse, error)
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(512)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

func (g *GeminiClient) DescribePersona(ctx context.Context, persona models.Persona, likelihood string) (*models.ProfileResponse, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(persona, likelihood)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrNoContent
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	return &models.ProfileResponse{
		Persona:              persona,
		LikelihoodPercentage: likelihood,
		Profile:              ParseProfile(text, persona),
	}, nil
}

// ParseProfile reads the model's single "key: value, key: value" line.
// Demographics the model leaves out are filled in from the persona.
func ParseProfile(text string, persona models.Persona) models.CustomerProfile {
	data := make(map[string]string)

	// List values are themselves comma-separated, so a chunk without
	// ": " continues the previous key's value.
	var lastKey string
	for _, chunk := range strings.Split(strings.TrimSpace(text), ", ") {
		parts := strings.SplitN(chunk, ": ", 2)
		if len(parts) == 2 {
			lastKey = strings.ToLower(strings.TrimSpace(parts[0]))
			data[lastKey] = strings.TrimSpace(parts[1])
			continue
		}
		if lastKey != "" {
			data[lastKey] += "," + strings.TrimSpace(chunk)
		}
	}

	profile := models.CustomerProfile{
		Age:               firstNonEmpty(data["age"], persona.AgeGroup),
		Gender:            firstNonEmpty(data["gender"], persona.Gender),
		Location:          data["location"],
		Occupation:        data["occupation"],
		Income:            firstNonEmpty(data["income"], persona.IncomeBracket),
		PainPoints:        splitList(data["pain_points"]),
		Motivations:       splitList(data["motivations"]),
		Interests:         splitList(data["interests"]),
		PreferredChannels: splitList(data["channel"]),
	}
	return profile
}

// Sketch renders a profile as one line for the terminal.
func Sketch(p models.CustomerProfile) string {
	parts := []string{}
	if p.Occupation != "" {
		parts = append(parts, p.Occupation)
	}
	if p.Location != "" {
		parts = append(parts, p.Location)
	}
	if len(p.Motivations) > 0 {
		parts = append(parts, "motivated by "+strings.Join(p.Motivations, " and "))
	}
	if len(p.PainPoints) > 0 {
		parts = append(parts, "struggles with "+strings.Join(p.PainPoints, " and "))
	}
	if len(p.PreferredChannels) > 0 {
		parts = append(parts, "reached via "+strings.Join(p.PreferredChannels, ", "))
	}
	return strings.Join(parts, "; ")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func BuildPrompt(persona models.Persona, likelihood string) string {
	return fmt.Sprintf(`You are an expert market researcher. A product survey about the Apple Vision Pro found that customers who are %s, aged %s, with a household income of %s rated their likelihood of buying it at %s.

						Generate a SINGLE, concise profile of a typical customer in this group.

						The output MUST be a single line of text in the format "key: value, key: value, ..." without any other text, markdown, or punctuation. Use only the following keys in this order:

						location: Geographic type (e.g., Urban)
						occupation: Job title/occupation (e.g., Marketing Manager)
						pain_points: 1-2 main pain points (comma-separated, no quotes)
						motivations: 1-2 key motivations (comma-separated, no quotes)
						interests: 2-3 interests/hobbies (comma-separated, no quotes)
						channel: 1 preferred channel (e.g., Instagram)

						Example format: location: Urban, occupation: Marketing Manager, pain_points: lack of time, motivations: convenience, quality, interests: gaming, travel, channel: YouTube`,
		persona.Gender, persona.AgeGroup, persona.IncomeBracket, likelihood)
}
