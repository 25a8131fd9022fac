// ABOUTME: Name pools for client FullName generation.
// ABOUTME: Uses OpenAI to suggest names when configured, falls back to the static pool.

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"
)

// NamePool holds the first and last names a client FullName is built from.
type NamePool struct {
	First []string `json:"first_names"`
	Last  []string `json:"last_names"`
}

// Empty reports whether either half of the pool has no names.
func (p NamePool) Empty() bool {
	return len(p.First) == 0 || len(p.Last) == 0
}

// NameSource produces name pools using OpenAI or the static fallback.
type NameSource struct {
	client *openai.Client
	useAI  bool
	model  string
}

// NewNameSource creates a source, loading OPENAI_API_KEY from .env if available.
func NewNameSource() *NameSource {
	s := &NameSource{}

	// Try to load .env from current dir or parent dirs
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".env"))
	}

	s.model = os.Getenv("OPENAI_MODEL")
	if s.model == "" {
		s.model = "gpt-5-mini"
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
		s.useAI = true
		log.Printf("OpenAI API key found, using AI-generated names with model: %s", s.model)
	} else {
		log.Println("No OPENAI_API_KEY found, using static name pool")
	}

	return s
}

// Pool returns an AI-generated pool of roughly count names per half.
// Any failure falls back to StaticNames.
func (s *NameSource) Pool(ctx context.Context, count int) NamePool {
	if s == nil || !s.useAI {
		return StaticNames()
	}

	log.Printf("  ⏳ Generating %d first and last names...", count)
	pool, err := s.generateNames(ctx, count)
	if err != nil {
		log.Printf("  ✗ Failed to generate names: %v", err)
		log.Print("Falling back to static name pool...")
		return StaticNames()
	}
	log.Printf("  ✓ Generated %d first names, %d last names", len(pool.First), len(pool.Last))
	return pool
}

func (s *NameSource) generateNames(ctx context.Context, count int) (NamePool, error) {
	prompt := fmt.Sprintf(`Generate %d realistic first names and %d realistic last names for insurance customers living in Germany.
Mix traditional German names with names common among international residents.

Return a JSON object with two arrays: first_names and last_names.
Each entry is a single name without titles or initials.`, count, count)

	pool, err := callOpenAI[NamePool](ctx, s.client, s.model, prompt)
	if err != nil {
		return NamePool{}, err
	}

	pool.First = cleanNames(pool.First)
	pool.Last = cleanNames(pool.Last)
	if pool.Empty() {
		return NamePool{}, fmt.Errorf("response contained no usable names")
	}
	return pool, nil
}

// cleanNames trims entries and drops blanks and duplicates.
func cleanNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func callOpenAI[T any](ctx context.Context, client *openai.Client, model, prompt string) (T, error) {
	var result T

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a data generator. Always respond with valid JSON only, no markdown or explanation.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return result, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return result, nil
}
