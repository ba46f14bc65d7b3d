package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Generator is a single request/response exchange with a text generation
// backend.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

const (
	questionsInstruction = `You are an expert dream analyst. Generate 3 follow-up questions to help the user remember more details about their dream. The questions should be specific to the content they shared and help clarify vague parts or expand on interesting elements. Keep questions concise and focused. Answer with a numbered list only.`

	narrativeInstruction = `You are an expert dream interpreter and creative writer. Your task is to take a user's fragmented dream description and transform it into a cohesive, engaging narrative. Also identify a title, key characters, and possible symbolism. Format your response as JSON with the following structure: {"title": "Dream Title", "reconstructedContent": "Full narrative...", "characters": ["Character 1", "Character 2"], "symbols": ["Symbol 1", "Symbol 2"], "mood": "happy|sad|scary|confusing|neutral", "surrealLevel": "low|medium|high"}`

	imageInstruction = `You are an expert at creating 8-bit pixel art descriptions. Create a concise description (max 50 words) for an 8-bit pixel art image that captures the essence of this dream. Focus on the main setting, mood, and 1-2 key elements. The description should be suitable for an image generation AI to create an 8-bit pixel art style image.`
)

// LLMClient implements Client on top of a Generator.
type LLMClient struct {
	gen Generator
}

// NewLLMClient returns a Client that prompts gen.
func NewLLMClient(gen Generator) *LLMClient {
	return &LLMClient{gen: gen}
}

var _ Client = (*LLMClient)(nil)

func (c *LLMClient) GenerateFollowUpQuestions(ctx context.Context, dreamText string) ([]string, error) {
	completion, err := c.generate(ctx, questionsInstruction, "Here's my dream: "+dreamText)
	if err != nil {
		return nil, fmt.Errorf("%w: questions: %w", ErrTransport, err)
	}
	questions := ParseQuestions(completion)
	if len(questions) == 0 {
		return nil, &ParseError{Raw: completion, Err: errors.New("no questions in completion")}
	}
	return questions, nil
}

func (c *LLMClient) ReconstructNarrative(ctx context.Context, rawContent, additionalDetails string) (Narrative, error) {
	completion, err := c.generate(ctx, narrativeInstruction, narrativeRequest(rawContent, additionalDetails))
	if err != nil {
		return Narrative{}, fmt.Errorf("%w: reconstruct: %w", ErrTransport, err)
	}
	return ParseNarrative(completion)
}

func (c *LLMClient) GenerateImagePrompt(ctx context.Context, dreamText string) (string, error) {
	completion, err := c.generate(ctx, imageInstruction, "Here's the dream to visualize: "+dreamText)
	if err != nil {
		return "", fmt.Errorf("%w: image prompt: %w", ErrTransport, err)
	}
	prompt := strings.TrimSpace(completion)
	if prompt == "" {
		return "", &ParseError{Raw: completion, Err: errors.New("empty image prompt")}
	}
	return prompt, nil
}

func (c *LLMClient) generate(ctx context.Context, system, user string) (string, error) {
	if c == nil || c.gen == nil {
		return "", errors.New("no generator configured")
	}
	return c.gen.Generate(ctx, system, user)
}

func narrativeRequest(rawContent, additionalDetails string) string {
	var sb strings.Builder
	sb.WriteString("Here's my dream: ")
	sb.WriteString(rawContent)
	if strings.TrimSpace(additionalDetails) != "" {
		sb.WriteString("\n\nAdditional details: ")
		sb.WriteString(additionalDetails)
	}
	return sb.String()
}
