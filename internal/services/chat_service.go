package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const chatModelName = "gemini-2.5-flash"

const chatSystemInstruction = "You are a helpful assistant for women's health, specifically focusing on menopause " +
	"and similar situations. Give small and concise answers. If the client describes severe symptoms or medical " +
	"emergencies, strictly advise them to consult a doctor. If the question is not related to women's menopause " +
	"or similar women's health situations, reply exactly with: \"This is not a relevant question.\" " +
	"Be empathetic but professional."

const chatFallbackReply = "I apologize, but I'm having trouble processing your request right now. Please try again later."

var ErrEmptyChatMessage = errors.New("chat message is empty")

// ChatService wraps the Gemini client behind the menopause-assistant prompt.
type ChatService struct {
	client *genai.Client
}

func NewChatService(ctx context.Context, apiKey string) (*ChatService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &ChatService{client: client}, nil
}

func (service *ChatService) Close() {
	if service.client != nil {
		if err := service.client.Close(); err != nil {
			log.Printf("close genai client: %v", err)
		}
	}
}

// Reply answers a single user message. Model failures degrade to a canned
// apology instead of an error so the UI always has something to show.
func (service *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyChatMessage
	}

	model := service.client.GenerativeModel(chatModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(chatSystemInstruction)},
	}

	response, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		log.Printf("chat completion failed: %v", err)
		return chatFallbackReply, nil
	}

	reply := collectResponseText(response)
	if reply == "" {
		return chatFallbackReply, nil
	}
	return reply, nil
}

func collectResponseText(response *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range response.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				builder.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(builder.String())
}
