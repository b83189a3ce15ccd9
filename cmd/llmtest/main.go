package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wolfman30/saathi/cmd/mainconfig"
	appconfig "github.com/wolfman30/saathi/internal/config"
	"github.com/wolfman30/saathi/internal/conversation"
	"github.com/wolfman30/saathi/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := appconfig.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	history := []session.Turn{
		{Role: session.RoleUser, Content: "Yaar, boards aa rahe hain aur bahut pressure hai."},
		{Role: session.RoleAssistant, Content: "Boards ka pressure sach mein heavy lagta hai. Sabse zyada kis baat ki tension hai?"},
	}
	prompt := conversation.BuildPrompt(conversation.Persona, history, "Papa expect karte hain 95% aayenge, I can't sleep.")

	req := conversation.LLMRequest{
		Prompt:      prompt,
		MaxTokens:   int32(cfg.LLMMaxTokens),
		Temperature: float32(cfg.LLMTemperature),
	}

	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("LLM Provider Test")
	fmt.Println(rule)

	if cfg.GeminiAPIKey != "" {
		fmt.Println("\n[1] Testing Gemini...")
		client, err := conversation.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			fmt.Printf("    failed to create Gemini client: %v\n", err)
		} else {
			defer client.Close()
			report(ctx, client, req)
		}
	} else {
		fmt.Println("\n[1] Skipping Gemini test (GEMINI_API_KEY not set)")
	}

	if cfg.BedrockModelID != "" {
		fmt.Println("\n[2] Testing Bedrock...")
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			fmt.Printf("    failed to load AWS config: %v\n", err)
			os.Exit(1)
		}
		client, err := conversation.NewBedrockLLMClient(mainconfig.NewBedrockClient(awsCfg, cfg), cfg.BedrockModelID)
		if err != nil {
			fmt.Printf("    failed to create Bedrock client: %v\n", err)
			os.Exit(1)
		}
		report(ctx, client, req)
	} else {
		fmt.Println("\n[2] Skipping Bedrock test (BEDROCK_MODEL_ID not set)")
	}
}

func report(ctx context.Context, client conversation.LLMClient, req conversation.LLMRequest) {
	start := time.Now()
	resp, err := client.Complete(ctx, req)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		fmt.Printf("    error after %v: %v\n", elapsed, err)
		return
	}
	fmt.Printf("    %s response (%v, stop=%s):\n", resp.Provider, elapsed, resp.StopReason)
	fmt.Printf("    %s\n", resp.Text)
	fmt.Printf("    Tokens: in=%d, out=%d\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
}
