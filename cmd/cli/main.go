package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"plans-assistant-be/internal/config"
	"plans-assistant-be/pkg/agent/pipeline"
	"plans-assistant-be/pkg/agent/transcript"
	"plans-assistant-be/pkg/catalog"
	"plans-assistant-be/pkg/database"
	"plans-assistant-be/pkg/llm/factory"
	"plans-assistant-be/pkg/querystore"

	"github.com/fatih/color"
)

func main() {
	details := flag.Bool("details", false, "print per-stage diagnostics after each answer")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.AnthropicKey,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("Failed to initialize LLM Provider: %v", err)
	}

	// Pipeline logs go to a file so stdout stays a clean conversation.
	logFile, err := os.OpenFile("cli.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	pipelineLogger := log.New(logFile, "", log.LstdFlags)

	p := pipeline.New(
		llmProvider,
		querystore.NewGormStore(gormDB),
		catalog.NewHTTPClient(cfg.Catalog.BaseURL),
		pipelineLogger,
	)

	header := color.New(color.FgCyan, color.Bold)
	userPrompt := color.New(color.FgGreen, color.Bold)
	answerColor := color.New(color.FgWhite)
	detailColor := color.New(color.FgYellow)
	errColor := color.New(color.FgRed)

	header.Println("Plans Assistant")
	fmt.Println("Ask about plans and categories. Type 'exit' or 'quit' to leave.")
	fmt.Println()

	var t transcript.Transcript
	scanner := bufio.NewScanner(os.Stdin)

	for {
		userPrompt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		res, err := p.Resolve(context.Background(), line, t)
		if err != nil {
			errColor.Printf("error: %v\n", err)
			continue
		}
		t = res.Transcript

		answerColor.Println(res.Answer)

		if *details {
			data, err := json.MarshalIndent(res.Diagnostics, "", "  ")
			if err == nil {
				detailColor.Println(string(data))
			}
		}
		fmt.Println()
	}
}
