package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	markdown "github.com/goliatone/go-markdown"
)

const sample = `---
title: Team Handbook
tags:
  - onboarding
---
# Team Handbook

Welcome aboard! Start with the [setup guide](https://example.com/setup).

<script>alert("this never survives")</script>

- Read the handbook
- Meet the team
  - Say hello in the channel
`

func main() {
	cfg := markdown.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"

	dir, err := seedDocuments()
	if err != nil {
		log.Fatalf("seed documents: %v", err)
	}
	defer os.RemoveAll(dir)
	cfg.Documents.BasePath = dir

	mod, err := markdown.New(cfg)
	if err != nil {
		log.Fatalf("markdown: %v", err)
	}

	ctx := context.Background()

	result, err := mod.Validate(ctx, sample, markdown.ProcessingOptions{})
	if err != nil {
		log.Fatalf("validate: %v", err)
	}
	fmt.Printf("valid=%v words=%d reading_time=%dm\n", result.Valid, result.WordCount, result.ReadingTime)
	for _, warning := range result.Warnings {
		fmt.Printf("warning [%s]: %s\n", warning.Code, warning.Message)
	}

	strict, err := mod.Validate(ctx, sample, markdown.ProcessingOptions{StrictMode: true})
	if err != nil {
		log.Fatalf("validate strict: %v", err)
	}
	fmt.Printf("strict valid=%v errors=%d\n", strict.Valid, len(strict.Errors))

	html, err := mod.RenderHTML(sample, markdown.ProcessingOptions{})
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Printf("rendered %d bytes of HTML\n", len(html))
	fmt.Printf("plain text snippet: %.60s...\n", mod.ExtractPlainText(sample))

	svc, err := mod.Documents()
	if err != nil {
		log.Fatalf("documents: %v", err)
	}
	processed, err := svc.ProcessDirectory(ctx, ".", markdown.ProcessingOptions{})
	if err != nil {
		log.Fatalf("process directory: %v", err)
	}
	for _, doc := range processed {
		fmt.Printf("%s: valid=%v title=%q\n",
			doc.Document.FilePath, doc.Result.Valid, doc.Document.FrontMatter.Title)
	}

	validate, err := mod.ValidateDirectoryHandler()
	if err != nil {
		log.Fatalf("handler: %v", err)
	}
	if err := validate.Execute(ctx, markdown.ValidateDirectoryCommand{Directory: "."}); err != nil {
		log.Fatalf("validate directory: %v", err)
	}
	fmt.Println("directory validation completed")
}

func seedDocuments() (string, error) {
	dir, err := os.MkdirTemp("", "markdown-example-*")
	if err != nil {
		return "", err
	}

	docs := map[string]string{
		"handbook.md": sample,
		"faq.md":      "---\ntitle: FAQ\n---\n# FAQ\n\nNothing here yet.\n",
	}
	for name, body := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			os.RemoveAll(dir)
			return "", err
		}
	}
	return dir, nil
}
