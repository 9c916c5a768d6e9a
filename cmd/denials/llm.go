package main

import (
	"log/slog"

	"github.com/Veraticus/denials/internal/config"
	"github.com/Veraticus/denials/internal/llm"
	"github.com/Veraticus/denials/internal/service"
)

// newClassifier builds the claim classifier for a run. Tests replace it to
// point at a local server or to inject a fake sleep.
var newClassifier = func(cfg config.LLMConfig, logger *slog.Logger) (service.ClaimClassifier, error) {
	return llm.NewClassifier(cfg, llm.Options{
		Logger:    logger,
		UserAgent: "denials/" + version,
	})
}
