package llm

import (
	"context"
	"log/slog"

	"github.com/Veraticus/denials/internal/common"
	"github.com/Veraticus/denials/internal/config"
	"github.com/Veraticus/denials/internal/model"
)

// Classifier turns one denial note into a classified claim.
type Classifier struct {
	client Client
	logger *slog.Logger
}

// NewClassifier creates a classifier backed by the chat-completion endpoint in cfg.
func NewClassifier(cfg config.LLMConfig, opts Options) (*Classifier, error) {
	client, err := NewClient(cfg, opts)
	if err != nil {
		return nil, err
	}
	return NewClassifierWithClient(client, opts.Logger), nil
}

// NewClassifierWithClient wraps an existing Client.
func NewClassifierWithClient(client Client, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{client: client, logger: logger}
}

// ClassifyClaim builds the prompt, calls the model and validates its reply.
// Failures come back as classification errors naming the claim id, except
// cancellation of ctx, which is returned unchanged.
func (c *Classifier) ClassifyClaim(ctx context.Context, claim model.ClaimInput) (model.ClaimOutput, error) {
	c.logger.Debug("classifying claim", "claim_id", claim.ID)

	raw, err := c.client.Complete(ctx, BuildMessages(claim.DenialNote))
	if err != nil {
		if ctx.Err() != nil {
			return model.ClaimOutput{}, ctx.Err()
		}
		return model.ClaimOutput{}, common.NewClassificationError(claim.ID, err)
	}

	classification, err := ParseClassification(raw)
	if err != nil {
		c.logger.Debug("model reply failed validation",
			"claim_id", claim.ID,
			"error", err)
		return model.ClaimOutput{}, common.NewClassificationError(claim.ID, err)
	}

	c.logger.Info("claim classified",
		"claim_id", claim.ID,
		"categories", classification.Categories,
		"cpt_codes", len(classification.ExtractedFields.CPTCodes))

	return model.NewClaimOutput(claim, classification), nil
}
