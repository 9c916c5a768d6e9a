package llm

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/denials/internal/common"
	"github.com/Veraticus/denials/internal/model"
)

var requiredFieldKeys = []string{"payer", "cpt_codes", "suggested_action"}

func invalidResponse(format string, args ...any) error {
	return common.NewValidationError("invalid LLM response: "+fmt.Sprintf(format, args...), nil)
}

// ParseClassification parses the model's raw reply and checks it against the
// denial schema. Values are returned as given: no coercion, filtering or
// defaulting.
func ParseClassification(raw string) (model.Classification, error) {
	var root any
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		return model.Classification{}, common.NewValidationError("invalid LLM response: not valid JSON", err)
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return model.Classification{}, invalidResponse("top-level value must be a JSON object")
	}

	categories, err := parseCategories(obj)
	if err != nil {
		return model.Classification{}, err
	}

	fields, err := parseExtractedFields(obj)
	if err != nil {
		return model.Classification{}, err
	}

	return model.Classification{
		Categories:      categories,
		ExtractedFields: fields,
	}, nil
}

func parseCategories(obj map[string]any) ([]model.Category, error) {
	rawCategories, ok := obj["categories"]
	if !ok {
		return nil, invalidResponse("missing categories field")
	}

	items, ok := rawCategories.([]any)
	if !ok {
		return nil, invalidResponse("categories must be an array")
	}

	categories := make([]model.Category, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, invalidResponse("categories[%d] must be a string", i)
		}
		category, err := model.ParseCategory(s)
		if err != nil {
			return nil, invalidResponse("categories[%d]: %v", i, err)
		}
		categories = append(categories, category)
	}

	return categories, nil
}

func parseExtractedFields(obj map[string]any) (model.ExtractedFields, error) {
	rawFields, ok := obj["extracted_fields"]
	if !ok {
		return model.ExtractedFields{}, invalidResponse("missing extracted_fields field")
	}

	fields, ok := rawFields.(map[string]any)
	if !ok {
		return model.ExtractedFields{}, invalidResponse("extracted_fields must be an object")
	}

	for _, key := range requiredFieldKeys {
		if _, present := fields[key]; !present {
			return model.ExtractedFields{}, invalidResponse("extracted_fields missing key %q", key)
		}
	}

	codes, ok := fields["cpt_codes"].([]any)
	if !ok {
		return model.ExtractedFields{}, invalidResponse("extracted_fields.cpt_codes must be an array")
	}
	cptCodes := make([]string, 0, len(codes))
	for i, code := range codes {
		s, ok := code.(string)
		if !ok {
			return model.ExtractedFields{}, invalidResponse("extracted_fields.cpt_codes[%d] must be a string", i)
		}
		cptCodes = append(cptCodes, s)
	}

	payer, err := optionalString(fields, "payer")
	if err != nil {
		return model.ExtractedFields{}, err
	}
	action, err := optionalString(fields, "suggested_action")
	if err != nil {
		return model.ExtractedFields{}, err
	}

	return model.ExtractedFields{
		Payer:           payer,
		CPTCodes:        cptCodes,
		SuggestedAction: action,
	}, nil
}

// optionalString accepts a string or JSON null.
func optionalString(fields map[string]any, key string) (*string, error) {
	switch v := fields[key].(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	default:
		return nil, invalidResponse("extracted_fields.%s must be a string or null", key)
	}
}
