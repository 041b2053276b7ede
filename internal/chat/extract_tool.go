package chat

import (
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/brightlinelabs/leadchat/internal/leads"
)

const extractLeadFunctionName = "extract_lead"

// extractLeadTool is the function schema advertised on every first
// completion call so the model can surface contact details it recognizes
// in the conversation. Built once, never mutated per call.
var extractLeadTool = openai.Tool{
	Type: openai.ToolTypeFunction,
	Function: &openai.FunctionDefinition{
		Name:        extractLeadFunctionName,
		Description: "Record a visitor's contact details once the conversation reveals their name, email address and phone number.",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"name": {
					Type:        jsonschema.String,
					Description: "The visitor's full name",
				},
				"email": {
					Type:        jsonschema.String,
					Description: "The visitor's email address",
				},
				"phone": {
					Type:        jsonschema.String,
					Description: "The visitor's phone number",
				},
			},
			Required: []string{"name", "email", "phone"},
		},
	},
}

type extractLeadArgs struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// parseExtractLeadArgs decodes the model's argument payload into a
// candidate triple. All three fields are required; anything less is fatal
// rather than silently defaulted.
func parseExtractLeadArgs(raw string) (leads.Candidate, error) {
	var args extractLeadArgs
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return leads.Candidate{}, fmt.Errorf("%w: %w", ErrBadToolPayload, err)
	}
	if args.Name == "" {
		return leads.Candidate{}, fmt.Errorf("%w: missing name", ErrBadToolPayload)
	}
	if args.Email == "" {
		return leads.Candidate{}, fmt.Errorf("%w: missing email", ErrBadToolPayload)
	}
	if args.Phone == "" {
		return leads.Candidate{}, fmt.Errorf("%w: missing phone", ErrBadToolPayload)
	}
	return leads.Candidate{
		Name:  args.Name,
		Email: args.Email,
		Phone: args.Phone,
	}, nil
}
