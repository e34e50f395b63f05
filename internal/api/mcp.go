package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/tizhi/internal/assessment"
	"github.com/kalambet/tizhi/internal/profile"
	"github.com/kalambet/tizhi/internal/questionnaire"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Registry *assessment.Registry
	Version  string
}

// ClassifyResult is the outcome of classify_scores.
type ClassifyResult struct {
	Primary      questionnaire.Category        `json:"primary"`
	PrimaryLabel string                        `json:"primary_label"`
	Ranking      []questionnaire.CategoryScore `json:"ranking"`
}

// NewMCPServer creates an MCP server with the assessment tools and
// catalog resources registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	s := server.NewMCPServer(
		"tizhi",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("tizhi: adaptive constitution questionnaire. Start an assessment, relay each question to the user, submit their 1-5 answer, then fetch the result."),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("start_assessment",
			mcp.WithDescription("Start a new constitution assessment. Respondent details are optional and enable personalised advice in the result."),
			mcp.WithString("gender", mcp.Description("male or female")),
			mcp.WithNumber("age", mcp.Description("Age in years")),
			mcp.WithString("province", mcp.Description("Province of residence, e.g. 四川")),
			mcp.WithString("city", mcp.Description("City of residence")),
		),
		mcpStartAssessment(deps),
	)

	s.AddTool(
		mcp.NewTool("answer_question",
			mcp.WithDescription("Answer the current question of an assessment on a 1 (never) to 5 (always) scale."),
			mcp.WithString("id", mcp.Description("Assessment ID"), mcp.Required()),
			mcp.WithNumber("value", mcp.Description("Answer from 1 to 5"), mcp.Required()),
		),
		mcpAnswerQuestion(deps),
	)

	s.AddTool(
		mcp.NewTool("go_back",
			mcp.WithDescription("Return an assessment to its previous question."),
			mcp.WithString("id", mcp.Description("Assessment ID"), mcp.Required()),
		),
		mcpGoBack(deps),
	)

	s.AddTool(
		mcp.NewTool("assessment_status",
			mcp.WithDescription("Show the current question and progress of an assessment."),
			mcp.WithString("id", mcp.Description("Assessment ID"), mcp.Required()),
		),
		mcpAssessmentStatus(deps),
	)

	s.AddTool(
		mcp.NewTool("assessment_result",
			mcp.WithDescription("Return scores, primary constitution and advice of a completed assessment."),
			mcp.WithString("id", mcp.Description("Assessment ID"), mcp.Required()),
		),
		mcpAssessmentResult(deps),
	)

	s.AddTool(
		mcp.NewTool("classify_scores",
			mcp.WithDescription("Determine the primary constitution from a JSON object of category scores (0-100)."),
			mcp.WithString("scores", mcp.Description(`JSON object keyed by category, e.g. {"balanced":40,"qi_deficiency":62}`), mcp.Required()),
		),
		mcpClassifyScores(),
	)

	// Resources
	s.AddResource(
		mcp.NewResource(
			"constitution://categories",
			"Constitution Categories",
			mcp.WithResourceDescription("The nine constitution categories with their labels"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceCategories(),
	)

	s.AddResource(
		mcp.NewResource(
			"constitution://questions",
			"Question Bank",
			mcp.WithResourceDescription("Every core and follow-up question in asking order"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceQuestions(deps),
	)

	return s
}

func mcpStartAssessment(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var respondent *profile.Respondent
		rp := profile.Respondent{
			Gender:   profile.Gender(req.GetString("gender", "")),
			Age:      req.GetInt("age", 0),
			Province: req.GetString("province", ""),
			City:     req.GetString("city", ""),
		}
		if rp != (profile.Respondent{}) {
			respondent = &rp
		}

		snap, err := deps.Registry.Start(respondent)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to start assessment: %v", err)), nil
		}
		return mcpJSON(snap)
	}
}

func mcpAnswerQuestion(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}
		v, err := req.RequireFloat("value")
		if err != nil {
			return mcpError("value is required"), nil
		}
		if v != math.Trunc(v) {
			return mcpError(fmt.Sprintf("value must be a whole number, got %v", v)), nil
		}

		snap, err := deps.Registry.Answer(id, int(v))
		if err != nil {
			return mcpError(assessmentMessage(err)), nil
		}
		return mcpJSON(snap)
	}
}

func mcpGoBack(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}
		snap, err := deps.Registry.Back(id)
		if err != nil {
			return mcpError(assessmentMessage(err)), nil
		}
		return mcpJSON(snap)
	}
}

func mcpAssessmentStatus(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}
		snap, err := deps.Registry.Get(id)
		if err != nil {
			return mcpError(assessmentMessage(err)), nil
		}
		return mcpJSON(snap)
	}
}

func mcpAssessmentResult(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}
		rep, err := deps.Registry.Result(id)
		if err != nil {
			return mcpError(assessmentMessage(err)), nil
		}
		return mcpJSON(rep)
	}
}

func mcpClassifyScores() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireString("scores")
		if err != nil {
			return mcpError("scores is required"), nil
		}
		var scores questionnaire.ScoreMap
		if err := json.Unmarshal([]byte(raw), &scores); err != nil {
			return mcpError(fmt.Sprintf("invalid scores: %v", err)), nil
		}
		return mcpJSON(classify(scores))
	}
}

func classify(scores questionnaire.ScoreMap) ClassifyResult {
	primary := questionnaire.ResolvePrimary(scores)
	return ClassifyResult{
		Primary:      primary,
		PrimaryLabel: primary.Label(),
		Ranking:      questionnaire.Rank(scores),
	}
}

func mcpResourceCategories() server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(req.Params.URI, categoryCatalog())
	}
}

func mcpResourceQuestions(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(req.Params.URI, deps.Registry.Bank().All())
	}
}

// assessmentMessage turns registry errors into hints the calling model can
// act on.
func assessmentMessage(err error) string {
	switch {
	case errors.Is(err, assessment.ErrNotFound):
		return fmt.Sprintf("%v; it may have expired, start a new assessment", err)
	case errors.Is(err, questionnaire.ErrInvalidAnswerValue):
		return fmt.Sprintf("%v; answer with a whole number from %d to %d", err, questionnaire.MinValue, questionnaire.MaxValue)
	case errors.Is(err, questionnaire.ErrSessionCompleted):
		return fmt.Sprintf("%v; call assessment_result", err)
	case errors.Is(err, assessment.ErrNotCompleted):
		return fmt.Sprintf("%v; keep answering questions", err)
	default:
		return err.Error()
	}
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcpText(string(b)), nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
