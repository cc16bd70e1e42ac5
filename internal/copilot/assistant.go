// Package copilot implements the portfolio chat assistant. Questions are
// answered by a Gemini model grounded on the portfolio files.
package copilot

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"devfolio/internal/catalog"
	"devfolio/internal/telemetry"
)

// Greeting opens every chat.
const Greeting = "👋 Hi! I'm your AI assistant. I can help you:\n\n" +
	"- Navigate through the portfolio\n" +
	"- Find relevant projects\n" +
	"- Answer technical questions\n" +
	"- Provide code examples\n\n" +
	"What would you like to know?"

// Apology replaces any failed completion.
const Apology = "I apologize, but I encountered an error processing your request. " +
	"Please ensure your Gemini API key is properly configured (GEMINI_API_KEY or copilot.api_key in the config file)."

// SetupHint is shown instead of the chat when no key is configured.
const SetupHint = "Please add your Gemini API key to use the AI assistant.\n\n" +
	"Set it in your environment:\n\n    GEMINI_API_KEY=your_api_key_here\n\n" +
	"or under copilot.api_key in the config file."

// Acknowledgement is the fixed model turn that follows the system prompt.
const Acknowledgement = "I understand. I will help answer questions about the portfolio using the provided content."

const systemPromptTemplate = `You are an AI assistant for a portfolio website. You have access to the following portfolio content:

%CONTENT%

Please use this information to provide accurate and helpful responses about the portfolio owner's experience, projects, and skills. Format your responses using markdown for better readability.

When answering:
1. Be concise and professional
2. Use markdown formatting for better readability
3. Reference specific projects and experiences from the portfolio
4. Provide code examples when relevant
5. Use bullet points and headers for organization`

// Role names the speaker of a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message in the conversation sent to the model.
type Turn struct {
	Role Role
	Text string
}

// Completer produces the next model message for a conversation.
type Completer interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// Assistant answers questions about the portfolio.
type Assistant struct {
	completer Completer
	files     []catalog.File
	logger    *zap.Logger
}

// NewAssistant returns an assistant. A nil completer means the API key is
// not configured.
func NewAssistant(completer Completer, files []catalog.File, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		completer: completer,
		files:     append([]catalog.File(nil), files...),
		logger:    logger,
	}
}

// Configured reports whether the assistant can answer questions.
func (a *Assistant) Configured() bool {
	return a != nil && a.completer != nil
}

// SystemPrompt builds the grounding prompt for files.
func SystemPrompt(files []catalog.File) string {
	return strings.Replace(systemPromptTemplate, "%CONTENT%", catalog.PromptContext(files), 1)
}

// Conversation returns the three turns sent for question.
func (a *Assistant) Conversation(question string) []Turn {
	return []Turn{
		{Role: RoleUser, Text: SystemPrompt(a.files)},
		{Role: RoleModel, Text: Acknowledgement},
		{Role: RoleUser, Text: question},
	}
}

// Ask returns the model's answer, or Apology on any failure. Errors are
// logged and never surfaced.
func (a *Assistant) Ask(ctx context.Context, question string) string {
	if !a.Configured() {
		return Apology
	}
	ctx, span := telemetry.Start(ctx, "copilot.ask", nil)
	reply, err := a.completer.Complete(ctx, a.Conversation(question))
	telemetry.End(span, err)
	if err != nil {
		a.logger.Warn("copilot completion failed", zap.Error(err))
		return Apology
	}
	if strings.TrimSpace(reply) == "" {
		a.logger.Warn("copilot returned empty reply")
		return Apology
	}
	return reply
}
