package intelligence

import (
	"context"
	"regexp"
	"strings"

	"github.com/alexanderramin/marty/internal/app"
	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/llm"
	"go.uber.org/zap"
)

// Classifier maps a reply to a yes/no question onto a Confirmation.
type Classifier = app.ConfirmationClassifier

var (
	_ Classifier = KeywordClassifier{}
	_ Classifier = (*LLMClassifier)(nil)
)

var (
	confirmPhrases = []string{"yes", "y", "yeah", "yep", "yup", "sure", "ok", "okay", "confirm", "do it", "go ahead", "sounds good", "please do"}
	declinePhrases = []string{"no", "n", "nope", "nah", "cancel", "stop", "don't", "dont", "never mind", "nevermind", "not now"}
)

// KeywordClassifier matches a fixed vocabulary. Only replies made up
// entirely of one phrase, ignoring case and trailing punctuation, count.
type KeywordClassifier struct{}

func (KeywordClassifier) Classify(_ context.Context, text string) domain.Confirmation {
	return classifyKeywords(text)
}

func classifyKeywords(text string) domain.Confirmation {
	norm := normalizeReply(text)
	if norm == "" {
		return domain.Unknown
	}
	for _, p := range confirmPhrases {
		if norm == p {
			return domain.Confirm
		}
	}
	for _, p := range declinePhrases {
		if norm == p {
			return domain.Decline
		}
	}
	return domain.Unknown
}

func normalizeReply(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.TrimRight(s, ".!?, ")
	s = strings.ReplaceAll(s, "’", "'")
	return strings.Join(strings.Fields(s), " ")
}

// LLMClassifier tries the keyword vocabulary first and asks the model
// only when that is inconclusive.
type LLMClassifier struct {
	client llm.LLMClient
	log    *zap.Logger
}

func NewLLMClassifier(client llm.LLMClient, log *zap.Logger) *LLMClassifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMClassifier{client: client, log: log}
}

func (c *LLMClassifier) Classify(ctx context.Context, text string) domain.Confirmation {
	if conf := classifyKeywords(text); conf != domain.Unknown {
		return conf
	}
	if strings.TrimSpace(text) == "" {
		return domain.Unknown
	}

	resp, err := c.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskClassify,
		SystemPrompt: classifySystemPrompt,
		UserPrompt:   classifyUserPrompt(text),
	})
	if err != nil {
		c.log.Warn("confirmation classify failed", zap.Error(err))
		return domain.Unknown
	}
	return parseClassification(resp.Text)
}

var wordNo = regexp.MustCompile(`\bNO\b`)

// parseClassification reads the model's one-word answer. CONFIRM wins over
// DECLINE; a bare NO counts as DECLINE but the NO inside UNKNOWN does not.
func parseClassification(raw string) domain.Confirmation {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, string(domain.Confirm)):
		return domain.Confirm
	case strings.Contains(s, string(domain.Decline)), wordNo.MatchString(s):
		return domain.Decline
	default:
		return domain.Unknown
	}
}
