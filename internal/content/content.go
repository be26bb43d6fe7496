package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"sangha/internal/quiz"
)

// QuizSize is the number of questions requested per generated quiz.
const QuizSize = 5

// Apology is returned by Ask when no answer could be generated.
const Apology = "I'm sorry, I can't answer right now. Please ask a mentor or try again later."

var fallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "sangha_content_fallbacks_total",
	Help: "Generative content requests answered from the offline fallback.",
}, []string{"operation"})

func init() {
	prometheus.MustRegister(fallbacks)
}

// Quote is a short devotional verse.
type Quote struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// staticQuotes rotate by day of year when generation is unavailable.
var staticQuotes = []Quote{
	{Text: "Whatever you do, whatever you eat, whatever you offer or give away, and whatever austerities you perform, do that as an offering unto Me.", Source: "Bhagavad Gita 9.27"},
	{Text: "For one who has conquered the mind, the mind is the best of friends; but for one who has failed to do so, the mind will remain the greatest enemy.", Source: "Bhagavad Gita 6.6"},
	{Text: "You have a right to perform your prescribed duty, but you are not entitled to the fruits of action.", Source: "Bhagavad Gita 2.47"},
	{Text: "One should chant the holy name of the Lord in a humble state of mind, thinking oneself lower than the straw in the street.", Source: "Siksastakam 3"},
	{Text: "Abandon all varieties of religion and just surrender unto Me. I shall deliver you from all sinful reactions. Do not fear.", Source: "Bhagavad Gita 18.66"},
	{Text: "The highest duty for all humanity is that by which men can attain to loving devotional service unto the transcendent Lord.", Source: "Srimad Bhagavatam 1.2.6"},
	{Text: "Those who are constantly devoted to serving Me with love, I give the understanding by which they can come to Me.", Source: "Bhagavad Gita 10.10"},
}

// QuoteForDay picks the fallback quote for t.
func QuoteForDay(t time.Time) Quote {
	return staticQuotes[t.YearDay()%len(staticQuotes)]
}

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Service wraps the generator with offline fallbacks. It never returns errors.
type Service struct {
	gen Generator
	log *zap.Logger
	now func() time.Time
}

// NewService creates a service. gen may be nil, in which case every call falls back.
func NewService(gen Generator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gen: gen, log: log, now: time.Now}
}

func (s *Service) generate(ctx context.Context, op string, p Prompt) (string, bool) {
	if s.gen == nil {
		fallbacks.WithLabelValues(op).Inc()
		return "", false
	}
	out, err := s.gen.Generate(ctx, p)
	if err != nil {
		fallbacks.WithLabelValues(op).Inc()
		s.log.Warn("generation failed, using fallback", zap.String("op", op), zap.Error(err))
		return "", false
	}
	return out, true
}

// DailyQuote returns a generated verse, or the rotating static quote.
func (s *Service) DailyQuote(ctx context.Context) Quote {
	fallback := QuoteForDay(s.now())
	raw, ok := s.generate(ctx, "quote", Prompt{
		Text: `Give one short devotional quote from the Bhagavad Gita, Srimad Bhagavatam or a Vaishnava acharya.
Respond only with JSON: {"text": "<quote>", "source": "<book chapter.verse or author>"}`,
		JSON:        true,
		Temperature: 0.9,
	})
	if !ok {
		return fallback
	}
	js, found := ExtractJSON(raw)
	if !found {
		return fallback
	}
	var q Quote
	if err := json.Unmarshal([]byte(js), &q); err != nil || strings.TrimSpace(q.Text) == "" {
		return fallback
	}
	return q
}

// Ask answers a free-form spiritual question, or returns Apology.
func (s *Service) Ask(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return Apology
	}
	out, ok := s.generate(ctx, "ask", Prompt{
		Text:        question,
		System:      "You are a gentle, knowledgeable guide in the Gaudiya Vaishnava tradition. Answer briefly and kindly, citing scripture where helpful.",
		Temperature: 0.7,
	})
	if !ok || out == "" {
		return Apology
	}
	return out
}

// GenerateQuiz asks for QuizSize questions on topic. Invalid questions are dropped;
// failures yield an empty list.
func (s *Service) GenerateQuiz(ctx context.Context, topic string) []quiz.Question {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return []quiz.Question{}
	}
	raw, ok := s.generate(ctx, "quiz", Prompt{
		Text: fmt.Sprintf(`Create a %d-question multiple-choice quiz about %q for students of the Bhagavad Gita.
Respond only with a JSON array. Each element: {"question": "...", "options": ["a","b","c","d"], "correctIndex": 0-3, "explanation": "..."}`, QuizSize, topic),
		JSON:        true,
		Temperature: 0.4,
	})
	if !ok {
		return []quiz.Question{}
	}
	return parseQuestions(raw)
}

func parseQuestions(raw string) []quiz.Question {
	js, found := ExtractJSON(raw)
	if !found {
		return []quiz.Question{}
	}
	var items []quiz.Question
	if err := json.Unmarshal([]byte(js), &items); err != nil {
		var wrapped struct {
			Questions []quiz.Question `json:"questions"`
		}
		if err := json.Unmarshal([]byte(js), &wrapped); err != nil {
			return []quiz.Question{}
		}
		items = wrapped.Questions
	}
	out := make([]quiz.Question, 0, len(items))
	for i, q := range items {
		q.ID = fmt.Sprintf("q%d", i+1)
		if q.Validate() != nil {
			continue
		}
		out = append(out, q)
		if len(out) == QuizSize {
			break
		}
	}
	return out
}
