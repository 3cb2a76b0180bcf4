package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/abhisek/quizo/internal/llm"
)

// DefaultOpenTDBURL is the public Open Trivia DB endpoint.
const DefaultOpenTDBURL = "https://opentdb.com/api.php"

const maxResponseBytes = 1 << 20

// openTDBSchema describes the subset of the Open Trivia DB payload we rely on.
var openTDBSchema = &llm.Schema{
	Name:        "opentdb-response",
	Description: "Open Trivia DB api.php response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response_code": map[string]any{"type": "integer"},
			"results": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":              map[string]any{"type": "string"},
						"difficulty":        map[string]any{"type": "string"},
						"category":          map[string]any{"type": "string"},
						"question":          map[string]any{"type": "string"},
						"correct_answer":    map[string]any{"type": "string"},
						"incorrect_answers": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required": []any{"question", "correct_answer", "incorrect_answers"},
				},
			},
		},
		"required": []any{"response_code"},
	},
}

// Open Trivia DB response codes.
var openTDBCodes = map[int]string{
	1: "not enough questions for the query",
	2: "invalid parameter",
	3: "session token not found",
	4: "session token exhausted",
	5: "rate limited",
}

type openTDBResponse struct {
	ResponseCode int             `json:"response_code"`
	Results      []openTDBResult `json:"results"`
}

type openTDBResult struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// OpenTDB fetches questions from the Open Trivia DB REST API.
type OpenTDB struct {
	baseURL string
	client  *http.Client
}

var _ Source = (*OpenTDB)(nil)

// NewOpenTDB creates an OpenTDB source. An empty baseURL uses
// DefaultOpenTDBURL; a nil client gets one with the given timeout.
func NewOpenTDB(baseURL string, client *http.Client, timeout time.Duration) *OpenTDB {
	if baseURL == "" {
		baseURL = DefaultOpenTDBURL
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &OpenTDB{baseURL: baseURL, client: client}
}

func (o *OpenTDB) Name() string { return "opentdb" }

func (o *OpenTDB) Fetch(ctx context.Context, amount int) ([]Question, error) {
	u, err := url.Parse(o.baseURL)
	if err != nil {
		return nil, o.fail(fmt.Errorf("parse base URL: %w", err))
	}
	q := u.Query()
	q.Set("amount", strconv.Itoa(amount))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, o.fail(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, o.fail(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, o.fail(ErrRateLimited)
	case resp.StatusCode >= 500:
		return nil, o.fail(fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status))
	case resp.StatusCode != http.StatusOK:
		return nil, o.fail(fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, o.fail(fmt.Errorf("read body: %w", err))
	}
	if err := llm.Validate(openTDBSchema, body); err != nil {
		return nil, o.fail(err)
	}

	var payload openTDBResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, o.fail(fmt.Errorf("decode body: %w", err))
	}
	if payload.ResponseCode == 5 {
		return nil, o.fail(ErrRateLimited)
	}
	if payload.ResponseCode != 0 {
		msg, ok := openTDBCodes[payload.ResponseCode]
		if !ok {
			msg = "unknown error"
		}
		return nil, o.fail(fmt.Errorf("response code %d: %s", payload.ResponseCode, msg))
	}
	if len(payload.Results) == 0 {
		return nil, o.fail(ErrNoQuestions)
	}

	out := make([]Question, 0, len(payload.Results))
	for _, r := range payload.Results {
		out = append(out, r.toQuestion())
	}
	return reindex(out, amount), nil
}

func (o *OpenTDB) fail(err error) error {
	return &FetchError{Source: o.Name(), Err: err}
}

// toQuestion decodes the HTML entities the API embeds in its strings.
// Correct and incorrect answers are decoded the same way, so exact-match
// scoring is unaffected.
func (r openTDBResult) toQuestion() Question {
	incorrect := make([]string, len(r.IncorrectAnswers))
	for i, a := range r.IncorrectAnswers {
		incorrect[i] = html.UnescapeString(a)
	}
	return Question{
		Text:             html.UnescapeString(r.Question),
		CorrectAnswer:    html.UnescapeString(r.CorrectAnswer),
		IncorrectAnswers: incorrect,
		Difficulty:       Difficulty(r.Difficulty),
		Category:         html.UnescapeString(r.Category),
		Kind:             Kind(r.Type),
	}
}
