package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/trivia"
)

// Keys used by SessionRepo. Each part of the session lives under its own
// key so an answer write does not rewrite the question list.
const (
	KeyEmail         = "quiz_email"
	KeySession       = "quiz_session"
	KeyQuestions     = "quiz_questions"
	KeyShuffled      = "quiz_shuffled"
	KeyAnswers       = "quiz_answers"
	KeyStarred       = "quiz_starred"
	KeyTimeRemaining = "quiz_time_remaining"
)

var sessionKeys = []string{KeySession, KeyQuestions, KeyShuffled, KeyAnswers, KeyStarred, KeyTimeRemaining}

// sessionMeta is the small per-session record stored under KeySession.
type sessionMeta struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Phase        quiz.Phase `json:"phase"`
	CurrentIndex int        `json:"currentIndex"`
	Allotted     int        `json:"allotted"`
}

// SessionRepo implements quiz.Repository on a KV. It is used from a single
// goroutine.
type SessionRepo struct {
	kv KV
	// written caches the last value written per key to skip unchanged writes.
	written map[string]string
}

var _ quiz.Repository = (*SessionRepo)(nil)

// NewSessionRepo creates a SessionRepo over kv.
func NewSessionRepo(kv KV) *SessionRepo {
	return &SessionRepo{kv: kv, written: make(map[string]string)}
}

func (r *SessionRepo) Identity(ctx context.Context) (string, error) {
	v, err := r.kv.Get(ctx, KeyEmail)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (r *SessionRepo) SetIdentity(ctx context.Context, email string) error {
	if email == "" {
		return r.kv.Delete(ctx, KeyEmail)
	}
	return r.kv.Set(ctx, KeyEmail, email)
}

func (r *SessionRepo) Load(ctx context.Context) (quiz.State, error) {
	raw, err := r.kv.Get(ctx, KeySession)
	if errors.Is(err, ErrNotFound) {
		return quiz.State{}, quiz.ErrNoState
	}
	if err != nil {
		return quiz.State{}, err
	}
	var meta sessionMeta
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return quiz.State{}, fmt.Errorf("decode %s: %w", KeySession, err)
	}

	st := quiz.State{
		ID:           meta.ID,
		Email:        meta.Email,
		Phase:        meta.Phase,
		CurrentIndex: meta.CurrentIndex,
		Allotted:     meta.Allotted,
	}
	var questions []trivia.Question
	if err := r.getJSON(ctx, KeyQuestions, &questions); err != nil {
		return quiz.State{}, err
	}
	st.Questions = questions
	if err := r.getJSON(ctx, KeyShuffled, &st.Shuffled); err != nil {
		return quiz.State{}, err
	}
	if err := r.getJSON(ctx, KeyAnswers, &st.Answers); err != nil {
		return quiz.State{}, err
	}
	if err := r.getJSON(ctx, KeyStarred, &st.Starred); err != nil {
		return quiz.State{}, err
	}

	remaining, err := r.kv.Get(ctx, KeyTimeRemaining)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return quiz.State{}, err
	default:
		n, err := strconv.Atoi(remaining)
		if err != nil {
			return quiz.State{}, fmt.Errorf("decode %s: %w", KeyTimeRemaining, err)
		}
		st.TimeRemaining = n
	}
	return st, nil
}

func (r *SessionRepo) Save(ctx context.Context, st quiz.State) error {
	meta := sessionMeta{
		ID:           st.ID,
		Email:        st.Email,
		Phase:        st.Phase,
		CurrentIndex: st.CurrentIndex,
		Allotted:     st.Allotted,
	}
	values := []struct {
		key string
		v   any
	}{
		{KeyQuestions, st.Questions},
		{KeyShuffled, st.Shuffled},
		{KeyAnswers, st.Answers},
		{KeyStarred, st.Starred},
		{KeySession, meta},
	}
	for _, kv := range values {
		b, err := json.Marshal(kv.v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", kv.key, err)
		}
		if err := r.set(ctx, kv.key, string(b)); err != nil {
			return err
		}
	}
	return r.set(ctx, KeyTimeRemaining, strconv.Itoa(st.TimeRemaining))
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	clear(r.written)
	return r.kv.Delete(ctx, sessionKeys...)
}

func (r *SessionRepo) set(ctx context.Context, key, value string) error {
	if prev, ok := r.written[key]; ok && prev == value {
		return nil
	}
	if err := r.kv.Set(ctx, key, value); err != nil {
		return err
	}
	r.written[key] = value
	return nil
}

func (r *SessionRepo) getJSON(ctx context.Context, key string, v any) error {
	raw, err := r.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
