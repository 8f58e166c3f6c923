package dream

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

const (
	// TitleMaxRunes is the length of an auto-derived title before the ellipsis
	TitleMaxRunes = 50
	// MaxContentRunes bounds a single dream entry
	MaxContentRunes = 20000
	// MaxTags bounds the tags of one dream
	MaxTags = 20
)

// Entry is a recorded dream. Entries belong to exactly one user.
type Entry struct {
	id         string
	userID     string
	title      string
	content    string
	recordedAt time.Time
	wordCount  int
	createdAt  time.Time
}

// NewEntry validates content and derives the title (when empty) and word count.
// Content is normalized to NFC so counts are stable across input methods.
func NewEntry(userID, title, content string, recordedAt time.Time) (*Entry, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	content = strings.TrimSpace(norm.NFC.String(content))
	if content == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentRunes {
		return nil, ErrContentTooLong
	}

	title = strings.TrimSpace(norm.NFC.String(title))
	if title == "" {
		title = DeriveTitle(content)
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	return &Entry{
		id:         uuid.NewString(),
		userID:     userID,
		title:      title,
		content:    content,
		recordedAt: recordedAt.UTC(),
		wordCount:  CountWords(content),
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructEntry reconstructs an entry from persistence
func ReconstructEntry(id, userID, title, content string, recordedAt time.Time, wordCount int, createdAt time.Time) *Entry {
	return &Entry{
		id:         id,
		userID:     userID,
		title:      title,
		content:    content,
		recordedAt: recordedAt,
		wordCount:  wordCount,
		createdAt:  createdAt,
	}
}

func (e *Entry) ID() string            { return e.id }
func (e *Entry) UserID() string        { return e.userID }
func (e *Entry) Title() string         { return e.title }
func (e *Entry) Content() string       { return e.content }
func (e *Entry) RecordedAt() time.Time { return e.recordedAt }
func (e *Entry) WordCount() int        { return e.wordCount }
func (e *Entry) CreatedAt() time.Time  { return e.createdAt }

// DeriveTitle takes the first TitleMaxRunes runes of the content, adding "..." when truncated.
func DeriveTitle(content string) string {
	if utf8.RuneCountInString(content) <= TitleMaxRunes {
		return content
	}
	runes := []rune(content)
	return string(runes[:TitleMaxRunes]) + "..."
}

// CountWords counts whitespace-separated fields.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// Metadata holds the optional mood and tags of a dream.
type Metadata struct {
	dreamID   string
	mood      string
	tags      []string
	updatedAt time.Time
}

// NewMetadata normalizes tags (trimmed, lowercased, deduplicated). It returns nil when
// there is nothing to store.
func NewMetadata(dreamID, mood string, tags []string) (*Metadata, error) {
	mood = strings.TrimSpace(mood)
	clean := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		clean = append(clean, t)
	}
	if len(clean) > MaxTags {
		return nil, ErrTooManyTags
	}
	if mood == "" && len(clean) == 0 {
		return nil, nil
	}
	return &Metadata{
		dreamID:   dreamID,
		mood:      mood,
		tags:      clean,
		updatedAt: time.Now().UTC(),
	}, nil
}

// ReconstructMetadata reconstructs metadata from persistence
func ReconstructMetadata(dreamID, mood string, tags []string, updatedAt time.Time) *Metadata {
	return &Metadata{dreamID: dreamID, mood: mood, tags: tags, updatedAt: updatedAt}
}

func (m *Metadata) DreamID() string      { return m.dreamID }
func (m *Metadata) Mood() string         { return m.mood }
func (m *Metadata) Tags() []string       { return m.tags }
func (m *Metadata) UpdatedAt() time.Time { return m.updatedAt }
