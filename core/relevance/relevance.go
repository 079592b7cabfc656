package relevance

import (
	"strconv"
	"strings"
	"time"

	"github.com/goto/ticketsearch/core/query"
	"github.com/goto/ticketsearch/core/ticket"
)

const (
	ExactMatchBonus    = 100
	NumberMatchBonus   = 100
	PhoneticMatchBonus = 5

	// MinFuzzyTermLength is the shortest term considered for phonetic and
	// single edit matching.
	MinFuzzyTermLength = 3
)

// Field names, in evaluation order.
const (
	FieldSubject       = "subject"
	FieldCustomerEmail = "customer_email"
	FieldCustomerName  = "customer_name"
	FieldBody          = "body"
	FieldThreadFrom    = "thread_from"
	FieldThreadTo      = "thread_to"
	FieldThreadCc      = "thread_cc"
)

var fieldOrder = []string{
	FieldSubject, FieldCustomerEmail, FieldCustomerName, FieldBody,
	FieldThreadFrom, FieldThreadTo, FieldThreadCc,
}

type Weights struct {
	Subject       float64 `mapstructure:"subject" yaml:"subject" default:"10" validate:"gte=0"`
	CustomerEmail float64 `mapstructure:"customer_email" yaml:"customer_email" default:"8" validate:"gte=0"`
	CustomerName  float64 `mapstructure:"customer_name" yaml:"customer_name" default:"6" validate:"gte=0"`
	Body          float64 `mapstructure:"body" yaml:"body" default:"4" validate:"gte=0"`
	ThreadFrom    float64 `mapstructure:"thread_from" yaml:"thread_from" default:"3" validate:"gte=0"`
	ThreadTo      float64 `mapstructure:"thread_to" yaml:"thread_to" default:"2" validate:"gte=0"`
	ThreadCc      float64 `mapstructure:"thread_cc" yaml:"thread_cc" default:"1" validate:"gte=0"`
}

func DefaultWeights() Weights {
	return Weights{
		Subject:       10,
		CustomerEmail: 8,
		CustomerName:  6,
		Body:          4,
		ThreadFrom:    3,
		ThreadTo:      2,
		ThreadCc:      1,
	}
}

// Of returns the weight configured for a field name.
func (w Weights) Of(field string) float64 {
	switch field {
	case FieldSubject:
		return w.Subject
	case FieldCustomerEmail:
		return w.CustomerEmail
	case FieldCustomerName:
		return w.CustomerName
	case FieldBody:
		return w.Body
	case FieldThreadFrom:
		return w.ThreadFrom
	case FieldThreadTo:
		return w.ThreadTo
	case FieldThreadCc:
		return w.ThreadCc
	}
	return 0
}

// Model scores records against parsed queries. It holds no mutable state.
type Model struct {
	weights Weights
	fuzzy   bool
}

func NewModel(weights Weights, fuzzy bool) Model {
	return Model{weights: weights, fuzzy: fuzzy}
}

func (m Model) Weights() Weights { return m.weights }

func (m Model) Fuzzy() bool { return m.fuzzy }

// Score computes the relevance of rec for p. It is deterministic and never
// negative.
func (m Model) Score(rec ticket.Record, p query.Parsed) float64 {
	fields := fieldValues(rec)

	var score float64
	for _, phrase := range p.Phrases {
		score += m.scoreNeedle(rec, fields, strings.ToLower(phrase), false)
	}
	for _, term := range p.Terms {
		score += m.scoreNeedle(rec, fields, strings.ToLower(term), m.fuzzy)
	}
	return score
}

func (m Model) scoreNeedle(rec ticket.Record, fields map[string]string, needle string, fuzzy bool) float64 {
	if needle == "" {
		return 0
	}

	var score float64
	if isNumber(needle) {
		n := strings.TrimPrefix(needle, "#")
		if n == strconv.FormatInt(rec.Number, 10) || n == strconv.FormatInt(rec.ID, 10) {
			score += NumberMatchBonus
		}
	}

	matched := make(map[string]bool, len(fieldOrder))
	for _, f := range fieldOrder {
		w := m.weights.Of(f)
		v := fields[f]
		if w <= 0 || v == "" {
			continue
		}
		if strings.TrimSpace(v) == needle {
			score += ExactMatchBonus
		}
		if strings.Contains(v, needle) {
			score += w
			matched[f] = true
			if strings.HasPrefix(v, needle) {
				score += 2 * w
			}
		}
	}

	if !fuzzy || len([]rune(needle)) < MinFuzzyTermLength {
		return score
	}

	if phoneticMatch(needle, fields[FieldCustomerName], fields[FieldSubject]) {
		score += PhoneticMatchBonus
	}

	variants := Variants(needle)
	for _, f := range fieldOrder {
		w := m.weights.Of(f)
		v := fields[f]
		if w <= 0 || v == "" || matched[f] {
			continue
		}
		for _, vr := range variants {
			if vr.MatchIn(v) {
				score += w / 2
			}
		}
	}
	return score
}

func phoneticMatch(term string, texts ...string) bool {
	code := Soundex(term)
	if code == "" {
		return false
	}
	for _, txt := range texts {
		for _, word := range strings.Fields(txt) {
			if Soundex(word) == code {
				return true
			}
		}
	}
	return false
}

// fieldValues lower-cases every matchable field of rec.
func fieldValues(rec ticket.Record) map[string]string {
	var from, to, cc []string
	for _, t := range rec.Threads {
		if t.From != "" {
			from = append(from, t.From)
		}
		if t.To != "" {
			to = append(to, t.To)
		}
		if t.Cc != "" {
			cc = append(cc, t.Cc)
		}
		if t.Bcc != "" {
			cc = append(cc, t.Bcc)
		}
	}

	email := rec.CustomerEmail
	if email == "" {
		email = rec.Customer.Email
	}

	return map[string]string{
		FieldSubject:       strings.ToLower(rec.Subject),
		FieldCustomerEmail: strings.ToLower(email),
		FieldCustomerName:  strings.ToLower(rec.Customer.FullName()),
		FieldBody:          strings.ToLower(rec.BodyText()),
		FieldThreadFrom:    strings.ToLower(strings.Join(from, " ")),
		FieldThreadTo:      strings.ToLower(strings.Join(to, " ")),
		FieldThreadCc:      strings.ToLower(strings.Join(cc, " ")),
	}
}

func isNumber(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Key is the ordering key of a ranked record.
type Key struct {
	Score     float64
	UpdatedAt time.Time
	ID        int64
}

// Before reports whether a ranks ahead of b: higher score first, then the
// more recently updated record, then the higher id.
func Before(a, b Key) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	return a.ID > b.ID
}
