package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/goto/ticketsearch/core/ticket"
)

// Operator keywords understood by Parse.
const (
	OpAfter    = "after"
	OpBefore   = "before"
	OpLast     = "last"
	OpFrom     = "from"
	OpTo       = "to"
	OpStatus   = "status"
	OpHas      = "has"
	OpAssigned = "assigned"
)

var knownOperators = map[string]struct{}{
	OpAfter: {}, OpBefore: {}, OpLast: {}, OpFrom: {},
	OpTo: {}, OpStatus: {}, OpHas: {}, OpAssigned: {},
}

type AssigneeKind int

const (
	AssigneeAny AssigneeKind = iota
	AssigneeMe
	AssigneeUnassigned
	AssigneeUser
)

type Assignee struct {
	Kind   AssigneeKind
	UserID int64
}

// ParseAssignee accepts "me", "unassigned" or a numeric user id.
func ParseAssignee(v string) (Assignee, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "me":
		return Assignee{Kind: AssigneeMe}, true
	case "unassigned":
		return Assignee{Kind: AssigneeUnassigned}, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return Assignee{}, false
	}
	return Assignee{Kind: AssigneeUser, UserID: id}, true
}

// Parsed is the structured form of a raw query. Terms and Phrases are
// derived from CleanedText only.
type Parsed struct {
	Terms   []string
	Phrases []string
	// Operators holds the raw value of every operator that took effect.
	Operators   map[string]string
	CleanedText string

	After         *time.Time
	Before        *time.Time
	LastApplied   bool
	From          string
	To            string
	Status        ticket.Status
	HasAttachment bool
	Assignee      Assignee
}

// Needles returns phrases followed by terms.
func (p Parsed) Needles() []string {
	needles := make([]string, 0, len(p.Phrases)+len(p.Terms))
	needles = append(needles, p.Phrases...)
	return append(needles, p.Terms...)
}

func (p Parsed) IsEmpty() bool {
	return len(p.Terms) == 0 && len(p.Phrases) == 0
}

// Parse splits raw into operators, quoted phrases and bare terms. Operators
// are whole whitespace separated tokens of the form name:value with a case
// insensitive name. Every recognised operator token is removed from the
// text, an operator whose value does not resolve has no other effect. When
// an operator repeats, the last occurrence wins. Tokens inside a closed
// quoted phrase are never operators, and quotes are stripped from operator
// values.
func Parse(raw string, now time.Time) Parsed {
	p := Parsed{Operators: map[string]string{}}

	tokens := strings.Fields(raw)
	var kept []string
	inPhrase := false
	for i, tok := range tokens {
		if !inPhrase {
			if name, value, isOp := splitOperator(tok); isOp {
				value = strings.ReplaceAll(value, `"`, "")
				if p.apply(name, value, now) {
					p.Operators[name] = value
				}
				continue
			}
		}
		kept = append(kept, tok)
		if strings.Count(tok, `"`)%2 == 1 {
			inPhrase = !inPhrase && phraseCloses(tokens[i+1:])
		}
	}

	p.CleanedText = strings.Join(kept, " ")
	p.Phrases, p.Terms = splitText(p.CleanedText)
	return p
}

func phraseCloses(rest []string) bool {
	for _, tok := range rest {
		if strings.Contains(tok, `"`) {
			return true
		}
	}
	return false
}

func splitOperator(tok string) (name, value string, ok bool) {
	idx := strings.IndexByte(tok, ':')
	if idx <= 0 {
		return "", "", false
	}
	name = strings.ToLower(tok[:idx])
	if _, known := knownOperators[name]; !known {
		return "", "", false
	}
	return name, tok[idx+1:], true
}

func (p *Parsed) apply(name, value string, now time.Time) bool {
	if value == "" {
		return false
	}

	switch name {
	case OpAfter:
		t, ok := ResolveDate(value, now)
		if !ok || p.LastApplied {
			return false
		}
		t = startOfDay(t)
		p.After = &t

	case OpBefore:
		t, ok := ResolveDate(value, now)
		if !ok || p.LastApplied {
			return false
		}
		t = endOfDay(t)
		p.Before = &t

	case OpLast:
		start, end, ok := ResolvePeriod(value, now)
		if !ok {
			return false
		}
		// last: replaces any after:/before: bounds
		p.After, p.Before = &start, &end
		p.LastApplied = true
		delete(p.Operators, OpAfter)
		delete(p.Operators, OpBefore)

	case OpFrom:
		p.From = strings.ToLower(value)

	case OpTo:
		p.To = strings.ToLower(value)

	case OpStatus:
		s, ok := ticket.ParseStatus(value)
		if !ok {
			return false
		}
		p.Status = s

	case OpHas:
		if !strings.EqualFold(value, "attachment") && !strings.EqualFold(value, "attachments") {
			return false
		}
		p.HasAttachment = true

	case OpAssigned:
		a, ok := ParseAssignee(value)
		if !ok {
			return false
		}
		p.Assignee = a
	}
	return true
}

// splitText extracts double quoted phrases and splits the remainder into
// terms. Quote characters of an unterminated phrase are dropped.
func splitText(text string) (phrases, terms []string) {
	var rest strings.Builder
	for {
		open := strings.IndexByte(text, '"')
		if open < 0 {
			rest.WriteString(text)
			break
		}
		closing := strings.IndexByte(text[open+1:], '"')
		if closing < 0 {
			rest.WriteString(text[:open])
			rest.WriteString(" ")
			rest.WriteString(strings.ReplaceAll(text[open+1:], `"`, " "))
			break
		}
		rest.WriteString(text[:open])
		rest.WriteString(" ")
		if phrase := strings.Join(strings.Fields(text[open+1:open+1+closing]), " "); phrase != "" {
			phrases = append(phrases, phrase)
		}
		text = text[open+closing+2:]
	}

	terms = strings.Fields(rest.String())
	return phrases, terms
}
