package contact

import (
	"fmt"
	"net/url"
	"strings"
)

type Intent string

const (
	IntentSkillLearning Intent = "skill_learning"
	IntentDirectService Intent = "direct_service"
)

const DefaultHost = "api.whatsapp.com"

func ParseIntent(s string) (Intent, error) {
	switch i := Intent(strings.TrimSpace(s)); i {
	case IntentSkillLearning, IntentDirectService:
		return i, nil
	default:
		return "", ErrInvalidIntent
	}
}

// Party is one side of a conversation.
type Party struct {
	Name   string
	Number string
}

// Context carries the optional subject of the message.
type Context struct {
	SkillTitle   string
	BookingTitle string
}

type Link struct {
	URL     string `json:"url"`
	Message string `json:"message"`
	Phone   string `json:"phone"`
	Intent  Intent `json:"intent"`
}

// LinkBuilder renders WhatsApp click-to-chat links.
type LinkBuilder struct {
	host string
}

func NewLinkBuilder(host string) *LinkBuilder {
	if host = strings.TrimSpace(host); host == "" {
		host = DefaultHost
	}
	return &LinkBuilder{host: host}
}

// Build validates the provider's number and renders the prefilled message.
// No link is produced when the number is invalid.
func (b *LinkBuilder) Build(provider, requester Party, intent Intent, ctx Context) (*Link, error) {
	number, err := NormalizeNumber(provider.Number)
	if err != nil {
		return nil, err
	}

	msg, err := Message(provider.Name, requester.Name, intent, ctx)
	if err != nil {
		return nil, err
	}

	digits := strings.TrimPrefix(number, "+")
	q := url.Values{}
	q.Set("phone", digits)
	q.Set("text", msg)

	return &Link{
		URL:     (&url.URL{Scheme: "https", Host: b.host, Path: "/send", RawQuery: q.Encode()}).String(),
		Message: msg,
		Phone:   number,
		Intent:  intent,
	}, nil
}

// Message renders the prefilled chat text for an intent.
func Message(providerName, requesterName string, intent Intent, ctx Context) (string, error) {
	providerName = strings.TrimSpace(providerName)
	requesterName = strings.TrimSpace(requesterName)

	switch intent {
	case IntentSkillLearning:
		skill := strings.TrimSpace(ctx.SkillTitle)
		if skill == "" {
			return "", ErrSkillRequired
		}
		return fmt.Sprintf("Hello %s! I'm %s from TalentNest. I'd like to learn %s from you. Are you available to teach?",
			providerName, requesterName, skill), nil
	case IntentDirectService:
		msg := fmt.Sprintf("Hello %s! I'm %s from TalentNest. I'm interested in your services. Can we discuss the details?",
			providerName, requesterName)
		if title := strings.TrimSpace(ctx.BookingTitle); title != "" {
			msg += fmt.Sprintf(` This is about my booking "%s".`, title)
		}
		return msg, nil
	default:
		return "", ErrInvalidIntent
	}
}
