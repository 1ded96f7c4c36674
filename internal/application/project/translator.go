package project

import "context"

// Translator renders a message key in the request language
type Translator interface {
	Translate(ctx context.Context, key string) string
}

type identityTranslator struct{}

func (identityTranslator) Translate(_ context.Context, key string) string { return key }

func orIdentity(t Translator) Translator {
	if t == nil {
		return identityTranslator{}
	}
	return t
}
