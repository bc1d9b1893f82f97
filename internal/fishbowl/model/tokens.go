package model

import (
	"strings"
	"unicode"
)

var DefaultLeadingArticles = []string{"the", "a", "an"}

type Acceptance struct {
	IgnoreLeadingArticle bool
	LeadingArticles      []string
}

func DefaultAcceptance() Acceptance {
	return Acceptance{IgnoreLeadingArticle: true, LeadingArticles: DefaultLeadingArticles}
}

// Token is one word of a title the clue-giver may not say.
// A leading article is optional when the acceptance rules ignore it.
type Token struct {
	Text     string
	Required bool
}

func Tokens(title string, acceptance Acceptance) []Token {
	parts := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]Token, 0, len(parts))
	for i, part := range parts {
		optional := i == 0 && acceptance.IgnoreLeadingArticle && isArticle(part, acceptance.LeadingArticles)
		tokens = append(tokens, Token{Text: part, Required: !optional})
	}

	return tokens
}

func isArticle(word string, articles []string) bool {
	for _, article := range articles {
		if strings.EqualFold(word, article) {
			return true
		}
	}
	return false
}
