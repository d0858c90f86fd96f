// File: internal/services/translate/languages.go
package translate

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the answer languages offered to users.
type Language struct {
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	NativeName string       `json:"native_name"`
	Tag        language.Tag `json:"-"`
}

// IsSource reports whether answers already arrive in this language.
func (l Language) IsSource() bool {
	return l.Code == English.Code
}

var (
	English  = Language{Code: "en", Name: "English", NativeName: "English", Tag: language.English}
	Maori    = Language{Code: "mi", Name: "Te Reo Māori", NativeName: "Te Reo Māori", Tag: language.MustParse("mi")}
	Samoan   = Language{Code: "sm", Name: "Samoan", NativeName: "Gagana Sāmoa", Tag: language.MustParse("sm")}
	Mandarin = Language{Code: "zh-CN", Name: "Mandarin", NativeName: "中文", Tag: language.MustParse("zh-CN")}
)

var supported = []Language{English, Maori, Samoan, Mandarin}

var matcher = language.NewMatcher([]language.Tag{English.Tag, Maori.Tag, Samoan.Tag, Mandarin.Tag})

// Supported returns the offered languages, source language first.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// ParseLanguage resolves a BCP 47 code to a supported language. An empty code
// means English.
func ParseLanguage(code string) (Language, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return English, nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return Language{}, &TranslationError{
			Type:    ErrTypeValidation,
			Message: "invalid language code " + code,
			Cause:   err,
		}
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return Language{}, &TranslationError{
			Type:    ErrTypeValidation,
			Message: "unsupported language " + code,
		}
	}
	return supported[index], nil
}
