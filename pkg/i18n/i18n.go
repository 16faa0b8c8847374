// Package i18n translates the notification texts shown to visitors and admins.
//
// The language is taken from the Accept-Language header and falls back to
// English:
//
//	localizer := i18n.NewLocalizer(i18n.DetectLanguage(r.Header.Get("Accept-Language")))
//	msg := localizer.T("registration.success.title")
package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"
)

// SupportedLanguages are the language codes with a locales/<code>.json file.
var SupportedLanguages = []string{"en", "hi"}

// DefaultLanguage is used when nothing else matches.
const DefaultLanguage = "en"

// translations is map[lang]map[key]value. Written once by Load, read-only after.
var (
	translations map[string]map[string]string
	loadOnce     sync.Once
)

// Load reads <lang>.json for every supported language from localesFS.
// Nested objects are flattened to dotted keys. Only the first call does work.
func Load(localesFS fs.FS) error {
	var loadErr error

	loadOnce.Do(func() {
		translations = make(map[string]map[string]string)

		for _, lang := range SupportedLanguages {
			fileName := lang + ".json"

			data, err := fs.ReadFile(localesFS, fileName)
			if err != nil {
				loadErr = fmt.Errorf("failed to read translation file %s: %w", fileName, err)
				return
			}

			var nested map[string]any
			if err := json.Unmarshal(data, &nested); err != nil {
				loadErr = fmt.Errorf("failed to parse translation file %s: %w", fileName, err)
				return
			}

			flat := make(map[string]string)
			flattenMap("", nested, flat)
			translations[lang] = flat

			log.Printf("[i18n] loaded %d keys for language: %s", len(flat), lang)
		}
	})

	return loadErr
}

// Localizer translates keys into one language.
type Localizer struct {
	lang string
}

// NewLocalizer returns a Localizer for lang, or for DefaultLanguage when
// lang is not supported.
func NewLocalizer(lang string) *Localizer {
	if !isSupported(lang) {
		lang = DefaultLanguage
	}
	return &Localizer{lang: lang}
}

// FromRequest picks the Localizer matching the request's Accept-Language.
func FromRequest(r *http.Request) *Localizer {
	return NewLocalizer(DetectLanguage(r.Header.Get("Accept-Language")))
}

// Lang returns the language code the localizer translates into.
func (l *Localizer) Lang() string {
	return l.lang
}

// T returns the text for key. Missing keys fall back to English and then to
// the key itself.
func (l *Localizer) T(key string) string {
	if msg, ok := translations[l.lang][key]; ok {
		return msg
	}
	if msg, ok := translations[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

// TWithParams is T with {{name}} placeholders replaced from params.
func (l *Localizer) TWithParams(key string, params map[string]string) string {
	msg := l.T(key)
	for k, v := range params {
		msg = strings.ReplaceAll(msg, "{{"+k+"}}", v)
	}
	return msg
}

// DetectLanguage returns the first supported language of an Accept-Language
// header such as "hi-IN,hi;q=0.9,en;q=0.8".
func DetectLanguage(acceptLanguage string) string {
	for _, tag := range LanguageTags(acceptLanguage) {
		lang := strings.ToLower(strings.Split(tag, "-")[0])
		if isSupported(lang) {
			return lang
		}
	}
	return DefaultLanguage
}

// LanguageTags returns the tags of an Accept-Language header in the order
// given, without their q-values.
func LanguageTags(acceptLanguage string) []string {
	var tags []string
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		if tag != "" && tag != "*" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ─── Helpers ───

func isSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// flattenMap turns {"auth": {"login": "x"}} into {"auth.login": "x"}.
func flattenMap(prefix string, src map[string]any, dst map[string]string) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			dst[key] = val
		case map[string]any:
			flattenMap(key, val, dst)
		}
	}
}
