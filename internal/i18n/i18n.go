// Package i18n provides the translated UI strings. Locale files are YAML
// maps from message ID to text, embedded into the binary.
package i18n

import (
	"embed"
	"io/fs"
	"log"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   = language.English
)

// Init loads the embedded locales and selects lang. Unknown languages fall
// back to English message by message.
func Init(lang string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		log.Printf("i18n: failed to list locales: %v", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			log.Printf("i18n: failed to read %s: %v", f.Name(), err)
			continue
		}
		if _, err := b.ParseMessageFileBytes(data, f.Name()); err != nil {
			log.Printf("i18n: failed to parse %s: %v", f.Name(), err)
		}
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	localizer = i18n.NewLocalizer(b, lang)
	current = tag
}

// T translates a message ID. If the ID is unknown it is returned as is.
func T(messageID string) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()

	if l == nil {
		Init("en")
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}

	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// Language returns the tag passed to the last Init
func Language() language.Tag {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Languages lists the languages with an embedded locale file
func Languages() []language.Tag {
	mu.RLock()
	b := bundle
	mu.RUnlock()
	if b == nil {
		Init("en")
		mu.RLock()
		b = bundle
		mu.RUnlock()
	}
	return b.LanguageTags()
}
