// Package langdetect decides which keyword set applies to a source file.
// It uses go-enry for filename and extension based detection and falls back
// to content patterns for files without a telling name.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language is a JVM language with its own keyword set.
type Language string

// Supported languages. Gradle scripts map to the language they are written in.
const (
	Unknown Language = ""
	Java    Language = "java"
	Kotlin  Language = "kotlin"
	Groovy  Language = "groovy"
)

// candidates restricts the classifier to the languages this tool handles.
var candidates = []string{"Java", "Kotlin", "Groovy"}

// Detect returns the language of the file at path. Content is consulted
// only when the name is not conclusive; it may be nil.
func Detect(path string, content []byte) Language {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, ".gradle.kts") || strings.HasSuffix(base, ".main.kts") {
		return Kotlin
	}

	if lang, safe := enry.GetLanguageByFilename(path); safe {
		if found := fromEnry(lang); found != Unknown {
			return found
		}
	}

	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return fromEnry(lang)
	}

	if len(content) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fromEnry(lang)
	}

	if lang := detectByPattern(content); lang != Unknown {
		return lang
	}

	if filepath.Ext(path) != "" {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe {
		return fromEnry(lang)
	}
	return Unknown
}

// detectByPattern checks for constructs that only one of the languages uses.
func detectByPattern(content []byte) Language {
	text := string(content)
	trimmed := bytes.TrimSpace(content)

	switch {
	case strings.Contains(text, "fun ") && (strings.Contains(text, "val ") || strings.Contains(text, "): ")):
		return Kotlin
	case bytes.HasPrefix(trimmed, []byte("package ")) && strings.Contains(text, ";") &&
		(strings.Contains(text, "public class ") || strings.Contains(text, "class ")):
		return Java
	case strings.Contains(text, "def ") && !strings.Contains(text, ";"):
		return Groovy
	default:
		return Unknown
	}
}

// fromEnry maps go-enry language names onto Language.
func fromEnry(lang string) Language {
	switch lang {
	case "Java":
		return Java
	case "Kotlin", "Gradle Kotlin DSL":
		return Kotlin
	case "Groovy", "Gradle":
		return Groovy
	default:
		return Unknown
	}
}
