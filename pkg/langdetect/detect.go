// Package langdetect provides language detection for source tabs.
// It uses go-enry to detect programming languages from file names and code
// snippets, so rewrite passes can be restricted to the languages they target.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for common detected languages.
const (
	LangProcessing = "processing"
	LangJava       = "java"
	LangC          = "c"
	LangCPP        = "c++"
	LangGo         = "go"
	LangPython     = "python"
	LangJavaScript = "javascript"
	LangRust       = "rust"
	LangBash       = "bash"
	LangText       = "text"
)

// classifierCandidates limits the classifier to languages that show up as
// sketch or snippet tabs.
var classifierCandidates = []string{
	"Processing", "Java", "C", "C++", "C#", "Kotlin", "Go", "Python",
	"Shell", "JavaScript", "TypeScript", "Rust", "Ruby",
}

// Detect returns the detected language for code content.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return LangText
	}

	// Strategy 1: Check shebang first (most reliable).
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Normalize(lang)
	}

	// Strategy 2: Check for language-specific patterns before using classifier.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Strategy 3: Use classifier with common language candidates.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Normalize(lang)
	}

	return LangText
}

// DetectFile detects the language of a named tab. An unambiguous file
// extension wins; otherwise the content decides.
func DetectFile(name string, content []byte) string {
	if name != "" {
		if lang, safe := enry.GetLanguageByExtension(name); safe && lang != "" {
			return Normalize(lang)
		}
	}
	return Detect(content)
}

// Matches reports whether lang is one of want. An empty want matches every
// language.
func Matches(lang string, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, candidate := range want {
		if strings.EqualFold(Normalize(candidate), lang) {
			return true
		}
	}
	return false
}

// detectByPattern checks for language-specific patterns that are highly indicative.
func detectByPattern(content []byte) string {
	contentStr := string(content)
	trimmed := bytes.TrimSpace(content)

	// Check patterns in order of specificity.
	if lang := detectGo(trimmed); lang != "" {
		return lang
	}
	if lang := detectProcessing(contentStr); lang != "" {
		return lang
	}
	if lang := detectJava(contentStr); lang != "" {
		return lang
	}
	if lang := detectC(contentStr); lang != "" {
		return lang
	}
	if lang := detectPython(contentStr); lang != "" {
		return lang
	}
	if lang := detectRust(contentStr); lang != "" {
		return lang
	}
	if lang := detectJavaScript(contentStr); lang != "" {
		return lang
	}

	return ""
}

// detectGo checks for Go language patterns. Java package declarations end
// with a semicolon.
func detectGo(trimmed []byte) string {
	if !bytes.HasPrefix(trimmed, []byte("package ")) {
		return ""
	}
	firstLine, _, _ := bytes.Cut(trimmed, []byte("\n"))
	if bytes.HasSuffix(bytes.TrimSpace(firstLine), []byte(";")) {
		return ""
	}
	return LangGo
}

// detectProcessing checks for sketch entry points outside a Java main class.
func detectProcessing(contentStr string) string {
	if strings.Contains(contentStr, "static void main(") {
		return ""
	}
	if strings.Contains(contentStr, "void setup()") ||
		strings.Contains(contentStr, "void draw()") ||
		strings.Contains(contentStr, "void settings()") {
		return LangProcessing
	}
	return ""
}

// detectJava checks for Java language patterns.
func detectJava(contentStr string) string {
	if strings.Contains(contentStr, "public class ") ||
		strings.Contains(contentStr, "import java.") ||
		strings.Contains(contentStr, "System.out.println") {
		return LangJava
	}
	return ""
}

// detectC checks for C and C++ preprocessor includes.
func detectC(contentStr string) string {
	if !strings.Contains(contentStr, "#include ") {
		return ""
	}
	if strings.Contains(contentStr, "std::") ||
		strings.Contains(contentStr, "<iostream>") ||
		strings.Contains(contentStr, "namespace ") {
		return LangCPP
	}
	return LangC
}

// detectPython checks for Python language patterns.
func detectPython(contentStr string) string {
	// def/class definitions with colon.
	if strings.Contains(contentStr, "def ") && strings.Contains(contentStr, "):") {
		return LangPython
	}
	// Python dunder variables.
	if strings.Contains(contentStr, "__name__") || strings.Contains(contentStr, "__main__") {
		return LangPython
	}
	return ""
}

// detectRust checks for Rust language patterns.
func detectRust(contentStr string) string {
	if strings.Contains(contentStr, "fn main()") ||
		strings.Contains(contentStr, "println!") ||
		strings.Contains(contentStr, "let mut ") {
		return LangRust
	}
	return ""
}

// detectJavaScript checks for JavaScript patterns.
func detectJavaScript(contentStr string) string {
	if strings.Contains(contentStr, "=>") ||
		strings.Contains(contentStr, "console.log") ||
		strings.Contains(contentStr, "function ") {
		return LangJavaScript
	}
	return ""
}

// Normalize converts go-enry language names and user-supplied names to the
// lowercase identifiers used in configuration.
func Normalize(lang string) string {
	switch lang {
	case "Shell", "sh", "shell":
		return LangBash
	case "pde":
		return LangProcessing
	case "cpp":
		return LangCPP
	}
	return strings.ToLower(lang)
}
