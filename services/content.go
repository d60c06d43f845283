package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeContent puts text into NFC so that visually identical Sinhala or
// Tamil input always hashes the same way.
func NormalizeContent(content string) string {
	return norm.NFC.String(content)
}

// HashContent returns the hex SHA-256 of the NFC form of content.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(NormalizeContent(content)))
	return hex.EncodeToString(sum[:])
}

// HashMatches compares a caller-supplied hex digest against a stored one.
func HashMatches(stored, supplied string) bool {
	supplied = strings.ToLower(strings.TrimSpace(supplied))
	if len(supplied) != sha256.Size*2 {
		return false
	}
	if _, err := hex.DecodeString(supplied); err != nil {
		return false
	}
	return supplied == strings.ToLower(stored)
}

var ErrNothingToSegment = errors.New("content has no text to segment")

// Segmenter splits source text into translatable units.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// SentenceSegmenter splits on blank lines, then on sentence terminators.
type SentenceSegmenter struct{}

func NewSentenceSegmenter() *SentenceSegmenter {
	return &SentenceSegmenter{}
}

func (SentenceSegmenter) Segment(text string) ([]string, error) {
	var segments []string
	for _, paragraph := range splitParagraphs(text) {
		segments = append(segments, splitSentences(paragraph)...)
	}
	if len(segments) == 0 {
		return nil, ErrNothingToSegment
	}
	return segments, nil
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.Join(strings.Fields(block), " ")
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '।', '෴':
		return true
	}
	return isFullWidthTerminator(r)
}

// Japanese text puts no space after its sentence marks.
func isFullWidthTerminator(r rune) bool {
	switch r {
	case '。', '！', '？':
		return true
	}
	return false
}

func splitSentences(paragraph string) []string {
	var sentences []string
	runes := []rune(paragraph)
	start := 0
	for i, r := range runes {
		if !isTerminator(r) {
			continue
		}
		// Only a terminator followed by whitespace (or the end) splits, which
		// keeps decimals like "3.5" intact.
		if !isFullWidthTerminator(r) && i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
