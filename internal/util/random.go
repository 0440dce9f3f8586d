package util

import (
	"fmt"
	"strings"
	
	"github.com/gosimple/slug"
	"github.com/lithammer/shortuuid/v4"
)

const (
	alphabet = "23456789abcdefghijkmnopqrstuvwxyz"
)

// GenerateRandomSlug turns a template name into a unique, URL-safe slug.
func GenerateRandomSlug(name string) string {
	baseSlug := slug.Make(name)
	shortID := strings.ToLower(shortuuid.New()[:8])
	
	if baseSlug == "" {
		return shortID
	}
	return fmt.Sprintf("%s-%s", baseSlug, shortID)
}

// GenerateCSVRecipientID generates an id in the format "csv-xxxxxxxxx" for
// uploaded rows that carry none.
func GenerateCSVRecipientID() string {
	id := shortuuid.NewWithAlphabet(alphabet)
	
	return fmt.Sprintf("csv-%s", id[:9])
}
