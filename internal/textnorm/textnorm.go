// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm folds titles and labels into comparison keys.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key returns the case-folded, whitespace-collapsed form of s. Two titles
// that differ only in case or spacing share a key.
func Key(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// Lower returns s lowercased for substring matching.
func Lower(s string) string {
	return cases.Fold().String(s)
}
