// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mention finds roster members named on each other's pages.
//
// Pages are plain text already extracted by a collector; each belongs to
// one roster member. A name counts as mentioned when any of its variants
// ("Jane Q. Doe", "Jane Doe", "J. Doe") appears verbatim in the text.
package mention

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/faculty-graph/pkg/types"
)

// Pages maps each roster member to the text file of their page.
type Pages struct {
	Pages map[string]string `yaml:"pages"`
}

// LoadPages reads a pages index from path.
func LoadPages(fsys afero.Fs, path string) (*Pages, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading pages index: %w", err)
	}
	var p Pages
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing pages index %s: %w", path, err)
	}
	return &p, nil
}

// Variants returns the spellings of name to look for, sorted. Two-part
// names add an initialed form; three-part names add the first and last
// parts alone, the initialed form, and the last two parts as a compound
// surname.
func Variants(name string) []string {
	parts := strings.Fields(name)
	set := map[string]bool{strings.Join(parts, " "): true}

	switch len(parts) {
	case 2:
		first, last := parts[0], parts[1]
		set[initial(first)+" "+last] = true
	case 3:
		first, last := parts[0], parts[2]
		set[first+" "+last] = true
		set[initial(first)+" "+last] = true
		set[parts[1]+" "+last] = true
	}

	out := make([]string, 0, len(set))
	for v := range set {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func initial(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return string(r[0]) + "."
}

// Find returns the roster names other than owner that text mentions, in
// roster order.
func Find(text, owner string, roster []string) []string {
	var found []string
	for _, name := range roster {
		if name == owner {
			continue
		}
		for _, v := range Variants(name) {
			if strings.Contains(text, v) {
				found = append(found, name)
				break
			}
		}
	}
	return found
}

// Scan reads every page in pages and returns one mention per page owner
// and mentioned name, ordered by owner then roster order. Owners off the
// roster and unreadable pages are logged and skipped.
func Scan(ctx context.Context, fsys afero.Fs, pages *Pages, roster []string, logger *log.Logger) ([]types.Mention, error) {
	onRoster := make(map[string]bool, len(roster))
	for _, n := range roster {
		onRoster[n] = true
	}

	owners := make([]string, 0, len(pages.Pages))
	for owner := range pages.Pages {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	mentions := []types.Mention{}
	for _, owner := range owners {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := pages.Pages[owner]
		if !onRoster[owner] {
			logger.Warn("page owner not on roster", "owner", owner, "path", path)
			continue
		}
		text, err := afero.ReadFile(fsys, path)
		if err != nil {
			logger.Warn("skipping unreadable page", "owner", owner, "path", path, "err", err)
			continue
		}
		found := Find(string(text), owner, roster)
		logger.Debug("scanned page", "owner", owner, "mentions", len(found))
		for _, name := range found {
			mentions = append(mentions, types.Mention{Source: owner, Target: name, FoundOn: []string{path}})
		}
	}
	return mentions, nil
}
