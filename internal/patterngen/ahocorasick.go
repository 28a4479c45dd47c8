package patterngen

import (
	"sync"

	"github.com/dariadocs/namescreen/internal/nametrace"
)

// Match is a single Aho-Corasick hit against a screened document.
type Match struct {
	Pattern    string
	Position   int
	Tier       nametrace.RecallTier
	Precision  float64
	Language   string
}

type acNode struct {
	children map[rune]*acNode
	failLink *acNode
	output   []patternInfo
}

type patternInfo struct {
	pattern   string
	tier      nametrace.RecallTier
	precision float64
	language  string
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// AhoCorasick is the C6 export target: a multi-pattern automaton built
// once from a tiered pattern set and queried per screened document.
// Grounded on foden303-moderation's AhoCorasick (trie + BFS fail-link
// construction + output merging); re-expressed here over
// nametrace.UnifiedPattern instead of a moderation category/score pair,
// and with FoldForAC (NFD/Mn-strip + casefold + forced Cyrillic->Latin)
// standing in for its leetspeak-substitution NormalizeText pass, since
// name screening needs a single-alphabet fold rather than leet
// decoding.
type AhoCorasick struct {
	root *acNode
	mu   sync.RWMutex
}

func NewAhoCorasick() *AhoCorasick {
	return &AhoCorasick{root: newACNode()}
}

// Build indexes patterns, replacing any prior automaton state.
func (ac *AhoCorasick) Build(patterns []nametrace.UnifiedPattern) {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	ac.root = newACNode()
	for _, p := range patterns {
		candidates := append([]string{p.Pattern}, p.Variants...)
		for _, c := range candidates {
			folded := FoldForAC(c)
			if folded == "" {
				continue
			}
			ac.addPattern(patternInfo{pattern: folded, tier: p.RecallTier, precision: p.PrecisionHint, language: p.Language})
		}
	}
	ac.buildFailLinks()
}

func (ac *AhoCorasick) addPattern(info patternInfo) {
	node := ac.root
	for _, r := range info.pattern {
		child, ok := node.children[r]
		if !ok {
			child = newACNode()
			node.children[r] = child
		}
		node = child
	}
	node.output = append(node.output, info)
}

func (ac *AhoCorasick) buildFailLinks() {
	var queue []*acNode
	for _, child := range ac.root.children {
		child.failLink = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for r, child := range current.children {
			queue = append(queue, child)

			failNode := current.failLink
			for failNode != nil && failNode.children[r] == nil {
				failNode = failNode.failLink
			}

			if failNode == nil {
				child.failLink = ac.root
			} else {
				child.failLink = failNode.children[r]
				child.output = append(child.output, child.failLink.output...)
			}
		}
	}
}

// Search scans text (already folded through FoldForAC by the caller,
// or raw — Search folds it internally) and returns every pattern hit
// with its tier and position.
func (ac *AhoCorasick) Search(text string) []Match {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	folded := FoldForAC(text)
	var matches []Match
	node := ac.root
	position := 0

	for _, r := range folded {
		for node != nil && node.children[r] == nil {
			node = node.failLink
		}
		if node == nil {
			node = ac.root
		} else {
			node = node.children[r]
		}

		for _, info := range node.output {
			matches = append(matches, Match{
				Pattern:   info.pattern,
				Position:  position - len([]rune(info.pattern)) + 1,
				Tier:      info.tier,
				Precision: info.precision,
				Language:  info.language,
			})
		}
		position++
	}

	return matches
}

// HasMatch reports whether any pattern matches text, short-circuiting
// without collecting matches.
func (ac *AhoCorasick) HasMatch(text string) bool {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	folded := FoldForAC(text)
	node := ac.root
	for _, r := range folded {
		for node != nil && node.children[r] == nil {
			node = node.failLink
		}
		if node == nil {
			node = ac.root
		} else {
			node = node.children[r]
		}
		if len(node.output) > 0 {
			return true
		}
	}
	return false
}
