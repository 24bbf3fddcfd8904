package tokenize

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

//go:embed dict/words_th.txt
var embeddedWords string

type trieNode struct {
	children map[rune]*trieNode
	terminal bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Dictionary is a rune trie of known words used for maximal matching.
// A Dictionary must not be modified once it is shared with a Tokenizer.
type Dictionary struct {
	root *trieNode
	size int
}

// NewDictionary creates a dictionary containing the given words.
func NewDictionary(words ...string) *Dictionary {
	d := &Dictionary{root: newTrieNode()}
	for _, w := range words {
		d.Add(w)
	}
	return d
}

// Add inserts a word. Blank words are ignored.
func (d *Dictionary) Add(word string) {
	word = norm.NFC.String(strings.TrimSpace(word))
	if word == "" {
		return
	}

	node := d.root
	for _, r := range word {
		next, ok := node.children[r]
		if !ok {
			next = newTrieNode()
			node.children[r] = next
		}
		node = next
	}
	if !node.terminal {
		node.terminal = true
		d.size++
	}
}

// Contains reports whether word is a dictionary entry.
func (d *Dictionary) Contains(word string) bool {
	node := d.root
	for _, r := range norm.NFC.String(word) {
		next, ok := node.children[r]
		if !ok {
			return false
		}
		node = next
	}
	return node.terminal
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return d.size
}

// Clone returns an independent copy that can be extended without touching d.
func (d *Dictionary) Clone() *Dictionary {
	return &Dictionary{root: cloneNode(d.root), size: d.size}
}

func cloneNode(n *trieNode) *trieNode {
	c := &trieNode{children: make(map[rune]*trieNode, len(n.children)), terminal: n.terminal}
	for r, child := range n.children {
		c.children[r] = cloneNode(child)
	}
	return c
}

// matchEnds returns the end offsets of every dictionary word that starts at
// runes[start], longest first.
func (d *Dictionary) matchEnds(runes []rune, start int) []int {
	var ends []int
	node := d.root
	for i := start; i < len(runes); i++ {
		next, ok := node.children[runes[i]]
		if !ok {
			break
		}
		node = next
		if node.terminal {
			ends = append(ends, i+1)
		}
	}
	for i, j := 0, len(ends)-1; i < j; i, j = i+1, j-1 {
		ends[i], ends[j] = ends[j], ends[i]
	}
	return ends
}

// ReadWords adds one word per line from r. Empty lines and lines starting
// with '#' are skipped.
func (d *Dictionary) ReadWords(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read dictionary: %w", err)
	}
	return nil
}

// LoadDictionaryFile extends a copy of the default dictionary with the words
// from path.
func LoadDictionaryFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer f.Close()

	d := DefaultDictionary().Clone()
	if err := d.ReadWords(f); err != nil {
		return nil, err
	}
	return d, nil
}

var (
	defaultDict     *Dictionary
	defaultDictOnce sync.Once
)

// DefaultDictionary returns the embedded base dictionary. The returned value
// is shared and must be cloned before adding words.
func DefaultDictionary() *Dictionary {
	defaultDictOnce.Do(func() {
		d := NewDictionary()
		// the embedded list is part of the binary, a read error is impossible
		_ = d.ReadWords(strings.NewReader(embeddedWords))
		defaultDict = d
	})
	return defaultDict
}
