package phonetic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Dictionary maps lower-case words to their ARPAbet phonemes.
type Dictionary map[string][]string

// LoadDictionary reads a pronunciation dictionary in CMU format:
//
//	;;; comment
//	cat K AE1 T
//	read R EH1 D
//	read(2) R IY1 D # alternative
//
// Only the first pronunciation of a word is kept.
func LoadDictionary(r io.Reader) (Dictionary, error) {
	d := Dictionary{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.Index(text, "#"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, ";;;") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("dictionary line %d: missing pronunciation", line)
		}
		word := strings.ToLower(fields[0])
		if i := strings.IndexByte(word, '('); i > 0 {
			word = word[:i]
		}
		if _, ok := d[word]; !ok {
			d[word] = fields[1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return d, nil
}

// OpenDictionary loads a dictionary file.
func OpenDictionary(path string) (Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDictionary(f)
}
