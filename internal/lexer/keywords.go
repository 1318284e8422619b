package lexer

import (
	"bufio"
	"os"
	"strings"

	"github.com/lalg-lang/lalg/internal/errors"
)

// LoadReservedWords reads a plain UTF-8 text file of one lowercase
// keyword per line (spec.md §6's keywords.txt/reserved_words.txt) and
// returns the subset of the scanner's fixed keyword vocabulary it names,
// suitable for passing to WithReservedWords. A line naming a word outside
// that vocabulary is ignored: the file selects which of LALG's reserved
// words are active, it does not mint new token kinds.
func LoadReservedWords(path string) (map[string]TokenType, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read reserved-word file "+path)
	}
	defer f.Close()

	result := make(map[string]TokenType)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		word = lowerCaser.String(word)
		if tt, ok := reservedWords[word]; ok {
			result[word] = tt
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read reserved-word file "+path)
	}
	return result, nil
}
