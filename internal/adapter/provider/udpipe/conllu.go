package udpipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KleeAn/automated-dictionary-linking/internal/provider"
)

const conlluFieldCount = 10

// decodeCoNLLU parses UDPipe's CoNLL-U output into sentences. Sentences are
// separated by blank lines; comment lines start with '#'. Multiword token
// ranges ("4-5") and empty nodes ("2.1") carry no tree structure and are
// skipped.
func decodeCoNLLU(data string) ([]provider.Sentence, error) {
	var (
		sentences []provider.Sentence
		current   provider.Sentence
	)

	flush := func() {
		if len(current.Words) > 0 || current.Text != "" {
			sentences = append(sentences, current)
		}
		current = provider.Sentence{}
	}

	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "#") {
			if text, ok := strings.CutPrefix(line, "# text = "); ok {
				current.Text = text
			}
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != conlluFieldCount {
			return nil, fmt.Errorf("conllu line %d: %d fields, want %d", i+1, len(fields), conlluFieldCount)
		}
		if strings.ContainsAny(fields[0], "-.") {
			continue
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("conllu line %d: bad id %q: %w", i+1, fields[0], err)
		}
		head, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, fmt.Errorf("conllu line %d: bad head %q: %w", i+1, fields[6], err)
		}

		current.Words = append(current.Words, provider.Word{
			ID:     id,
			Form:   fields[1],
			Lemma:  fields[2],
			UPOS:   fields[3],
			Head:   head,
			Deprel: fields[7],
		})
	}
	flush()

	return sentences, nil
}
