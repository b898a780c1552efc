package similar

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Dims is the fixed embedding dimensionality. Changing it invalidates any
// existing collection.
const Dims = 256

// Embed maps text to a hashed term-frequency vector, L2-normalized so cosine
// similarity reduces to a dot product. The embedding is deterministic: the
// same text always yields the same vector.
func Embed(text string) []float32 {
	vec := make([]float32, Dims)
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	for _, tok := range tokens {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[h.Sum32()%Dims]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
