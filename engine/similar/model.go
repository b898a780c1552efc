// Package similar records resolved diagnostic cases and retrieves the most
// similar historical cases for a new symptom description. Symptoms are
// embedded with a deterministic hashed term-frequency scheme and stored in
// Qdrant; similarity is cosine over the normalized vectors.
package similar

// Case is one historical diagnostic case.
type Case struct {
	ID         string `json:"id"`
	Symptoms   string `json:"symptoms"`
	Category   string `json:"category"`
	Issue      string `json:"issue"`
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	Resolution string `json:"resolution"`
}

// Hit is a retrieved case with its similarity score.
type Hit struct {
	Case
	Score float32 `json:"score"`
}
