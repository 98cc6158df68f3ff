package vector

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sanitize replaces NaN and Inf components with 0.0 and returns the slice.
// Corrupt components are recovered silently; they must never reach storage
// or a similarity comparison.
func Sanitize(v []float32) []float32 {
	for i, f := range v {
		f64 := float64(f)
		if math.IsNaN(f64) || math.IsInf(f64, 0) {
			v[i] = 0
		}
	}
	return v
}

// Normalize scales v to unit L2 norm in place and returns it. A zero vector
// is returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i, f := range v {
		v[i] = float32(float64(f) / norm)
	}
	return v
}

// Cosine returns the cosine similarity of two vectors. For unit-normalized
// inputs this is their dot product. Vectors of differing lengths score 0.
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// FormatText serializes a vector to the textual form accepted by pgvector:
// "[v0,v1,...]" with exactly 8 decimal digits per component. NaN and Inf
// are coerced to 0.0 before formatting.
func FormatText(v []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			sb.WriteByte(',')
		}
		f64 := float64(f)
		if math.IsNaN(f64) || math.IsInf(f64, 0) {
			f64 = 0
		}
		fmt.Fprintf(&sb, "%.8f", f64)
	}
	sb.WriteByte(']')
	return sb.String()
}

// ParseText parses the textual vector form produced by FormatText (or by
// pgvector itself) back into a float32 slice.
func ParseText(s string) ([]float32, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, fmt.Errorf("invalid vector text %q: missing brackets", s)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
	if strings.TrimSpace(inner) == "" {
		return []float32{}, nil
	}

	parts := strings.Split(inner, ",")
	v := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", p, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}
