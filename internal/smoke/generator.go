package smoke

import (
	"github.com/google/uuid"
)

// specialSuffixes exercise characters that must survive form and query encoding.
var specialSuffixes = []string{"", " with space", "&amp=1", "ünïcödé", "+plus", "%25"}

// generateCredentials returns n distinct credential pairs.
func generateCredentials(n int) []Credentials {
	out := make([]Credentials, n)
	for i := range out {
		suffix := specialSuffixes[i%len(specialSuffixes)]
		out[i] = Credentials{
			Username: "user-" + uuid.NewString()[:8] + suffix,
			Password: uuid.NewString() + suffix,
		}
	}
	return out
}
