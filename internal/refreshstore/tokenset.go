// Package refreshstore keeps the bounded list of refresh tokens each principal
// currently holds, and serializes updates to it per principal.
package refreshstore

// DefaultCapacity is the number of refresh tokens a principal may hold
const DefaultCapacity = 5

// TokenSet is an ordered, capacity-bounded list of refresh tokens, oldest first.
// It is not safe for concurrent use; Store guards it.
type TokenSet struct {
	tokens   []string
	capacity int
}

// NewTokenSet wraps tokens (oldest first) in a set with the given capacity
func NewTokenSet(tokens []string, capacity int) *TokenSet {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &TokenSet{
		tokens:   append([]string(nil), tokens...),
		capacity: capacity,
	}
}

// Add appends token and evicts from the front until the set fits its capacity
func (s *TokenSet) Add(token string) {
	s.tokens = append(s.tokens, token)
	if over := len(s.tokens) - s.capacity; over > 0 {
		s.tokens = append([]string(nil), s.tokens[over:]...)
	}
}

// Contains reports whether token is in the set
func (s *TokenSet) Contains(token string) bool {
	return s.index(token) >= 0
}

// Remove deletes the first occurrence of token. It reports whether anything was removed.
func (s *TokenSet) Remove(token string) bool {
	i := s.index(token)
	if i < 0 {
		return false
	}
	s.tokens = append(s.tokens[:i:i], s.tokens[i+1:]...)
	return true
}

// Tokens returns a copy of the tokens, oldest first
func (s *TokenSet) Tokens() []string {
	return append([]string(nil), s.tokens...)
}

// Len returns the number of tokens held
func (s *TokenSet) Len() int {
	return len(s.tokens)
}

func (s *TokenSet) index(token string) int {
	for i, t := range s.tokens {
		if t == token {
			return i
		}
	}
	return -1
}
