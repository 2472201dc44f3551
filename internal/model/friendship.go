package model

// FriendshipKey identifies an undirected friendship.
// Low is always lexicographically smaller than High.
type FriendshipKey struct {
	Low  string `json:"low"`
	High string `json:"high"`
}

// NewFriendshipKey returns the canonical key for the pair (a, b)
func NewFriendshipKey(a, b string) FriendshipKey {
	if a > b {
		a, b = b, a
	}
	return FriendshipKey{Low: a, High: b}
}

// Other returns the end of the key opposite to code, and false if code is
// not part of the key.
func (k FriendshipKey) Other(code string) (string, bool) {
	switch code {
	case k.Low:
		return k.High, true
	case k.High:
		return k.Low, true
	default:
		return "", false
	}
}

// Friendship represents a symmetric relation between two persons.
// One record stands for both directions.
type Friendship struct {
	Key       FriendshipKey `json:"key"`
	CreatedAt int64         `json:"created_at"` // milliseconds since epoch
}
