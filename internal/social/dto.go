package social

// CreatePersonRequest represents the request body for creating a person
type CreatePersonRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// PersonResponse represents the response for a single person
type PersonResponse struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

// AddFriendRequest represents the request body for adding a friend
type AddFriendRequest struct {
	Code string `json:"code"`
}

// CreateGroupRequest represents the request body for creating a group
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// RenameGroupRequest represents the request body for renaming a group
type RenameGroupRequest struct {
	Name string `json:"name"`
}

// AddMemberRequest represents the request body for adding a group member
type AddMemberRequest struct {
	Code string `json:"code"`
}

// CreatePostRequest represents the request body for publishing a post
type CreatePostRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// PostResponse represents the response for a single post
type PostResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// RankingResponse holds the winner of a ranking query, null when there is
// nothing to rank
type RankingResponse struct {
	Result *string `json:"result"`
}
