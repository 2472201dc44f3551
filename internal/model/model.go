package model

import "fmt"

// Person represents an account in the social network
type Person struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// String returns the person's code, name and surname separated by blanks
func (p *Person) String() string {
	return fmt.Sprintf("%s %s %s", p.Code, p.Name, p.Surname)
}

// Group represents a named set of persons
type Group struct {
	Name    string   `json:"name"`
	Members []string `json:"members"` // person codes, sorted, no duplicates
}

// HasMember reports whether code is a member of the group
func (g *Group) HasMember(code string) bool {
	for _, m := range g.Members {
		if m == code {
			return true
		}
	}
	return false
}

// Post represents a message published by a person
type Post struct {
	ID         string `json:"id"`
	AuthorCode string `json:"author_code"`
	Content    string `json:"content"`
	Timestamp  int64  `json:"timestamp"` // milliseconds since epoch
}

// FeedKey returns the "<author>:<id>" form used by friend feeds
func (p *Post) FeedKey() string {
	return p.AuthorCode + ":" + p.ID
}
