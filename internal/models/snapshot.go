package models

// Snapshot holds every collection of the store in insertion order
type Snapshot struct {
	Users         []User
	Posts         []Post
	Comments      []Comment
	Likes         []Like
	Follows       []Follow
	Notifications []Notification
}

// Sequence is a row's position in its collection. Timestamps can tie, so
// a reload orders by Seq to get insertion order back.
type Sequence struct {
	Seq int64 `json:"-" gorm:"index"`
}

func (s *Sequence) SetSeq(n int64) {
	s.Seq = n
}
