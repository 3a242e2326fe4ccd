package domain

// ComposedPost is the immutable unit handed to the scheduler.
type ComposedPost struct {
	Title string
	// Body holds distinct keyword lines. Treat it as a set.
	Body    []string
	Link    string
	Photos  []string
	Caption string
}

// HasPhotos reports whether the post goes out as a media group.
func (p ComposedPost) HasPhotos() bool {
	return len(p.Photos) > 0
}
