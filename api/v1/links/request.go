package links

// CreateLinkRequest carries the fields for creating a link
type CreateLinkRequest struct {
	Title       string   `json:"title" binding:"required,min=2,max=100"`
	URL         string   `json:"url" binding:"required,max=2048"`
	Description string   `json:"description" binding:"omitempty,max=255"`
	Icon        string   `json:"icon" binding:"omitempty,max=50"`
	TagIDs      []string `json:"tagIds" binding:"omitempty,max=20"`
}

// UpdateLinkRequest carries a partial link update. Absent fields are left
// untouched.
type UpdateLinkRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=2,max=100"`
	URL         *string `json:"url" binding:"omitempty,max=2048"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
	IsActive    *bool   `json:"isActive"`
}

// ReorderRequest carries the full ordered list of the user's link IDs
type ReorderRequest struct {
	LinkIDs []string `json:"linkIds" binding:"required,min=1"`
}

// CreateTagRequest carries the fields for creating a tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Color string `json:"color" binding:"omitempty,len=7"`
}

// SetLinkTagsRequest replaces a link's tag assignments
type SetLinkTagsRequest struct {
	TagIDs []string `json:"tagIds" binding:"required,max=20"`
}
