package managedlist

type CreateItemRequest struct {
	ListType  string `json:"listType" binding:"required"`
	Value     string `json:"value" binding:"required,max=120"`
	SortOrder *int   `json:"sortOrder" binding:"omitempty,min=0"`
}

type UpdateItemRequest struct {
	Value     string `json:"value" binding:"required,max=120"`
	SortOrder *int   `json:"sortOrder" binding:"omitempty,min=0"`
	IsActive  *bool  `json:"isActive"`
}

type ItemResponse struct {
	ID        string `json:"id"`
	ListType  string `json:"listType"`
	Value     string `json:"value"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}
