package branch

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	Address string `json:"address" binding:"max=255"`
}

type UpdateBranchRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	Address string `json:"address" binding:"max=255"`
}

type BranchResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
