package category

type SuggestionRequest struct {
	Purpose string `json:"purpose" binding:"required,min=3,max=500"`
}

type SuggestionResponse struct {
	Category  string `json:"category"`
	Available bool   `json:"available"`
}
