package types

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type NoteRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Category  string `json:"category"`
	ProjectID string `json:"projectId" binding:"required"`
}

type ProjectRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type ReadmeRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
}
