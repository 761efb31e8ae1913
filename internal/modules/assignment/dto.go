package assignment

type BulkAssignRequest struct {
	GuideIDs []string `json:"guide_ids" binding:"required"`
}
