package entity

// Pagination 列表接口返回的分页信息
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ListParams 列表接口通用的查询参数，page/limit 保留原始字符串，由 access.BuildQuery 负责解析。
type ListParams struct {
	Page   string `form:"page"`
	Limit  string `form:"limit"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

// UserRef 嵌入在简历、留言中的提交人信息
type UserRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
