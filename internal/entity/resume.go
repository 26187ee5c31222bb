package entity

import "time"

const (
	ResumeStatusPending   = "pending"
	ResumeStatusReviewing = "reviewing"
	ResumeStatusAccepted  = "accepted"
	ResumeStatusRejected  = "rejected"
)

// ResumeStatuses lists every status in display order.
var ResumeStatuses = []string{
	ResumeStatusPending,
	ResumeStatusReviewing,
	ResumeStatusAccepted,
	ResumeStatusRejected,
}

// DbResume 求职者提交的简历，UserID 创建后不可修改。
type DbResume struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	UserID     uint      `gorm:"column:user_id;index;not null" json:"userId"`
	User       *DbUser   `gorm:"foreignKey:UserID" json:"-"`
	Name       string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email      string    `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Phone      string    `gorm:"column:phone;type:varchar(64);not null" json:"phone"`
	Position   string    `gorm:"column:position;type:varchar(255);index;not null" json:"position"`
	ResumeLink string    `gorm:"column:resume_link;type:varchar(1024);not null" json:"resumeLink"`
	Intro      string    `gorm:"column:intro;type:text;not null" json:"intro"`
	Status     string    `gorm:"column:status;type:varchar(32);index;not null;default:pending" json:"status"`
	Notes      string    `gorm:"column:notes;type:text" json:"notes"`
}

func (DbResume) TableName() string {
	return "resumes"
}

type ResumeQuery struct {
	ListParams
	Position string `form:"position"`
	Status   string `form:"status"`
	UserID   string `form:"userId"`
}

type ResumeCreateRequest struct {
	Name       string `json:"name" binding:"notblank"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"notblank"`
	Position   string `json:"position" binding:"notblank"`
	ResumeLink string `json:"resumeLink" binding:"notblank"`
	Intro      string `json:"intro" binding:"notblank"`
}

type ResumeStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=pending reviewing accepted rejected"`
	Notes  *string `json:"notes,omitempty"`
}

type ResumeItem struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	User       *UserRef  `json:"user,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Position   string    `json:"position"`
	ResumeLink string    `json:"resumeLink"`
	Intro      string    `json:"intro"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ResumeListResponse struct {
	Resumes    []ResumeItem `json:"resumes"`
	Pagination Pagination   `json:"pagination"`
}

type ResumeDetailResponse struct {
	Resume ResumeItem `json:"resume"`
}

// StatusCounts 各状态简历数量
type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Reviewing int64 `json:"reviewing"`
	Accepted  int64 `json:"accepted"`
	Rejected  int64 `json:"rejected"`
}

// PositionCount 按职位分组的简历数量
type PositionCount struct {
	Position string `json:"position"`
	Count    int64  `json:"count"`
}

// ResumeStats 管理员统计面板数据
type ResumeStats struct {
	Total        int64           `json:"total"`
	StatusCounts StatusCounts    `json:"statusCounts"`
	TodayCount   int64           `json:"todayCount"`
	Positions    []PositionCount `json:"positions"`
}

// UploadResponse 简历附件上传结果，URL 可直接作为 resumeLink 提交。
type UploadResponse struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}
