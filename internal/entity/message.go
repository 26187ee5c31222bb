package entity

import "time"

// DbMessage 访客留言，UserID 为空表示匿名留言。
type DbMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    *uint     `gorm:"column:user_id;index" json:"userId"`
	User      *DbUser   `gorm:"foreignKey:UserID" json:"-"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Message   string    `gorm:"column:message;type:text;not null" json:"message"`
	Email     string    `gorm:"column:email;type:varchar(255)" json:"email"`
	IsRead    bool      `gorm:"column:is_read;index;not null;default:false" json:"isRead"`
	Reply     string    `gorm:"column:reply;type:text" json:"reply"`
}

func (DbMessage) TableName() string {
	return "messages"
}

type MessageQuery struct {
	ListParams
}

type MessageCreateRequest struct {
	Name    string `json:"name" binding:"notblank"`
	Message string `json:"message" binding:"notblank"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type MessageUpdateRequest struct {
	IsRead *bool   `json:"isRead,omitempty"`
	Reply  *string `json:"reply,omitempty"`
}

type MessageItem struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"userId"`
	User      *UserRef  `json:"user,omitempty"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Email     string    `json:"email"`
	IsRead    bool      `json:"isRead"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MessageListResponse struct {
	Messages   []MessageItem `json:"messages"`
	Pagination Pagination    `json:"pagination"`
}

type MessageDetailResponse struct {
	Message MessageItem `json:"message"`
}
