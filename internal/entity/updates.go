package entity

// UserUpdates 用户更新字段
type UserUpdates struct {
	Name         *string
	Phone        *string
	Role         *string
	PasswordHash *string
	IsActive     *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Phone != nil {
		updates["phone"] = *u.Phone
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ResumeUpdates 简历审核字段，user_id 不在其中
type ResumeUpdates struct {
	Status *string
	Notes  *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u ResumeUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if u.Notes != nil {
		updates["notes"] = *u.Notes
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u ResumeUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// MessageUpdates 留言处理字段
type MessageUpdates struct {
	IsRead *bool
	Reply  *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u MessageUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.IsRead != nil {
		updates["is_read"] = *u.IsRead
	}
	if u.Reply != nil {
		updates["reply"] = *u.Reply
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u MessageUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
