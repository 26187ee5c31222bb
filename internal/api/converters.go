package api

import "recruit/internal/entity"

func makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func makeUserRef(user *entity.DbUser) *entity.UserRef {
	if user == nil {
		return nil
	}
	return &entity.UserRef{ID: user.ID, Name: user.Name, Email: user.Email}
}

func makeResumeItem(resume *entity.DbResume) entity.ResumeItem {
	return entity.ResumeItem{
		ID:         resume.ID,
		UserID:     resume.UserID,
		User:       makeUserRef(resume.User),
		Name:       resume.Name,
		Email:      resume.Email,
		Phone:      resume.Phone,
		Position:   resume.Position,
		ResumeLink: resume.ResumeLink,
		Intro:      resume.Intro,
		Status:     resume.Status,
		Notes:      resume.Notes,
		CreatedAt:  resume.CreatedAt,
		UpdatedAt:  resume.UpdatedAt,
	}
}

func makeMessageItem(message *entity.DbMessage) entity.MessageItem {
	return entity.MessageItem{
		ID:        message.ID,
		UserID:    message.UserID,
		User:      makeUserRef(message.User),
		Name:      message.Name,
		Message:   message.Message,
		Email:     message.Email,
		IsRead:    message.IsRead,
		Reply:     message.Reply,
		CreatedAt: message.CreatedAt,
		UpdatedAt: message.UpdatedAt,
	}
}
