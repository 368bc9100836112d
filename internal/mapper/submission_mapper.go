package mapper

import (
	"reflecto-be/internal/entity"
	"reflecto-be/internal/model"
)

type SubmissionMapper struct{}

func NewSubmissionMapper() *SubmissionMapper {
	return &SubmissionMapper{}
}

func (m *SubmissionMapper) ContactToEntity(c *model.ContactMessage) *entity.ContactMessage {
	if c == nil {
		return nil
	}
	return &entity.ContactMessage{
		Id:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    c.Status,
		UserId:    c.UserId,
		CreatedAt: c.CreatedAt,
	}
}

func (m *SubmissionMapper) ContactToModel(c *entity.ContactMessage) *model.ContactMessage {
	if c == nil {
		return nil
	}
	return &model.ContactMessage{
		Id:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    c.Status,
		UserId:    c.UserId,
		CreatedAt: c.CreatedAt,
	}
}

func (m *SubmissionMapper) FeedbackToEntity(f *model.FeedbackMessage) *entity.FeedbackMessage {
	if f == nil {
		return nil
	}
	return &entity.FeedbackMessage{
		Id:        f.Id,
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		Rating:    f.Rating,
		Status:    f.Status,
		UserId:    f.UserId,
		CreatedAt: f.CreatedAt,
	}
}

func (m *SubmissionMapper) FeedbackToModel(f *entity.FeedbackMessage) *model.FeedbackMessage {
	if f == nil {
		return nil
	}
	return &model.FeedbackMessage{
		Id:        f.Id,
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		Rating:    f.Rating,
		Status:    f.Status,
		UserId:    f.UserId,
		CreatedAt: f.CreatedAt,
	}
}
