package repository

import (
	"go-backoffice/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(event *model.AuditEvent) error
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Create(event *model.AuditEvent) error {
	return r.db.Create(event).Error
}
