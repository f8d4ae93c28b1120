package repository

import (
	"go-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(client *model.Client) error
	FindAll() ([]model.Client, error)
	FindByID(id uuid.UUID) (*model.Client, error)
}

type clientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{db}
}

func (r *clientRepo) Create(client *model.Client) error {
	return r.db.Create(client).Error
}

func (r *clientRepo) FindAll() ([]model.Client, error) {
	var clients []model.Client
	err := r.db.Find(&clients).Error
	return clients, err
}

func (r *clientRepo) FindByID(id uuid.UUID) (*model.Client, error) {
	var client model.Client
	err := r.db.First(&client, "id = ?", id).Error
	return &client, err
}
