package services

import (
	"github.com/sirupsen/logrus"

	"github.com/blogem/record-engine/models"
	"github.com/blogem/record-engine/repositories"
)

// Services holds all service instances
type Services struct {
	Records RecordService
}

// NewServices creates and initializes all service instances
func NewServices(schema *models.Schema, repos *repositories.Repositories, cfg ServiceConfig, logger logrus.FieldLogger) (*Services, error) {
	records, err := NewRecordService(schema, repos.Records, repos.Audit, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Services{Records: records}, nil
}
