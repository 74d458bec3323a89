package unit_test

import (
	"context"
	"errors"
	"testing"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/service/requirement"
	"sertifikat-identitas/tests/mocks"

	"github.com/stretchr/testify/assert"
)

func TestRequirementService_ListActive(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns Active Requirements", func(t *testing.T) {
		mockRepo := new(mocks.RequirementRepository)
		svc := requirement.NewService(mockRepo, nil)

		reqs := []domain.DocumentRequirement{
			makeRequirement("KTP", 0),
			makeRequirement("SKCK", 90),
		}
		mockRepo.On("ListActiveByServiceType", ctx, domain.ServiceIdentityCertificate).Return(reqs, nil)

		result, err := svc.ListActive(ctx, domain.ServiceIdentityCertificate)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Wraps Repository Failure As Catalog Unavailable", func(t *testing.T) {
		mockRepo := new(mocks.RequirementRepository)
		svc := requirement.NewService(mockRepo, nil)

		mockRepo.On("ListActiveByServiceType", ctx, domain.ServiceIdentityCertificate).Return(nil, errors.New("timeout"))

		result, err := svc.ListActive(ctx, domain.ServiceIdentityCertificate)

		assert.ErrorIs(t, err, requirement.ErrCatalogUnavailable)
		assert.Nil(t, result)
	})
}
