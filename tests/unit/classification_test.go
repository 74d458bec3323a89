package unit_test

import (
	"testing"
	"time"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/service/reapplication"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func makeRequirement(name string, validityDays int) domain.DocumentRequirement {
	return domain.DocumentRequirement{
		ID:           uuid.New(),
		ServiceType:  domain.ServiceIdentityCertificate,
		Name:         name,
		ValidityDays: validityDays,
		IsMandatory:  true,
		IsActive:     true,
	}
}

func makeDocument(reqID uuid.UUID, status domain.DocumentStatus, expiresAt *time.Time) domain.SubmittedDocument {
	return domain.SubmittedDocument{
		ID:            uuid.New(),
		ApplicationID: uuid.New(),
		RequirementID: reqID,
		UploadedBy:    uuid.New(),
		FileName:      "scan.pdf",
		Status:        status,
		ExpiresAt:     expiresAt,
		CreatedAt:     time.Now().Add(-30 * 24 * time.Hour),
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestClassifyDocuments(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("Missing When No Document", func(t *testing.T) {
		req := makeRequirement("KTP", 0)

		items := reapplication.ClassifyDocuments([]domain.DocumentRequirement{req}, nil, now)

		assert.Len(t, items, 1)
		assert.Equal(t, domain.ReqStatusMissing, items[0].Status)
		assert.False(t, items[0].CanReuse)
		assert.Nil(t, items[0].Document)
	})

	t.Run("Approved With Future Expiry Is Reusable", func(t *testing.T) {
		req := makeRequirement("KTP", 0)
		doc := makeDocument(req.ID, domain.DocStatusApproved, timePtr(now.AddDate(0, 0, 400)))

		items := reapplication.ClassifyDocuments([]domain.DocumentRequirement{req}, []domain.SubmittedDocument{doc}, now)

		assert.Equal(t, domain.ReqStatusValid, items[0].Status)
		assert.True(t, items[0].CanReuse)
		assert.NotNil(t, items[0].DaysUntilExpiry)
		assert.Equal(t, 400, *items[0].DaysUntilExpiry)
	})

	t.Run("Computed Expiry Beats Stored Status", func(t *testing.T) {
		// Approved in the database but past its expiry date: expired wins.
		req := makeRequirement("Surat Domisili", 0)
		doc := makeDocument(req.ID, domain.DocStatusApproved, timePtr(now.AddDate(0, 0, -10)))

		items := reapplication.ClassifyDocuments([]domain.DocumentRequirement{req}, []domain.SubmittedDocument{doc}, now)

		assert.Equal(t, domain.ReqStatusExpired, items[0].Status)
		assert.False(t, items[0].CanReuse)
	})

	t.Run("Rejected Document", func(t *testing.T) {
		req := makeRequirement("Pas Foto", 0)
		doc := makeDocument(req.ID, domain.DocStatusRejected, nil)

		items := reapplication.ClassifyDocuments([]domain.DocumentRequirement{req}, []domain.SubmittedDocument{doc}, now)

		assert.Equal(t, domain.ReqStatusRejected, items[0].Status)
		assert.False(t, items[0].CanReuse)
	})

	t.Run("Pending Document Is Not Reusable", func(t *testing.T) {
		req := makeRequirement("KK", 0)
		doc := makeDocument(req.ID, domain.DocStatusPending, nil)

		items := reapplication.ClassifyDocuments([]domain.DocumentRequirement{req}, []domain.SubmittedDocument{doc}, now)

		assert.Equal(t, domain.ReqStatusPending, items[0].Status)
		assert.False(t, items[0].CanReuse)
	})

	t.Run("Expiry Derived From Validity Days", func(t *testing.T) {
		req := makeRequirement("SKCK", 90)
		doc := makeDocument(req.ID, domain.DocStatusApproved, nil)
		doc.CreatedAt = now.AddDate(0, 0, -100)

		items := reapplication.ClassifyDocuments([]domain.DocumentRequirement{req}, []domain.SubmittedDocument{doc}, now)

		// Uploaded 100 days ago with 90 days validity, so it lapsed.
		assert.Equal(t, domain.ReqStatusExpired, items[0].Status)
		assert.NotNil(t, items[0].ExpiresAt)
	})

	t.Run("Zero Validity Days Never Expires", func(t *testing.T) {
		req := makeRequirement("Akta Kelahiran", 0)
		doc := makeDocument(req.ID, domain.DocStatusApproved, nil)
		doc.CreatedAt = now.AddDate(-10, 0, 0)

		items := reapplication.ClassifyDocuments([]domain.DocumentRequirement{req}, []domain.SubmittedDocument{doc}, now)

		assert.Equal(t, domain.ReqStatusValid, items[0].Status)
		assert.True(t, items[0].CanReuse)
		assert.Nil(t, items[0].ExpiresAt)
	})

	t.Run("Stored Expired Status Without Date", func(t *testing.T) {
		req := makeRequirement("Surat Pengantar", 0)
		doc := makeDocument(req.ID, domain.DocStatusExpired, nil)

		items := reapplication.ClassifyDocuments([]domain.DocumentRequirement{req}, []domain.SubmittedDocument{doc}, now)

		assert.Equal(t, domain.ReqStatusExpired, items[0].Status)
	})

	t.Run("Deterministic For Same Inputs", func(t *testing.T) {
		reqs := []domain.DocumentRequirement{
			makeRequirement("KTP", 0),
			makeRequirement("SKCK", 90),
		}
		docs := []domain.SubmittedDocument{
			makeDocument(reqs[0].ID, domain.DocStatusApproved, timePtr(now.AddDate(0, 0, 30))),
		}

		first := reapplication.ClassifyDocuments(reqs, docs, now)
		second := reapplication.ClassifyDocuments(reqs, docs, now)

		assert.Equal(t, first, second)
	})

	t.Run("Mixed Requirements Scenario", func(t *testing.T) {
		validReq := makeRequirement("KTP", 0)
		expiredReq := makeRequirement("SKCK", 0)
		missingReq := makeRequirement("Pas Foto", 0)

		docs := []domain.SubmittedDocument{
			makeDocument(validReq.ID, domain.DocStatusApproved, timePtr(now.AddDate(0, 0, 400))),
			makeDocument(expiredReq.ID, domain.DocStatusApproved, timePtr(now.AddDate(0, 0, -10))),
		}

		items := reapplication.ClassifyDocuments(
			[]domain.DocumentRequirement{validReq, expiredReq, missingReq}, docs, now)

		assert.Len(t, items, 3)

		byName := make(map[string]domain.DocumentClassification)
		for _, item := range items {
			byName[item.Requirement.Name] = item
		}

		assert.Equal(t, domain.ReqStatusValid, byName["KTP"].Status)
		assert.True(t, byName["KTP"].CanReuse)
		assert.Equal(t, domain.ReqStatusExpired, byName["SKCK"].Status)
		assert.Equal(t, domain.ReqStatusMissing, byName["Pas Foto"].Status)
	})
}
