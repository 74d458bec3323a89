package unit_test

import (
	"testing"
	"time"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/service/reapplication"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func makeApplication(status domain.ApplicationStatus) *domain.Application {
	return &domain.Application{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		ApplicationNumber: "SKI-2026-000001",
		ServiceType:       domain.ServiceIdentityCertificate,
		Status:            status,
		UpdatedAt:         time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func classificationItem(status domain.RequirementStatus, canReuse bool) domain.DocumentClassification {
	return domain.DocumentClassification{
		Requirement: makeRequirement("Req", 0),
		Status:      status,
		CanReuse:    canReuse,
	}
}

func TestBuildPlan(t *testing.T) {
	t.Run("Counts Reusable And Required New", func(t *testing.T) {
		app := makeApplication(domain.AppStatusRejected)
		items := []domain.DocumentClassification{
			classificationItem(domain.ReqStatusValid, true),
			classificationItem(domain.ReqStatusExpired, false),
			classificationItem(domain.ReqStatusMissing, false),
		}

		plan := reapplication.BuildPlan(app, items)

		assert.Equal(t, 3, plan.TotalRequirements)
		assert.Equal(t, 1, plan.ReusableCount)
		assert.Equal(t, 2, plan.RequiredNewCount)
		assert.InDelta(t, 1.0/3.0, plan.CompletionRatio, 1e-9)
		assert.Equal(t, app.UpdatedAt, plan.SourceUpdatedAt)
	})

	t.Run("Pending Counts In Neither Bucket", func(t *testing.T) {
		app := makeApplication(domain.AppStatusRejected)
		items := []domain.DocumentClassification{
			classificationItem(domain.ReqStatusPending, false),
			classificationItem(domain.ReqStatusValid, true),
		}

		plan := reapplication.BuildPlan(app, items)

		assert.Equal(t, 1, plan.ReusableCount)
		assert.Equal(t, 0, plan.RequiredNewCount)
		assert.Equal(t, 2, plan.TotalRequirements)
	})

	t.Run("Zero Requirements", func(t *testing.T) {
		app := makeApplication(domain.AppStatusRejected)

		plan := reapplication.BuildPlan(app, nil)

		assert.Equal(t, 0, plan.TotalRequirements)
		assert.Equal(t, 0.0, plan.CompletionRatio)
	})

	t.Run("Reason Precedence", func(t *testing.T) {
		expiredItems := []domain.DocumentClassification{
			classificationItem(domain.ReqStatusExpired, false),
		}

		// Rejected application wins even when documents also expired.
		plan := reapplication.BuildPlan(makeApplication(domain.AppStatusRejected), expiredItems)
		assert.Equal(t, domain.ReasonRejectedApplication, plan.Reason)

		plan = reapplication.BuildPlan(makeApplication(domain.AppStatusIncomplete), expiredItems)
		assert.Equal(t, domain.ReasonIncompleteRequirements, plan.Reason)

		plan = reapplication.BuildPlan(makeApplication(domain.AppStatusApproved), expiredItems)
		assert.Equal(t, domain.ReasonExpiredDocuments, plan.Reason)

		plan = reapplication.BuildPlan(makeApplication(domain.AppStatusApproved), []domain.DocumentClassification{
			classificationItem(domain.ReqStatusValid, true),
		})
		assert.Equal(t, domain.ReasonUserRequest, plan.Reason)
	})
}

func TestIsEligible(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("Draft Never Eligible", func(t *testing.T) {
		app := makeApplication(domain.AppStatusDraft)
		docs := []domain.SubmittedDocument{
			makeDocument(uuid.New(), domain.DocStatusExpired, nil),
		}

		eligible, hasExpired := reapplication.IsEligible(app, docs, now)

		assert.False(t, eligible)
		assert.False(t, hasExpired)
	})

	t.Run("Rejected Is Eligible", func(t *testing.T) {
		app := makeApplication(domain.AppStatusRejected)

		eligible, hasExpired := reapplication.IsEligible(app, nil, now)

		assert.True(t, eligible)
		assert.False(t, hasExpired)
	})

	t.Run("Incomplete Is Eligible", func(t *testing.T) {
		app := makeApplication(domain.AppStatusIncomplete)

		eligible, _ := reapplication.IsEligible(app, nil, now)

		assert.True(t, eligible)
	})

	t.Run("Approved With Expired Document", func(t *testing.T) {
		app := makeApplication(domain.AppStatusApproved)
		docs := []domain.SubmittedDocument{
			makeDocument(uuid.New(), domain.DocStatusApproved, timePtr(now.AddDate(0, 0, -1))),
		}

		eligible, hasExpired := reapplication.IsEligible(app, docs, now)

		assert.True(t, eligible)
		assert.True(t, hasExpired)
	})

	t.Run("Approved Without Documents Is Not Eligible", func(t *testing.T) {
		app := makeApplication(domain.AppStatusApproved)

		eligible, hasExpired := reapplication.IsEligible(app, nil, now)

		assert.False(t, eligible)
		assert.False(t, hasExpired)
	})

	t.Run("Approved With Valid Documents Is Not Eligible", func(t *testing.T) {
		app := makeApplication(domain.AppStatusApproved)
		docs := []domain.SubmittedDocument{
			makeDocument(uuid.New(), domain.DocStatusApproved, timePtr(now.AddDate(0, 0, 30))),
		}

		eligible, hasExpired := reapplication.IsEligible(app, docs, now)

		assert.False(t, eligible)
		assert.False(t, hasExpired)
	})
}
