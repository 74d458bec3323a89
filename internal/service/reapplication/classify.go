package reapplication

import (
	"time"

	"sertifikat-identitas/internal/domain"
)

// ClassifyDocuments evaluates every active requirement against the current
// document set and reports which slots are reusable. Requirements are
// independent of each other and the result is a pure function of its inputs:
// re-running it on unchanged data yields the same classification.
//
// documents must hold at most one entry per requirement (the repository's
// ListCurrentByApplication guarantees this).
func ClassifyDocuments(requirements []domain.DocumentRequirement, documents []domain.SubmittedDocument, now time.Time) []domain.DocumentClassification {
	byRequirement := make(map[string]*domain.SubmittedDocument, len(documents))
	for i := range documents {
		byRequirement[documents[i].RequirementID.String()] = &documents[i]
	}

	items := make([]domain.DocumentClassification, 0, len(requirements))
	for _, req := range requirements {
		doc := byRequirement[req.ID.String()]
		items = append(items, classifyOne(req, doc, now))
	}

	return items
}

func classifyOne(req domain.DocumentRequirement, doc *domain.SubmittedDocument, now time.Time) domain.DocumentClassification {
	item := domain.DocumentClassification{
		Requirement: req,
		Document:    doc,
	}

	if doc == nil {
		item.Status = domain.ReqStatusMissing
		return item
	}

	expiresAt := documentExpiry(doc, &req)
	item.ExpiresAt = expiresAt
	if expiresAt != nil {
		days := daysUntil(*expiresAt, now)
		item.DaysUntilExpiry = &days
	}

	switch {
	// The computed expiration date wins over the stored status: a document
	// still marked approved past its date is expired.
	case doc.Status == domain.DocStatusExpired || (expiresAt != nil && expiresAt.Before(now)):
		item.Status = domain.ReqStatusExpired
	case doc.Status == domain.DocStatusRejected:
		item.Status = domain.ReqStatusRejected
	case doc.Status == domain.DocStatusApproved:
		item.Status = domain.ReqStatusValid
		item.CanReuse = true
	default:
		item.Status = domain.ReqStatusPending
	}

	return item
}

// documentExpiry resolves a document's expiration date: an explicit
// expires_at governs, otherwise it is derived from the upload time and the
// requirement's validity period. Nil means the document never expires.
func documentExpiry(doc *domain.SubmittedDocument, req *domain.DocumentRequirement) *time.Time {
	if doc.ExpiresAt != nil {
		return doc.ExpiresAt
	}
	if req.HasExpiry() {
		expiry := doc.CreatedAt.AddDate(0, 0, req.ValidityDays)
		return &expiry
	}
	return nil
}

func daysUntil(expiry time.Time, now time.Time) int {
	const day = 24 * time.Hour

	diff := expiry.Sub(now)
	days := diff / day
	if diff%day > 0 {
		days++
	}
	return int(days)
}

// BuildPlan aggregates a classification into the reuse/replace plan shown to
// the user. Pending items count toward neither bucket: they are awaiting
// review, neither reusable nor requestable as new.
func BuildPlan(app *domain.Application, items []domain.DocumentClassification) *domain.ReapplicationPlan {
	plan := &domain.ReapplicationPlan{
		OriginalApplicationID: app.ID,
		ApplicationNumber:     app.ApplicationNumber,
		ServiceType:           app.ServiceType,
		SourceUpdatedAt:       app.UpdatedAt,
		Items:                 items,
		TotalRequirements:     len(items),
	}

	hasExpired := false
	for _, item := range items {
		if item.CanReuse {
			plan.ReusableCount++
		}
		switch item.Status {
		case domain.ReqStatusExpired:
			hasExpired = true
			plan.RequiredNewCount++
		case domain.ReqStatusRejected, domain.ReqStatusMissing:
			plan.RequiredNewCount++
		}
	}

	if plan.TotalRequirements > 0 {
		plan.CompletionRatio = float64(plan.ReusableCount) / float64(plan.TotalRequirements)
	}

	switch {
	case app.Status == domain.AppStatusRejected:
		plan.Reason = domain.ReasonRejectedApplication
	case app.Status == domain.AppStatusIncomplete:
		plan.Reason = domain.ReasonIncompleteRequirements
	case hasExpired:
		plan.Reason = domain.ReasonExpiredDocuments
	default:
		plan.Reason = domain.ReasonUserRequest
	}

	return plan
}

// IsEligible reports whether an application may be re-applied from: its own
// status is rejected or incomplete, or at least one of its documents has
// expired. An application without documents is never flagged as having
// expired ones. Drafts are excluded; they were never submitted.
func IsEligible(app *domain.Application, documents []domain.SubmittedDocument, now time.Time) (eligible bool, hasExpiredDocument bool) {
	if app.Status == domain.AppStatusDraft {
		return false, false
	}

	for i := range documents {
		doc := &documents[i]
		if doc.Status == domain.DocStatusExpired || (doc.ExpiresAt != nil && doc.ExpiresAt.Before(now)) {
			hasExpiredDocument = true
			break
		}
	}

	if app.Status == domain.AppStatusRejected || app.Status == domain.AppStatusIncomplete {
		return true, hasExpiredDocument
	}

	return hasExpiredDocument, hasExpiredDocument
}
