package evidence

import "github.com/hmcts/sscs-dwp/internal/ccd"

// Batch groups the not-yet-issued documents of a single evidence category.
// Documents are pointers into the case's own slice so that marking them
// issued is visible to the caller's case data.
type Batch struct {
	Category ccd.DocumentType
	Docs     []*ccd.Document
}

// ClassifyNotIssued partitions the case's documents into per-category
// batches of evidence that has not yet been distributed. Categories with
// nothing outstanding are omitted; order follows the fixed category order.
func ClassifyNotIssued(caseData *ccd.CaseData) []Batch {
	var batches []Batch
	for _, category := range ccd.EvidenceDocumentTypes {
		var docs []*ccd.Document
		for i := range caseData.Documents {
			doc := &caseData.Documents[i]
			if doc.Type == category && !doc.EvidenceIssued {
				docs = append(docs, doc)
			}
		}
		if len(docs) > 0 {
			batches = append(batches, Batch{Category: category, Docs: docs})
		}
	}
	return batches
}

// CanHandleAny reports whether at least one document is outstanding
// distributable evidence.
func CanHandleAny(caseData *ccd.CaseData) bool {
	for i := range caseData.Documents {
		doc := &caseData.Documents[i]
		if doc.Type.IsEvidence() && !doc.EvidenceIssued {
			return true
		}
	}
	return false
}

// FindByReference locates the document whose link matches the given URL.
// Used by the explicit-reissue path, which targets exactly one document.
func FindByReference(caseData *ccd.CaseData, url string) *ccd.Document {
	for i := range caseData.Documents {
		doc := &caseData.Documents[i]
		if doc.Link.URL == url {
			return doc
		}
	}
	return nil
}
