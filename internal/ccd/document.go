package ccd

// DocumentType is the closed set of origin categories a case document can
// carry. The four evidence categories drive recipient resolution; anything
// else is opaque to the distribution engine.
type DocumentType string

const (
	AppellantEvidence      DocumentType = "appellantEvidence"
	RepresentativeEvidence DocumentType = "representativeEvidence"
	DwpEvidence            DocumentType = "dwpEvidence"
	JointPartyEvidence     DocumentType = "jointPartyEvidence"
	OtherDocument          DocumentType = "other"
)

// EvidenceDocumentTypes lists the categories the automatic issue path sweeps,
// in the order they are processed.
var EvidenceDocumentTypes = []DocumentType{
	AppellantEvidence,
	RepresentativeEvidence,
	DwpEvidence,
	JointPartyEvidence,
}

// IsEvidence reports whether the type is one of the four evidence origins.
func (t DocumentType) IsEvidence() bool {
	switch t {
	case AppellantEvidence, RepresentativeEvidence, DwpEvidence, JointPartyEvidence:
		return true
	}
	return false
}

// DocumentLink locates a stored document. URL is the stable reference used
// to identify the document across events; BinaryURL serves the raw bytes.
type DocumentLink struct {
	URL       string `json:"document_url"`
	BinaryURL string `json:"document_binary_url"`
	Filename  string `json:"document_filename"`
}

// Document is one piece of uploaded material attached to a case. The
// distribution engine only ever flips EvidenceIssued and fills ResizedLink;
// creation and deletion belong to the case-management platform.
type Document struct {
	Type           DocumentType  `json:"documentType"`
	FileName       string        `json:"documentFileName"`
	Link           DocumentLink  `json:"documentLink"`
	ResizedLink    *DocumentLink `json:"resizedDocumentLink,omitempty"`
	EvidenceIssued bool          `json:"evidenceIssued"`
}
