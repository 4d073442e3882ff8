package evidence

import "github.com/hmcts/sscs-dwp/internal/ccd"

// Recipient is one resolved letter: who it goes to and which cover-letter
// slot it uses.
type Recipient struct {
	LetterType ccd.LetterType
	Role       TemplateRole
}

// originatorOf maps an evidence category to the party that submitted it.
var originatorOf = map[ccd.DocumentType]ccd.LetterType{
	ccd.AppellantEvidence:      ccd.AppellantLetter,
	ccd.RepresentativeEvidence: ccd.RepresentativeLetter,
	ccd.DwpEvidence:            ccd.DwpLetter,
	ccd.JointPartyEvidence:     ccd.JointPartyLetter,
}

// applicable reports whether a party structurally exists on the case.
// The appellant and the respondent always do; a representative or joint
// party only when recorded.
func applicable(lt ccd.LetterType, comp ccd.PartyComposition) bool {
	switch lt {
	case ccd.RepresentativeLetter:
		return comp.HasRepresentative
	case ccd.JointPartyLetter:
		return comp.HasJointParty
	default:
		return true
	}
}

// ResolveRecipients computes the distribution list for one evidence
// category. The originator, when present in the allowed list, receives the
// original-sender letter; every other applicable and allowed party receives
// the other-parties letter. The result is deterministic and duplicate-free:
// each party appears at most once, in the fixed party order.
func ResolveRecipients(category ccd.DocumentType, comp ccd.PartyComposition, allowed []ccd.LetterType) []Recipient {
	allowedSet := make(map[ccd.LetterType]bool, len(allowed))
	for _, lt := range allowed {
		allowedSet[lt] = true
	}

	originator := originatorOf[category]

	var recipients []Recipient
	if allowedSet[originator] && applicable(originator, comp) {
		recipients = append(recipients, Recipient{LetterType: originator, Role: RoleOriginalSender})
	}
	for _, lt := range ccd.AllLetterTypes {
		if lt == originator {
			continue
		}
		if allowedSet[lt] && applicable(lt, comp) {
			recipients = append(recipients, Recipient{LetterType: lt, Role: RoleOtherParties})
		}
	}
	return recipients
}
