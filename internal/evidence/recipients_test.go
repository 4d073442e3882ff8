package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hmcts/sscs-dwp/internal/ccd"
)

func TestResolveRecipients(t *testing.T) {
	fullHouse := ccd.PartyComposition{HasRepresentative: true, HasJointParty: true, Language: ccd.LanguageEnglish}
	noExtras := ccd.PartyComposition{Language: ccd.LanguageEnglish}

	tests := []struct {
		name     string
		category ccd.DocumentType
		comp     ccd.PartyComposition
		allowed  []ccd.LetterType
		want     []Recipient
	}{
		{
			name:     "appellant evidence goes back to appellant and on to everyone else",
			category: ccd.AppellantEvidence,
			comp:     fullHouse,
			allowed:  ccd.AllLetterTypes,
			want: []Recipient{
				{LetterType: ccd.AppellantLetter, Role: RoleOriginalSender},
				{LetterType: ccd.RepresentativeLetter, Role: RoleOtherParties},
				{LetterType: ccd.DwpLetter, Role: RoleOtherParties},
				{LetterType: ccd.JointPartyLetter, Role: RoleOtherParties},
			},
		},
		{
			name:     "representative evidence makes the representative the original sender",
			category: ccd.RepresentativeEvidence,
			comp:     fullHouse,
			allowed:  ccd.AllLetterTypes,
			want: []Recipient{
				{LetterType: ccd.RepresentativeLetter, Role: RoleOriginalSender},
				{LetterType: ccd.AppellantLetter, Role: RoleOtherParties},
				{LetterType: ccd.DwpLetter, Role: RoleOtherParties},
				{LetterType: ccd.JointPartyLetter, Role: RoleOtherParties},
			},
		},
		{
			name:     "absent representative and joint party are never resolved",
			category: ccd.AppellantEvidence,
			comp:     noExtras,
			allowed:  ccd.AllLetterTypes,
			want: []Recipient{
				{LetterType: ccd.AppellantLetter, Role: RoleOriginalSender},
				{LetterType: ccd.DwpLetter, Role: RoleOtherParties},
			},
		},
		{
			name:     "dwp evidence without extras goes both ways only",
			category: ccd.DwpEvidence,
			comp:     noExtras,
			allowed:  ccd.AllLetterTypes,
			want: []Recipient{
				{LetterType: ccd.DwpLetter, Role: RoleOriginalSender},
				{LetterType: ccd.AppellantLetter, Role: RoleOtherParties},
			},
		},
		{
			name:     "subset list keeps only the allowed parties",
			category: ccd.AppellantEvidence,
			comp:     fullHouse,
			allowed:  []ccd.LetterType{ccd.RepresentativeLetter, ccd.DwpLetter},
			want: []Recipient{
				{LetterType: ccd.RepresentativeLetter, Role: RoleOtherParties},
				{LetterType: ccd.DwpLetter, Role: RoleOtherParties},
			},
		},
		{
			name:     "originator in a subset list still gets the original-sender letter",
			category: ccd.DwpEvidence,
			comp:     fullHouse,
			allowed:  []ccd.LetterType{ccd.DwpLetter},
			want: []Recipient{
				{LetterType: ccd.DwpLetter, Role: RoleOriginalSender},
			},
		},
		{
			name:     "representative-only subset without a representative resolves nobody",
			category: ccd.AppellantEvidence,
			comp:     noExtras,
			allowed:  []ccd.LetterType{ccd.RepresentativeLetter},
			want:     nil,
		},
		{
			name:     "joint party evidence with full house",
			category: ccd.JointPartyEvidence,
			comp:     fullHouse,
			allowed:  ccd.AllLetterTypes,
			want: []Recipient{
				{LetterType: ccd.JointPartyLetter, Role: RoleOriginalSender},
				{LetterType: ccd.AppellantLetter, Role: RoleOtherParties},
				{LetterType: ccd.RepresentativeLetter, Role: RoleOtherParties},
				{LetterType: ccd.DwpLetter, Role: RoleOtherParties},
			},
		},
		{
			name:     "empty allowed list resolves nobody",
			category: ccd.AppellantEvidence,
			comp:     fullHouse,
			allowed:  nil,
			want:     nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveRecipients(tc.category, tc.comp, tc.allowed)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveRecipientsIsDeterministic(t *testing.T) {
	comp := ccd.PartyComposition{HasRepresentative: true, HasJointParty: true, Language: ccd.LanguageEnglish}
	first := ResolveRecipients(ccd.AppellantEvidence, comp, ccd.AllLetterTypes)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ResolveRecipients(ccd.AppellantEvidence, comp, ccd.AllLetterTypes))
	}
}
