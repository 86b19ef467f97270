package services

import (
	"strings"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/domain"
	"github.com/engimate/backend/internal/pkg/helpers"
)

// openLabels returns the columns of which at least one must carry a real
// cutoff for a row to be kept on the track
func openLabels(track models.Track, female bool) []string {
	if track == models.TrackAllIndia {
		return []string{domain.LabelAllIndia}
	}
	if female {
		return []string{domain.LabelGeneralOpen, domain.LabelLadiesOpen}
	}
	return []string{domain.LabelGeneralOpen}
}

// matchSet builds an exact-match set from a request filter; nil means "All"
func matchSet(values []string) map[string]struct{} {
	if helpers.TrimmedOrAll(values) {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.TrimSpace(v)] = struct{}{}
	}
	return set
}

// FilterEligible drops the rows the student cannot be admitted to and the rows
// outside the requested cities and branch categories.
func FilterEligible(choices []models.CollegeChoice, profile models.StudentProfile, track models.Track) []models.CollegeChoice {
	return FilterPreferences(FilterAdmissible(choices, profile, track), profile)
}

// FilterAdmissible keeps the rows the student can be admitted to: an open
// column of the track must be offered, and female-only branches need a female
// student. The same rules apply to both tracks; only the open columns differ.
func FilterAdmissible(choices []models.CollegeChoice, profile models.StudentProfile, track models.Track) []models.CollegeChoice {
	female := profile.IsFemale()
	required := openLabels(track, female)

	out := make([]models.CollegeChoice, 0, len(choices))
	for _, c := range choices {
		if !female && c.FemaleOnly() {
			continue
		}
		if !offeredAny(c, required) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FilterPreferences keeps the rows inside the requested cities and branch categories
func FilterPreferences(choices []models.CollegeChoice, profile models.StudentProfile) []models.CollegeChoice {
	cities := matchSet(profile.Cities)
	branches := matchSet(profile.Branches)

	out := make([]models.CollegeChoice, 0, len(choices))
	for _, c := range choices {
		if cities != nil {
			if _, ok := cities[strings.TrimSpace(c.City)]; !ok {
				continue
			}
		}
		if branches != nil {
			if _, ok := branches[strings.TrimSpace(c.BranchCategory)]; !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func offeredAny(c models.CollegeChoice, labels []string) bool {
	for _, l := range labels {
		if c.Offered(l) {
			return true
		}
	}
	return false
}
