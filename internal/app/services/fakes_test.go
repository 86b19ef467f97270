package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/app/repositories"
	"github.com/engimate/backend/internal/domain"
)

// display renders a cutoff the way the store does, without the merit lookup
func display(rank int64) string {
	if rank == 0 {
		return models.NotOffered
	}
	return strconv.FormatInt(rank, 10) + " (90.5)"
}

type rowOption func(*models.CollegeChoice)

func withCutoff(label string, rank int64) rowOption {
	return func(c *models.CollegeChoice) { c.SetCutoff(label, rank, display(rank)) }
}

func withCity(city string) rowOption {
	return func(c *models.CollegeChoice) { c.City = city }
}

func withBranchCategory(cat string) rowOption {
	return func(c *models.CollegeChoice) { c.BranchCategory = cat }
}

func femaleOnly() rowOption {
	return func(c *models.CollegeChoice) { c.BranchType = "F" }
}

func withPercentile(p float64) rowOption {
	return func(c *models.CollegeChoice) { c.AIPercentile = &p }
}

func stateRow(code string, gopen int64, opts ...rowOption) models.CollegeChoice {
	c := models.CollegeChoice{
		ChoiceCode:     code,
		CollegeCode:    code[:4],
		CollegeName:    "College " + code[:4],
		BranchName:     "Branch " + code,
		BranchCategory: "CSE",
		City:           "Pune",
		Track:          models.TrackState,
	}
	c.SetCutoff(domain.LabelGeneralOpen, gopen, display(gopen))
	for _, o := range opts {
		o(&c)
	}
	return c
}

func aiRow(code string, rank int64, opts ...rowOption) models.CollegeChoice {
	c := models.CollegeChoice{
		ChoiceCode:     code,
		CollegeCode:    code[:4],
		CollegeName:    "College " + code[:4],
		BranchName:     "Branch " + code,
		BranchCategory: "CSE",
		City:           "Pune",
		Track:          models.TrackAllIndia,
	}
	c.SetCutoff(domain.LabelAllIndia, rank, display(rank))
	for _, o := range opts {
		o(&c)
	}
	return c
}

func cloneChoice(c models.CollegeChoice) models.CollegeChoice {
	out := c
	out.Cutoffs = make(map[string]string, len(c.Cutoffs))
	out.Ranks = make(map[string]int64, len(c.Ranks))
	for k, v := range c.Cutoffs {
		out.Cutoffs[k] = v
	}
	for k, v := range c.Ranks {
		out.Ranks[k] = v
	}
	return out
}

// fakeCutoffs applies the band predicate in memory: every applicable slot must
// hold a rank inside the band or 0
type fakeCutoffs struct {
	mu       sync.Mutex
	state    []models.CollegeChoice
	allIndia []models.CollegeChoice
	branches []models.BranchCutoff
	err      error
	calls    []repositories.BandQuery
}

func (f *fakeCutoffs) record(q repositories.BandQuery) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
}

func (f *fakeCutoffs) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCutoffs) FetchStateBand(_ context.Context, q repositories.BandQuery) ([]models.CollegeChoice, error) {
	f.record(q)
	if f.err != nil {
		return nil, f.err
	}
	out := []models.CollegeChoice{}
	for _, row := range f.state {
		keep := true
		for _, ref := range q.Descriptor.Slots() {
			if !ref.Applicable {
				continue
			}
			r := row.Ranks[ref.Column.Label]
			if r != 0 && !q.Band.Contains(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, cloneChoice(row))
		}
	}
	return out, nil
}

func (f *fakeCutoffs) FetchAllIndiaBand(_ context.Context, q repositories.BandQuery) ([]models.CollegeChoice, error) {
	f.record(q)
	if f.err != nil {
		return nil, f.err
	}
	out := []models.CollegeChoice{}
	for _, row := range f.allIndia {
		r := row.Ranks[domain.LabelAllIndia]
		if r == 0 || q.Band.Contains(r) {
			out = append(out, cloneChoice(row))
		}
	}
	return out, nil
}

func (f *fakeCutoffs) FetchCollegeCutoffs(_ context.Context, _ domain.TableSet, _ string) ([]models.BranchCutoff, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.branches, nil
}

type fakeMerit struct {
	ranks map[float64]int64
	err   error
	calls int
}

func (f *fakeMerit) RankForPercentile(_ context.Context, _ domain.TableSet, p float64) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	r, ok := f.ranks[p]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	return r, nil
}

type fakeColleges struct {
	colleges []models.College
	err      error
}

func (f *fakeColleges) GetCollege(_ context.Context, _ domain.TableSet, code string) (*models.College, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.colleges {
		if c.CollegeCode == code {
			c := c
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeColleges) ListColleges(_ context.Context, _ domain.TableSet, university string) ([]models.College, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.College{}
	for _, c := range f.colleges {
		if university == "" || c.University == university {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeColleges) ListCollegeNames(_ context.Context, _ domain.TableSet) ([]models.CollegeName, error) {
	out := []models.CollegeName{}
	for _, c := range f.colleges {
		out = append(out, models.CollegeName{CollegeCode: c.CollegeCode, CollegeName: c.CollegeName})
	}
	return out, f.err
}

func (f *fakeColleges) ListCities(_ context.Context, _ domain.TableSet) ([]string, error) {
	return []string{"Mumbai", "Pune"}, f.err
}

func (f *fakeColleges) ListUniversities(_ context.Context, _ domain.TableSet) ([]string, error) {
	return []string{"SPPU"}, f.err
}

func code(i int) string {
	return fmt.Sprintf("%04d%05d", 1000+i%900, i)
}
