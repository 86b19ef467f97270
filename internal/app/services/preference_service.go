package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/app/models/dto"
	"github.com/engimate/backend/internal/app/repositories"
	"github.com/engimate/backend/internal/domain"
	"github.com/engimate/backend/internal/pkg/logger"
	"github.com/engimate/backend/internal/pkg/metrics"
)

// PreferenceService defines the interface for prediction operations
type PreferenceService interface {
	// BuildPreferenceList predicts from a state rank, adding the all-India track when a secondary rank is given
	BuildPreferenceList(ctx context.Context, req dto.PreferenceListRequest) (*dto.PreferenceListResponse, error)
	// BuildAllIndiaList predicts from an all-India rank only
	BuildAllIndiaList(ctx context.Context, req dto.AllIndiaRequest) (*dto.PreferenceListResponse, error)
}

// PredictorConfig tunes the prediction engine
type PredictorConfig struct {
	Caps            CapPolicy
	StateCeiling    int64
	AllIndiaCeiling int64
	DefaultYear     int
	Scorer          Scorer
}

// DefaultPredictorConfig returns the production defaults
func DefaultPredictorConfig() PredictorConfig {
	return PredictorConfig{
		Caps:            DefaultCapPolicy,
		StateCeiling:    250000,
		AllIndiaCeiling: 300000,
		DefaultYear:     domain.Year2025,
		Scorer:          ProximityScorer{},
	}
}

// preferenceServiceImpl implements the PreferenceService interface
type preferenceServiceImpl struct {
	cutoffs CutoffSource
	merit   MeritSource
	cfg     PredictorConfig
}

// NewPreferenceService creates a new preference service instance
func NewPreferenceService(cutoffs CutoffSource, merit MeritSource, cfg PredictorConfig) PreferenceService {
	if cfg.Scorer == nil {
		cfg.Scorer = ProximityScorer{}
	}
	return &preferenceServiceImpl{
		cutoffs: cutoffs,
		merit:   merit,
		cfg:     cfg,
	}
}

// BuildPreferenceList implements PreferenceService
func (s *preferenceServiceImpl) BuildPreferenceList(ctx context.Context, req dto.PreferenceListRequest) (*dto.PreferenceListResponse, error) {
	profile, tables, err := s.profileFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	tracks := []models.Track{models.TrackState}
	kind := metrics.KindState
	if profile.DualTrack() {
		tracks = append(tracks, models.TrackAllIndia)
		kind = metrics.KindDual
	}
	return s.predict(ctx, profile, tables, tracks, kind)
}

// BuildAllIndiaList implements PreferenceService
func (s *preferenceServiceImpl) BuildAllIndiaList(ctx context.Context, req dto.AllIndiaRequest) (*dto.PreferenceListResponse, error) {
	profile, tables, err := s.profileFromAllIndiaRequest(req)
	if err != nil {
		return nil, err
	}
	return s.predict(ctx, profile, tables, []models.Track{models.TrackAllIndia}, metrics.KindAllIndia)
}

func (s *preferenceServiceImpl) predict(ctx context.Context, profile models.StudentProfile, tables domain.TableSet, tracks []models.Track, kind string) (*dto.PreferenceListResponse, error) {
	d := domain.Resolve(profile.Selection())

	results, err := s.runTracks(ctx, profile, tables, d, tracks)
	if err != nil {
		return nil, err
	}

	colleges, all := CombineTracks(results, s.cfg.Caps)
	Classify(colleges, profile)
	Classify(all, profile)

	metrics.PredictionsServed.WithLabelValues(kind).Inc()
	metrics.PredictionSize.Observe(float64(len(colleges)))
	logger.Ctx(ctx).Info().
		Str("kind", kind).
		Str("category", string(profile.Category)).
		Str("gender", string(profile.Gender)).
		Int("year", tables.Year).
		Int("round", tables.Round).
		Int("colleges", len(colleges)).
		Msg("Preference list built")

	return &dto.PreferenceListResponse{Colleges: colleges, AllColleges: all}, nil
}

// runTracks queries both bands of every track concurrently, then filters,
// scores and merges each track on the calling goroutine. The browse pool of a
// track is scored before the city and branch filters are applied.
func (s *preferenceServiceImpl) runTracks(ctx context.Context, profile models.StudentProfile, tables domain.TableSet, d domain.Descriptor, tracks []models.Track) ([]MergeResult, error) {
	fetched := make([][2][]models.CollegeChoice, len(tracks))

	g, gctx := errgroup.WithContext(ctx)
	for i, track := range tracks {
		rank := profile.RankFor(track)
		bands := [2]models.RankBand{
			models.UpperBand(rank),
			models.LowerBand(rank, s.ceiling(track)),
		}
		for j, band := range bands {
			q := repositories.BandQuery{
				Tables:       tables,
				Descriptor:   d,
				Band:         band,
				WithAllIndia: track == models.TrackState && profile.DualTrack(),
			}
			g.Go(func() error {
				rows, err := s.fetch(gctx, track, q)
				if err != nil {
					return err
				}
				fetched[i][j] = rows
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]MergeResult, 0, len(tracks))
	for i, track := range tracks {
		upperAll := FilterAdmissible(fetched[i][0], profile, track)
		lowerAll := FilterAdmissible(fetched[i][1], profile, track)
		scoreAll(upperAll, s.cfg.Scorer, profile, d)
		scoreAll(lowerAll, s.cfg.Scorer, profile, d)

		upper := FilterPreferences(upperAll, profile)
		lower := FilterPreferences(lowerAll, profile)

		logger.Ctx(ctx).Debug().
			Str("track", string(track)).
			Int("upper", len(upper)).
			Int("lower", len(lower)).
			Int("unfiltered", len(upperAll)+len(lowerAll)).
			Msg("Eligible candidates")

		res := MergeBands(track, upper, lower, s.cfg.Caps)
		res.Unfiltered = RankPool(upperAll, lowerAll)
		results = append(results, res)
	}
	return results, nil
}

func (s *preferenceServiceImpl) fetch(ctx context.Context, track models.Track, q repositories.BandQuery) ([]models.CollegeChoice, error) {
	switch track {
	case models.TrackState:
		return s.cutoffs.FetchStateBand(ctx, q)
	case models.TrackAllIndia:
		return s.cutoffs.FetchAllIndiaBand(ctx, q)
	}
	return nil, fmt.Errorf("unknown track %q", track)
}

func (s *preferenceServiceImpl) ceiling(track models.Track) int64 {
	if track == models.TrackAllIndia {
		return s.cfg.AllIndiaCeiling
	}
	return s.cfg.StateCeiling
}
