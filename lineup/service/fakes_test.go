package service

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/futbolformaciones/lineup-service/shared/models"
)

// In-memory store fakes. They mirror the MongoDB stores' contract,
// including reporting not-found as mongo.ErrNoDocuments.

type careerCall struct {
	ID            primitive.ObjectID
	Delta         models.StatsDelta
	AddAppearance bool
}

type fakePlayerStore struct {
	players     map[primitive.ObjectID]*models.Player
	careerCalls []careerCall
}

func newFakePlayerStore() *fakePlayerStore {
	return &fakePlayerStore{players: make(map[primitive.ObjectID]*models.Player)}
}

func (s *fakePlayerStore) add(p models.Player) models.Player {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.Active = true
	cp := p
	s.players[p.ID] = &cp
	return p
}

func (s *fakePlayerStore) Create(ctx context.Context, player *models.Player) error {
	cp := *player
	s.players[player.ID] = &cp
	return nil
}

func (s *fakePlayerStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Player, error) {
	p, ok := s.players[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (s *fakePlayerStore) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Player, error) {
	var out []models.Player
	for _, id := range ids {
		if p, ok := s.players[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakePlayerStore) ListActive(ctx context.Context) ([]models.Player, error) {
	var out []models.Player
	for _, p := range s.players {
		if p.Active {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakePlayerStore) ListByTeam(ctx context.Context, team string) ([]models.Player, error) {
	var out []models.Player
	for _, p := range s.players {
		if p.Active && p.Team == team {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakePlayerStore) TopScorers(ctx context.Context, limit int64) ([]models.Player, error) {
	var out []models.Player
	for _, p := range s.players {
		if p.Active && p.Goals > 0 {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		return out[i].Name < out[j].Name
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakePlayerStore) Update(ctx context.Context, player *models.Player) error {
	if _, ok := s.players[player.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *player
	s.players[player.ID] = &cp
	return nil
}

func (s *fakePlayerStore) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	p, ok := s.players[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Active = false
	return nil
}

func (s *fakePlayerStore) NumberTaken(ctx context.Context, team string, number int, exclude primitive.ObjectID) (bool, error) {
	for _, p := range s.players {
		if p.Active && p.Team == team && p.Number == number && p.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakePlayerStore) ApplyCareerDelta(ctx context.Context, id primitive.ObjectID, delta models.StatsDelta, addAppearance bool) error {
	p, ok := s.players[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Goals += delta.Goals
	p.Assists += delta.Assists
	p.YellowCards += delta.YellowCards
	p.RedCards += delta.RedCards
	if addAppearance {
		p.MatchesPlayed++
	}
	s.careerCalls = append(s.careerCalls, careerCall{ID: id, Delta: delta, AddAppearance: addAppearance})
	return nil
}

type fakeFormationStore struct {
	formations map[primitive.ObjectID]*models.Formation
}

func newFakeFormationStore() *fakeFormationStore {
	return &fakeFormationStore{formations: make(map[primitive.ObjectID]*models.Formation)}
}

func (s *fakeFormationStore) Create(ctx context.Context, f *models.Formation) error {
	cp := *f
	s.formations[f.ID] = &cp
	return nil
}

func (s *fakeFormationStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Formation, error) {
	f, ok := s.formations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *f
	return &cp, nil
}

func (s *fakeFormationStore) List(ctx context.Context, active *bool, limit, page int64) ([]models.Formation, int64, error) {
	var out []models.Formation
	for _, f := range s.formations {
		if active != nil && f.Active != *active {
			continue
		}
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	total := int64(len(out))
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (s *fakeFormationStore) Replace(ctx context.Context, f *models.Formation) error {
	if _, ok := s.formations[f.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *f
	s.formations[f.ID] = &cp
	return nil
}

func (s *fakeFormationStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.formations[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.formations, id)
	return nil
}

type fakeMatchStore struct {
	matches map[primitive.ObjectID]*models.Match
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{matches: make(map[primitive.ObjectID]*models.Match)}
}

func (s *fakeMatchStore) Create(ctx context.Context, m *models.Match) error {
	cp := *m
	s.matches[m.ID] = &cp
	return nil
}

func (s *fakeMatchStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Match, error) {
	m, ok := s.matches[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *m
	return &cp, nil
}

func (s *fakeMatchStore) List(ctx context.Context, state string, limit int64) ([]models.Match, error) {
	var out []models.Match
	for _, m := range s.matches {
		if state != "" && m.State != state {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeMatchStore) Replace(ctx context.Context, m *models.Match) error {
	if _, ok := s.matches[m.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *m
	s.matches[m.ID] = &cp
	return nil
}

func (s *fakeMatchStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.matches[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.matches, id)
	return nil
}
