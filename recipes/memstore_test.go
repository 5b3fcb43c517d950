package recipes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/user/recipeshare-go/apperror"
)

type interactionKey struct {
	userID   string
	recipeID string
	kind     Kind
}

// memStore is an in-memory Store for tests. ToggleInteraction holds the lock
// across the check-and-flip, matching the atomicity the SQL implementation
// gets from its composite primary key.
type memStore struct {
	mu           sync.Mutex
	recipes      map[string]*Recipe
	interactions map[interactionKey]struct{}
}

func newMemStore() *memStore {
	return &memStore{
		recipes:      make(map[string]*Recipe),
		interactions: make(map[interactionKey]struct{}),
	}
}

func copyRecipe(r *Recipe) *Recipe {
	clone := *r
	clone.Ingredients = append([]string(nil), r.Ingredients...)
	clone.Instructions = append([]string(nil), r.Instructions...)
	return &clone
}

func (s *memStore) List(ctx context.Context) ([]*Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, copyRecipe(r))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memStore) Get(ctx context.Context, id string) (*Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[id]
	if !ok {
		return nil, apperror.NewNotFoundError("recipe not found", nil)
	}
	return copyRecipe(r), nil
}

func (s *memStore) Create(ctx context.Context, recipe *Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	clone := copyRecipe(recipe)
	clone.CreatedAt = now
	clone.UpdatedAt = now
	s.recipes[clone.ID] = clone
	return nil
}

func (s *memStore) Update(ctx context.Context, recipe *Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.recipes[recipe.ID]
	if !ok {
		return apperror.NewNotFoundError("recipe not found", nil)
	}
	clone := copyRecipe(recipe)
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now()
	s.recipes[clone.ID] = clone
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[id]; !ok {
		return apperror.NewNotFoundError("recipe not found", nil)
	}
	delete(s.recipes, id)
	for key := range s.interactions {
		if key.recipeID == id {
			delete(s.interactions, key)
		}
	}
	return nil
}

func (s *memStore) ListByAuthor(ctx context.Context, userID string) ([]*Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Recipe
	for _, r := range s.recipes {
		if r.AuthorID == userID {
			out = append(out, copyRecipe(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memStore) ListByInteraction(ctx context.Context, userID string, kind Kind) ([]*Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Recipe
	for key := range s.interactions {
		if key.userID != userID || key.kind != kind {
			continue
		}
		if r, ok := s.recipes[key.recipeID]; ok {
			out = append(out, copyRecipe(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memStore) ToggleInteraction(ctx context.Context, userID, recipeID string, kind Kind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := interactionKey{userID: userID, recipeID: recipeID, kind: kind}
	if _, ok := s.interactions[key]; ok {
		delete(s.interactions, key)
		return false, nil
	}
	s.interactions[key] = struct{}{}
	return true, nil
}

func (s *memStore) Interactions(ctx context.Context, userID string) ([]string, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	favorites := []string{}
	wantToTry := []string{}
	for key := range s.interactions {
		if key.userID != userID {
			continue
		}
		switch key.kind {
		case KindFavorite:
			favorites = append(favorites, key.recipeID)
		case KindWantToTry:
			wantToTry = append(wantToTry, key.recipeID)
		}
	}
	sort.Strings(favorites)
	sort.Strings(wantToTry)
	return favorites, wantToTry, nil
}
