package athletes

import (
	"context"
	"sort"
	"sync"
	"time"
)

var _ athletesRepo = (*repoMock)(nil)

type repoMock struct {
	Athletes map[int]Athlete
	mutex    sync.Mutex
}

func NewRepoMock() *repoMock {
	repo := &repoMock{
		Athletes: map[int]Athlete{},
	}

	now := time.Now()
	repo.Athletes[1] = Athlete{
		ID:        1,
		Name:      "Ana Runner",
		Sport:     "athletics",
		Team:      "city track club",
		CreatedAt: now,
	}
	repo.Athletes[2] = Athlete{
		ID:        2,
		Name:      "Marko Keeper",
		Sport:     "football",
		Team:      "fc test",
		Position:  "goalkeeper",
		CreatedAt: now,
	}

	return repo
}

func (r *repoMock) Add(_ context.Context, athlete Athlete) (*Athlete, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	nextId := len(r.Athletes) + 1
	athlete.ID = nextId
	r.Athletes[nextId] = athlete
	return &athlete, nil
}

func (r *repoMock) List(_ context.Context) ([]Athlete, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	athletes := make([]Athlete, 0, len(r.Athletes))
	for _, athlete := range r.Athletes {
		athletes = append(athletes, athlete)
	}

	sort.Slice(athletes, func(i, j int) bool {
		return athletes[i].Name < athletes[j].Name
	})

	return athletes, nil
}
