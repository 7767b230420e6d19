package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/junalkadhav/library-management/internal/domain"
	"github.com/junalkadhav/library-management/internal/repository"
	"github.com/junalkadhav/library-management/internal/upstream"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	return nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, id string, status domain.UserStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = status
	return nil
}

type fakeFavouriteRepo struct {
	mu      sync.Mutex
	entries map[string]map[string]bool // userID -> set of bookIDs
	order   map[string][]string
}

func newFakeFavouriteRepo() *fakeFavouriteRepo {
	return &fakeFavouriteRepo{
		entries: make(map[string]map[string]bool),
		order:   make(map[string][]string),
	}
}

func (f *fakeFavouriteRepo) Add(_ context.Context, userID, bookID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entries[userID] == nil {
		f.entries[userID] = make(map[string]bool)
	}
	if f.entries[userID][bookID] {
		return false, nil
	}
	f.entries[userID][bookID] = true
	f.order[userID] = append(f.order[userID], bookID)
	return true, nil
}

func (f *fakeFavouriteRepo) Remove(_ context.Context, userID, bookID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.entries[userID][bookID] {
		return false, nil
	}
	delete(f.entries[userID], bookID)
	ids := f.order[userID][:0]
	for _, id := range f.order[userID] {
		if id != bookID {
			ids = append(ids, id)
		}
	}
	f.order[userID] = ids
	return true, nil
}

func (f *fakeFavouriteRepo) ListBookIDs(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.order[userID]...), nil
}

func (f *fakeFavouriteRepo) RemoveForAllUsers(_ context.Context, bookID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for userID, set := range f.entries {
		if set[bookID] {
			delete(set, bookID)
			removed++
			ids := f.order[userID][:0]
			for _, id := range f.order[userID] {
				if id != bookID {
					ids = append(ids, id)
				}
			}
			f.order[userID] = ids
		}
	}
	return removed, nil
}

type fakeBookRepo struct {
	mu    sync.Mutex
	books map[string]*domain.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[string]*domain.Book)}
}

func (f *fakeBookRepo) Create(_ context.Context, book *domain.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	book.ID = uuid.NewString()
	copied := *book
	f.books[book.ID] = &copied
	return nil
}

func (f *fakeBookRepo) GetByID(_ context.Context, id string) (*domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if book, ok := f.books[id]; ok {
		copied := *book
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBookRepo) Update(_ context.Context, book *domain.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.books[book.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *book
	f.books[book.ID] = &copied
	return nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.books[id]; !ok {
		return false, nil
	}
	delete(f.books, id)
	return true, nil
}

func (f *fakeBookRepo) List(_ context.Context, filter repository.BookFilter) ([]domain.Book, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Book, 0)
	for _, book := range f.books {
		if len(filter.IDs) > 0 {
			for _, id := range filter.IDs {
				if book.ID == id {
					out = append(out, *book)
					break
				}
			}
			continue
		}
		out = append(out, *book)
	}
	return out, len(out), nil
}

type fakeBookFetcher struct {
	mu       sync.Mutex
	calls    int
	lastIDs  []string
	lastAuth string
	result   upstream.BookList
	err      error
}

func (f *fakeBookFetcher) FetchByIDs(_ context.Context, authorization string, ids []string, _ int) (upstream.BookList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastIDs = append([]string{}, ids...)
	f.lastAuth = authorization
	if f.err != nil {
		return upstream.BookList{}, f.err
	}
	return f.result, nil
}
